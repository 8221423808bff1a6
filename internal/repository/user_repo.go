package repository

import (
	"context"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Email      string    `gorm:"column:email;uniqueIndex"`
	Role       string    `gorm:"column:role;index"`
	Name       string    `gorm:"column:name"`
	Phone      string    `gorm:"column:phone"`
	EmployerID *int64    `gorm:"column:employer_id;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:         m.ID,
		Email:      m.Email,
		Role:       domain.UserRole(m.Role),
		Name:       m.Name,
		Phone:      m.Phone,
		EmployerID: m.EmployerID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := userModel{
		Email:      u.Email,
		Role:       string(u.Role),
		Name:       u.Name,
		Phone:      u.Phone,
		EmployerID: u.EmployerID,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// ListEmployees returns cleaners employed by a business owner.
func (r *UserRepository) ListEmployees(ctx context.Context, employerID int64) ([]domain.User, error) {
	var models []userModel
	tx := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) HasEmployees(ctx context.Context, employerID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("employer_id = ?", employerID).
		Count(&n).Error
	return n > 0, err
}
