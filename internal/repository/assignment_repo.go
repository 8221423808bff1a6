package repository

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

// ErrStaleVersion is returned when an item toggle carries a version
// older than the stored one (a concurrent server write won).
var ErrStaleVersion = errors.New("stale assignment version")

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type roomAssignmentModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	JobID             int64     `gorm:"column:job_id;index"`
	CleanerID         int64     `gorm:"column:cleaner_id;index"`
	RoomType          string    `gorm:"column:room_type"`
	DisplayLabel      string    `gorm:"column:display_label"`
	Status            string    `gorm:"column:status"`
	Version           int64     `gorm:"column:version"`
	EstimatedMinutes  int       `gorm:"column:estimated_minutes"`
	RoomEarningsCents int64     `gorm:"column:room_earnings_cents"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`

	Items []checklistItemModel `gorm:"foreignKey:RoomAssignmentID"`
}

func (roomAssignmentModel) TableName() string { return "room_assignments" }

type checklistItemModel struct {
	ID               int64  `gorm:"column:id;primaryKey"`
	RoomAssignmentID int64  `gorm:"column:room_assignment_id;index"`
	Text             string `gorm:"column:text"`
	Completed        bool   `gorm:"column:completed"`
	Position         int    `gorm:"column:position"`
}

func (checklistItemModel) TableName() string { return "checklist_items" }

func toDomainAssignment(m roomAssignmentModel) *domain.RoomAssignment {
	a := &domain.RoomAssignment{
		ID:               m.ID,
		JobID:            m.JobID,
		CleanerID:        m.CleanerID,
		RoomType:         domain.RoomType(m.RoomType),
		DisplayLabel:     m.DisplayLabel,
		Status:           domain.RoomStatus(m.Status),
		Version:          m.Version,
		EstimatedMinutes: m.EstimatedMinutes,
		RoomEarnings:     domain.Cents(m.RoomEarningsCents),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for _, it := range m.Items {
		a.Items = append(a.Items, domain.ChecklistItem{
			ID:               it.ID,
			RoomAssignmentID: it.RoomAssignmentID,
			Text:             it.Text,
			Completed:        it.Completed,
			Position:         it.Position,
		})
	}
	return a
}

func toAssignmentModel(a *domain.RoomAssignment) roomAssignmentModel {
	m := roomAssignmentModel{
		ID:                a.ID,
		JobID:             a.JobID,
		CleanerID:         a.CleanerID,
		RoomType:          string(a.RoomType),
		DisplayLabel:      a.DisplayLabel,
		Status:            string(a.Status),
		Version:           a.Version,
		EstimatedMinutes:  a.EstimatedMinutes,
		RoomEarningsCents: int64(a.RoomEarnings),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	for _, it := range a.Items {
		m.Items = append(m.Items, checklistItemModel{
			ID:               it.ID,
			RoomAssignmentID: it.RoomAssignmentID,
			Text:             it.Text,
			Completed:        it.Completed,
			Position:         it.Position,
		})
	}
	return m
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.RoomAssignment) error {
	m := toAssignmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAssignment(m)
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*domain.RoomAssignment, error) {
	var m roomAssignmentModel
	tx := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAssignment(m), nil
}

// ListForCleaner returns the viewer's own rooms on a job, items
// ordered, rooms in creation order.
func (r *AssignmentRepository) ListForCleaner(ctx context.Context, jobID, cleanerID int64) ([]domain.RoomAssignment, error) {
	var models []roomAssignmentModel
	tx := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("job_id = ? AND cleaner_id = ?", jobID, cleanerID).
		Order("id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.RoomAssignment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAssignment(m))
	}
	return out, nil
}

func (r *AssignmentRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.RoomAssignment, error) {
	var models []roomAssignmentModel
	tx := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.RoomAssignment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAssignment(m))
	}
	return out, nil
}

// SetItemCompleted writes one item state and bumps the room's version
// in the same transaction. expectedVersion implements
// last-server-write-wins: a toggle against an older version fails with
// ErrStaleVersion instead of silently clobbering a newer write.
func (r *AssignmentRepository) SetItemCompleted(ctx context.Context, assignmentID, itemID int64, completed bool, expectedVersion int64) (*domain.RoomAssignment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&roomAssignmentModel{}).
			Where("id = ? AND version = ?", assignmentID, expectedVersion).
			Updates(map[string]interface{}{
				"version":    gorm.Expr("version + 1"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleVersion
		}

		res = tx.Model(&checklistItemModel{}).
			Where("id = ? AND room_assignment_id = ?", itemID, assignmentID).
			Update("completed", completed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, assignmentID)
}

func (r *AssignmentRepository) UpdateStatus(ctx context.Context, assignmentID int64, status domain.RoomStatus) error {
	return r.db.WithContext(ctx).Model(&roomAssignmentModel{}).
		Where("id = ?", assignmentID).
		Update("status", string(status)).Error
}

// ReassignCleaner moves a dropped cleaner's rooms to another cleaner
// and resets their version counters.
func (r *AssignmentRepository) ReassignCleaner(ctx context.Context, jobID, fromCleanerID, toCleanerID int64) error {
	return r.db.WithContext(ctx).Model(&roomAssignmentModel{}).
		Where("job_id = ? AND cleaner_id = ?", jobID, fromCleanerID).
		Updates(map[string]interface{}{
			"cleaner_id": toCleanerID,
			"version":    gorm.Expr("version + 1"),
		}).Error
}

// ReassignAllTo hands every room on the job to one cleaner (solo
// completion).
func (r *AssignmentRepository) ReassignAllTo(ctx context.Context, jobID, toCleanerID int64) error {
	return r.db.WithContext(ctx).Model(&roomAssignmentModel{}).
		Where("job_id = ? AND cleaner_id <> ?", jobID, toCleanerID).
		Updates(map[string]interface{}{
			"cleaner_id": toCleanerID,
			"version":    gorm.Expr("version + 1"),
		}).Error
}

// CleanerProgress is one teammate's item completion counts on a job.
type CleanerProgress struct {
	CleanerID int64
	Name      string
	Completed int
	Total     int
}

// TeamProgress aggregates per-cleaner item counts for the co-cleaner
// progress bars.
func (r *AssignmentRepository) TeamProgress(ctx context.Context, jobID int64) ([]CleanerProgress, error) {
	var rows []CleanerProgress
	err := r.db.WithContext(ctx).Raw(`
		SELECT ra.cleaner_id AS cleaner_id,
		       u.name AS name,
		       COUNT(CASE WHEN ci.completed THEN 1 END) AS completed,
		       COUNT(ci.id) AS total
		FROM room_assignments ra
		JOIN users u ON u.id = ra.cleaner_id
		LEFT JOIN checklist_items ci ON ci.room_assignment_id = ra.id
		WHERE ra.job_id = ?
		GROUP BY ra.cleaner_id, u.name
		ORDER BY ra.cleaner_id`, jobID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
