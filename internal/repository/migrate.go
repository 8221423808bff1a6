package repository

import "gorm.io/gorm"

// Migrate creates the schema plus the indexes AutoMigrate cannot
// express: the conversation identity index and the partial indexes
// over the appointment response window.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&jobModel{},
		&roomAssignmentModel{},
		&checklistItemModel{},
		&offerModel{},
		&soloOfferModel{},
		&appointmentModel{},
		&conversationModel{},
		&messageModel{},
		&bonusModel{},
		&incentiveConfigModel{},
	); err != nil {
		return err
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_identity
		 ON conversations (kind, participant_a, participant_b, COALESCE(job_id, 0))`,
		`CREATE INDEX IF NOT EXISTS idx_user_appointments_response_pending
		 ON user_appointments (id)
		 WHERE client_response IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_user_appointments_expires_at
		 ON user_appointments (expires_at)
		 WHERE expires_at IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_user_appointments_booked_by
		 ON user_appointments (booked_by_cleaner_id)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
