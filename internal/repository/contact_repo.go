package repository

import (
	"context"
	"database/sql"
	"fmt"

	"diabcar/internal/db"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(database *sql.DB) *ContactRepository {
	return &ContactRepository{DB: database}
}

// Create persists a contact message. Messages are write-once; there is
// no update or delete.
func (r *ContactRepository) Create(ctx context.Context, msg *db.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, msg.Name, msg.Email, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating contact message: %w", err)
	}
	return nil
}
