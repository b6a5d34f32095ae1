package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	query := `
		INSERT INTO users (name, email, phone_number, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PhoneNumber, user.PasswordHash, user.Role, user.Status,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.Duplicate("Email is already registered.")
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	query := `
		SELECT id, name, email, phone_number, password_hash, role, status, created_at
		FROM users WHERE email = $1`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PhoneNumber,
		&user.PasswordHash, &user.Role, &user.Status, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*db.User, error) {
	var user db.User
	query := `
		SELECT id, name, email, phone_number, password_hash, role, status, created_at
		FROM users WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PhoneNumber,
		&user.PasswordHash, &user.Role, &user.Status, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entities.UserResponse, error) {
	query := `
		SELECT id, name, email, phone_number, role, status, created_at
		FROM users ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []entities.UserResponse
	for rows.Next() {
		var u entities.UserResponse
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Role, &u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies only the provided fields, building the SET clause
// dynamically the way the original user update endpoint behaves.
func (r *UserRepository) Update(ctx context.Context, id int, req *entities.UserUpdateRequest) error {
	set := ""
	args := []interface{}{}
	idx := 1
	addField := func(column string, value interface{}) {
		if set != "" {
			set += ", "
		}
		set += column + " = $" + strconv.Itoa(idx)
		args = append(args, value)
		idx++
	}
	if req.Name != nil {
		addField("name", *req.Name)
	}
	if req.Email != nil {
		addField("email", *req.Email)
	}
	if req.PhoneNumber != nil {
		addField("phone_number", *req.PhoneNumber)
	}
	if set == "" {
		return apperrors.Validation(apperrors.FieldError{
			Field:   "request",
			Message: "nothing to update, provide at least one field",
		})
	}

	args = append(args, id)
	result, err := r.DB.ExecContext(ctx, "UPDATE users SET "+set+" WHERE id = $"+strconv.Itoa(idx), args...)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.Duplicate("Email is already registered.")
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

func requireRowsAffected(result sql.Result, notFoundMessage string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(notFoundMessage)
	}
	return nil
}
