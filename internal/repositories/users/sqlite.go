package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/dbx"
	"github.com/dmitrijs2005/docsim/internal/models"
)

// SQLiteRepository keeps users in the users table. It needs a *sql.DB rather
// than a dbx.DBTX because Update runs its read-merge-write in a transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, password_hash, name, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.AvatarURL, u.CreatedAt.UnixNano())
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("email %q: %w", u.Email, common.ErrorDuplicateKey)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, password_hash, name, avatar_url, created_at FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, name, avatar_url, created_at FROM users WHERE email = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `SELECT id, email, password_hash, name, avatar_url, created_at FROM users WHERE id = ?`
		u, err := scanUser(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}

		patch.Apply(u)

		_, err = tx.ExecContext(ctx, `UPDATE users SET name = ?, avatar_url = ? WHERE id = ?`, u.Name, u.AvatarURL, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var createdAt int64

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.CreatedAt = time.Unix(0, createdAt).UTC()
	return u, nil
}
