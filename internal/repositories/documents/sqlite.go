package documents

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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, d *models.Document) (int64, error) {
	query := `INSERT INTO documents (name, content, upload_date, owner_user_id, path)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, d.Name, d.Content, d.UploadDate.UnixNano(), d.OwnerUserID, d.Path)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return 0, fmt.Errorf("document %q: %w", d.Name, common.ErrorDuplicateKey)
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	d.ID = id
	return id, nil
}

func (r *SQLiteRepository) List(ctx context.Context, owner string) ([]*models.Document, error) {
	query := `SELECT id, name, content, upload_date, owner_user_id, path FROM documents`
	var args []any
	if owner != "" {
		query += ` WHERE owner_user_id = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return docs, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, name, owner string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM documents WHERE name = ? AND owner_user_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, owner).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name, owner string) (*models.Document, error) {
	query := `SELECT id, name, content, upload_date, owner_user_id, path
		FROM documents WHERE name = ? AND owner_user_id = ?`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, name, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return d, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*models.Document, error) {
	d := &models.Document{}
	var uploaded int64

	if err := s.Scan(&d.ID, &d.Name, &d.Content, &uploaded, &d.OwnerUserID, &d.Path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	d.UploadDate = time.Unix(0, uploaded).UTC()
	return d, nil
}
