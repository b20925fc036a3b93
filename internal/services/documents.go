package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/logging"
	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/dmitrijs2005/docsim/internal/report"
	"github.com/dmitrijs2005/docsim/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docsim/internal/similarity"
)

// DuplicateDocumentError is returned by Save when the caller already owns a
// document with the same name. It carries that document so the caller can
// offer to show it or its path instead.
type DuplicateDocumentError struct {
	Existing *models.Document
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("document %q already exists at %s", e.Existing.Name, e.Existing.Path)
}

func (e *DuplicateDocumentError) Unwrap() error {
	return common.ErrorDuplicateKey
}

// DocumentService scopes every document operation to the calling user.
type DocumentService struct {
	repomanager repomanager.RepositoryManager
	engine      *similarity.Engine
	log         logging.Logger

	now func() time.Time
}

func NewDocumentService(m repomanager.RepositoryManager, engine *similarity.Engine, log logging.Logger) *DocumentService {
	if engine == nil {
		engine = similarity.NewEngine()
	}
	return &DocumentService{
		repomanager: m,
		engine:      engine,
		log:         log.With("service", "documents"),
		now:         time.Now,
	}
}

// Save stores a new document owned by the caller. If the name is taken the
// stored document is left unchanged and a *DuplicateDocumentError describing
// it is returned.
func (s *DocumentService) Save(ctx context.Context, p *Principal, name, content string) (*models.Document, error) {
	if err := p.check(s.now()); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := validateDocumentName(name); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Name:        name,
		Content:     content,
		UploadDate:  s.now().UTC(),
		OwnerUserID: p.UserID,
		Path:        models.DocumentPath(p.UserID, name),
	}

	repo := s.repomanager.Documents()
	if _, err := repo.Create(ctx, doc); err != nil {
		if !errors.Is(err, common.ErrorDuplicateKey) {
			return nil, fmt.Errorf("error saving document: %w", err)
		}

		existing, gerr := repo.GetByName(ctx, name, p.UserID)
		if gerr != nil {
			// Deleted between the failed insert and the lookup.
			return nil, err
		}
		s.log.Debug(ctx, "duplicate document", "name", name, "user_id", p.UserID)
		return nil, &DuplicateDocumentError{Existing: existing}
	}

	s.log.Info(ctx, "document saved", "id", doc.ID, "user_id", p.UserID, "bytes", len(content))
	return doc, nil
}

// List returns the caller's documents in upload order.
func (s *DocumentService) List(ctx context.Context, p *Principal) ([]*models.Document, error) {
	if err := p.check(s.now()); err != nil {
		return nil, err
	}
	return s.repomanager.Documents().List(ctx, p.UserID)
}

// Delete removes one of the caller's documents. IDs the caller does not own,
// including already deleted ones, are ignored.
func (s *DocumentService) Delete(ctx context.Context, p *Principal, id int64) error {
	docs, err := s.List(ctx, p)
	if err != nil {
		return err
	}

	for _, d := range docs {
		if d.ID == id {
			if err := s.repomanager.Documents().Delete(ctx, id); err != nil {
				return fmt.Errorf("error deleting document: %w", err)
			}
			s.log.Info(ctx, "document deleted", "id", id, "user_id", p.UserID)
			return nil
		}
	}
	return nil
}

func (s *DocumentService) Exists(ctx context.Context, p *Principal, name string) (bool, error) {
	if err := p.check(s.now()); err != nil {
		return false, err
	}
	return s.repomanager.Documents().Exists(ctx, strings.TrimSpace(name), p.UserID)
}

func (s *DocumentService) GetByName(ctx context.Context, p *Principal, name string) (*models.Document, error) {
	if err := p.check(s.now()); err != nil {
		return nil, err
	}
	return s.repomanager.Documents().GetByName(ctx, strings.TrimSpace(name), p.UserID)
}

// Similarities compares every pair of the caller's documents and returns the
// visible matches per document. The comparison runs on a snapshot; uploads
// that land meanwhile are not reflected.
func (s *DocumentService) Similarities(ctx context.Context, p *Principal) ([]report.Entry, error) {
	docs, err := s.List(ctx, p)
	if err != nil {
		return nil, err
	}

	start := s.now()
	m, err := s.engine.Pairwise(ctx, docs)
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "similarities computed", "documents", len(docs), "pairs", len(m), "elapsed", s.now().Sub(start))

	return report.Build(docs, m), nil
}
