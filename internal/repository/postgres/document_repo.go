package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func isDuplicateDocumentNo(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, "documents_type_no_key")
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, document_type, document_no, document_date,
		party_id, party_name, header, items, totals,
		item_count, rounded_total, total_tax,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8, $9,
		$10, $11, $12,
		$13, $14
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.DocumentType, doc.DocumentNo, doc.DocumentDate,
		doc.PartyID, doc.PartyName, doc.Header, doc.Items, doc.Totals,
		doc.ItemCount, doc.RoundedTotal, doc.TotalTax,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if isDuplicateDocumentNo(err) {
			return domain.ErrDuplicateDocumentNo
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND document_type = $2", docID, docType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByType(ctx context.Context, docType domain.DocumentType, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE document_type = $1", docType)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByType count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE document_type = $1
		 ORDER BY document_date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		docType, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByType: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			document_no = $1, document_date = $2,
			party_id = $3, party_name = $4,
			header = $5, items = $6, totals = $7,
			item_count = $8, rounded_total = $9, total_tax = $10,
			updated_at = $11
		 WHERE id = $12 AND document_type = $13`,
		doc.DocumentNo, doc.DocumentDate,
		doc.PartyID, doc.PartyName,
		doc.Header, doc.Items, doc.Totals,
		doc.ItemCount, doc.RoundedTotal, doc.TotalTax,
		doc.UpdatedAt,
		doc.ID, doc.DocumentType)
	if err != nil {
		if isDuplicateDocumentNo(err) {
			return domain.ErrDuplicateDocumentNo
		}
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND document_type = $2", docID, docType)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
