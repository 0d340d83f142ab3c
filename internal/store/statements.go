package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// NewStatement carries everything one successful extraction run persists.
type NewStatement struct {
	OwnerID      uuid.UUID
	AccountID    *uuid.UUID
	Title        string
	Description  string
	Metadata     domain.StatementMetadata
	Transactions []domain.Transaction
}

// CreateStatement writes the statement, its metadata row, and all
// transactions as a single database transaction and returns the hydrated
// aggregate. Any failure rolls the whole write back; no reader ever
// observes a partial statement. Zero transactions is a valid input at
// this layer.
func (s *Store) CreateStatement(ctx context.Context, in NewStatement) (*domain.Statement, error) {
	stmt := domain.Statement{
		ID:          uuid.New(),
		OwnerID:     in.OwnerID,
		AccountID:   in.AccountID,
		Title:       in.Title,
		Description: in.Description,
		IsActive:    true,
	}
	if stmt.Description == "" {
		stmt.Description = "Extracted bank statement data"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Metadata", "Transactions").Create(&stmt).Error; err != nil {
			return fmt.Errorf("insert statement: %w", err)
		}

		meta := in.Metadata
		meta.ID = uuid.New()
		meta.StatementID = stmt.ID
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("insert metadata: %w", err)
		}

		for i := range in.Transactions {
			row := &in.Transactions[i]
			if strings.TrimSpace(row.Evidence) == "" {
				return fmt.Errorf("transaction %d has empty evidence", i)
			}
			row.ID = uuid.New()
			row.StatementID = stmt.ID
			row.Category = nil
		}
		if len(in.Transactions) > 0 {
			if err := tx.Create(&in.Transactions).Error; err != nil {
				return fmt.Errorf("insert transactions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("CreateStatement: %w", err)
	}

	return s.GetStatement(ctx, stmt.ID, in.OwnerID)
}

// GetStatement returns one active statement owned by ownerID, hydrated
// with its metadata and date-ordered transactions.
func (s *Store) GetStatement(ctx context.Context, id, ownerID uuid.UUID) (*domain.Statement, error) {
	var stmt domain.Statement
	err := s.db.WithContext(ctx).
		Preload("Metadata").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, description ASC")
		}).
		Preload("Transactions.Category").
		Where("id = ? AND owner_id = ? AND is_active = ?", id, ownerID, true).
		First(&stmt).Error
	if err != nil {
		return nil, fmt.Errorf("GetStatement: %w", err)
	}
	return &stmt, nil
}

// ListStatements returns the owner's active statements, newest first,
// without their transaction lists.
func (s *Store) ListStatements(ctx context.Context, ownerID uuid.UUID) ([]domain.Statement, error) {
	var stmts []domain.Statement
	err := s.db.WithContext(ctx).
		Preload("Metadata").
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Find(&stmts).Error
	if err != nil {
		return nil, fmt.Errorf("ListStatements: %w", err)
	}
	return stmts, nil
}

// SoftDeleteStatement retires a statement by clearing its active flag.
// Rows stay in place; GetStatement and ListStatements stop returning it.
func (s *Store) SoftDeleteStatement(ctx context.Context, id, ownerID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&domain.Statement{}).
		Where("id = ? AND owner_id = ? AND is_active = ?", id, ownerID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("SoftDeleteStatement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("SoftDeleteStatement: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
