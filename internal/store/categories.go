package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// ResolveCategory maps a free-text label onto the closed taxonomy and
// returns the matching category row, creating it if needed. Labels that
// normalize to no taxonomy member, and nil or empty labels, resolve to
// the OTHER category. The result is never nil on success.
func (s *Store) ResolveCategory(ctx context.Context, label *string) (*domain.Category, error) {
	name := domain.CategoryOther
	if label != nil {
		if canonical, ok := domain.CanonicalCategoryName(*label); ok {
			name = canonical
		}
	}
	return s.GetOrCreateCategory(ctx, name)
}

// GetOrCreateCategory returns the row for a taxonomy member, creating it
// on first use. Safe under concurrent callers across processes: creation
// goes through the unique constraint on name with ON CONFLICT DO NOTHING,
// and a lost race re-reads the winner instead of erroring.
func (s *Store) GetOrCreateCategory(ctx context.Context, name domain.CategoryName) (*domain.Category, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("GetOrCreateCategory: %q is not a taxonomy member", name)
	}

	s.mu.Lock()
	cached := s.categories[name]
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var cat domain.Category
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	switch {
	case err == nil:
		s.cacheCategory(&cat)
		return &cat, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("GetOrCreateCategory: lookup %s: %w", name, err)
	}

	desc := domain.CategoryLabels[name]
	cat = domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: &desc,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&cat)
	if res.Error != nil {
		return nil, fmt.Errorf("GetOrCreateCategory: create %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the create race; the winner's row is authoritative.
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error; err != nil {
			return nil, fmt.Errorf("GetOrCreateCategory: re-read %s after conflict: %w", name, err)
		}
	}

	s.cacheCategory(&cat)
	return &cat, nil
}

func (s *Store) cacheCategory(cat *domain.Category) {
	copied := *cat
	s.mu.Lock()
	s.categories[cat.Name] = &copied
	s.mu.Unlock()
}

// SeedCategories creates every taxonomy row that does not exist yet.
// Idempotent; used by the migrate command.
func (s *Store) SeedCategories(ctx context.Context) error {
	for _, name := range domain.AllCategoryNames {
		if _, err := s.GetOrCreateCategory(ctx, name); err != nil {
			return fmt.Errorf("SeedCategories: %w", err)
		}
	}
	return nil
}
