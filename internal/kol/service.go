// AngelaMos | 2026
// service.go

package kol

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/kol-backend/internal/core"
)

type Service struct {
	repo    Repository
	rules   RuleSet
	clean   *core.Sanitizer
	builder *UpdateBuilder
}

func NewService(repo Repository, sanitizer *core.Sanitizer) *Service {
	rules := DefaultRules()
	return &Service{
		repo:    repo,
		rules:   rules,
		clean:   sanitizer,
		builder: NewUpdateBuilder(rules, sanitizer.Clean),
	}
}

func (s *Service) List(ctx context.Context) ([]KOL, error) {
	records, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Create validates the full payload in declaration order, sanitizes string
// values, assigns the identifier, and inserts. The store is never reached
// when any field fails.
func (s *Service) Create(
	ctx context.Context,
	fields map[string]any,
) (*KOL, error) {
	normalized, err := s.rules.ValidateRecord(fields)
	if err != nil {
		return nil, err
	}

	for name, value := range normalized {
		if str, ok := value.(string); ok {
			normalized[name] = s.clean.Clean(str)
		}
	}

	record := fromMap(normalized)
	record.ID = uuid.New().String()

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	return record, nil
}

// Update builds the partial-update directive and applies it, returning the
// changed attributes. Builder failures abort before any store call.
func (s *Service) Update(
	ctx context.Context,
	id string,
	fields map[string]any,
) (map[string]any, error) {
	directive, err := s.builder.Build(id, fields)
	if err != nil {
		return nil, err
	}

	changed, err := s.repo.ApplyUpdate(ctx, directive)
	if err != nil {
		return nil, fmt.Errorf("apply update: %w", err)
	}

	return changed, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
