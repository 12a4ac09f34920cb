package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/code-explainer/internal/apperror"
	"github.com/sakif/code-explainer/internal/model"
	"github.com/sakif/code-explainer/internal/repository"
)

// Pagination bounds for history listing.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// HistoryService reads and prunes the stored explanation history.
type HistoryService struct {
	repo   repository.ExplanationRepository
	logger *slog.Logger
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(repo repository.ExplanationRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		logger: logger,
	}
}

// GetByID retrieves one stored explanation.
// Returns apperror.ErrNotFound if no record has that ID.
func (s *HistoryService) GetByID(ctx context.Context, id string) (*model.Explanation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "explanation ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// List retrieves stored explanations newest-first, with the limit clamped to
// a sane range so a caller can't request the whole table.
func (s *HistoryService) List(ctx context.Context, limit, offset int) ([]model.Explanation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	explanations, err := s.repo.List(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.logger.Error("failed to list history", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing history: %w", err)
	}

	return explanations, nil
}

// Delete removes one stored explanation.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "explanation ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("history entry deleted", slog.String("id", id))
	return nil
}
