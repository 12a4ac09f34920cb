package repository

import (
	"context"

	"github.com/sakif/code-explainer/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// ExplanationRepository stores completed explanations (the history feature).
// The explain path itself never depends on this — a nil/failing store only
// costs the history list, never an explanation.
type ExplanationRepository interface {
	Create(ctx context.Context, exp *model.Explanation) error
	GetByID(ctx context.Context, id string) (*model.Explanation, error)
	List(ctx context.Context, opts ListOptions) ([]model.Explanation, error)
	Delete(ctx context.Context, id string) error
}
