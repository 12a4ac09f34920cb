// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier split:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (business) → validates, builds prompts, talks to the model
//	Repository (data)  → reads/writes the history store
//
// The service accepts plain values and returns domain errors — it knows
// nothing about HTTP. Handlers translate apperror values to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/code-explainer/internal/apperror"
	"github.com/sakif/code-explainer/internal/model"
	"github.com/sakif/code-explainer/internal/prompt"
	"github.com/sakif/code-explainer/internal/repository"
)

// MaxCodeLength bounds pasted code at ~100KB. Anything bigger would blow the
// model's context window long before it hit memory limits here.
const MaxCodeLength = 100000

// Completer is the slice of the Groq client the service depends on.
// An interface (rather than *groq.Client) keeps the service testable with a
// fake and keeps the provider swappable.
type Completer interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// ExplainService turns (code, language, tier) into an explanation.
//
// completer is nil when no credential was configured at startup — the
// service then refuses every request with an Unavailable error instead of
// ever reaching the network.
//
// repo may also be nil (history disabled). History is best-effort: a failed
// write is logged and the explanation is still returned.
type ExplainService struct {
	completer Completer
	repo      repository.ExplanationRepository
	logger    *slog.Logger
}

// NewExplainService creates an ExplainService. Both completer and repo are
// allowed to be nil; see the struct doc for the degraded behaviours.
func NewExplainService(completer Completer, repo repository.ExplanationRepository, logger *slog.Logger) *ExplainService {
	return &ExplainService{
		completer: completer,
		repo:      repo,
		logger:    logger,
	}
}

// Ready reports whether the service can reach the remote model, i.e. whether
// a credential was configured. The UI uses this to disable the Explain
// button before the user types anything.
func (s *ExplainService) Ready() bool {
	return s.completer != nil
}

// Explain validates the inputs, builds the prompt, and makes exactly one
// remote call.
//
// ERRORS-AS-CONTENT:
// A remote-call failure does NOT come back as an error. It is wrapped into
// the explanation text as "Error explaining code: <details>" and returned
// through the success channel, so the caller renders it in the output pane
// like any other answer. This mirrors the original tool's behaviour and is a
// deliberate choice (see DESIGN.md); validation and missing-credential
// problems, by contrast, are real errors caught before any network call.
//
// Successful explanations are persisted to history; errors-as-content
// results are not (their ID stays empty).
func (s *ExplainService) Explain(ctx context.Context, code, language string, tier model.Tier) (*model.Explanation, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperror.ValidationFailed("code", "please enter some code to explain")
	}
	if len(code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}
	if !model.ValidLanguage(language) {
		return nil, apperror.ValidationFailed("language",
			fmt.Sprintf("unknown language %q", language))
	}
	if !tier.Valid() {
		return nil, apperror.ValidationFailed("tier",
			fmt.Sprintf("unknown explanation level %q", tier))
	}

	if s.completer == nil {
		return nil, apperror.Unavailable("no API key configured — set GROQ_API_KEY and restart")
	}

	userPrompt, err := prompt.Build(code, language, tier)
	if err != nil {
		// Unreachable after the tier check above, but don't swallow it.
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	exp := &model.Explanation{
		Language: language,
		Tier:     tier,
		Code:     code,
		Model:    s.completer.Model(),
	}

	text, err := s.completer.ChatCompletion(ctx, prompt.SystemPersona, userPrompt)
	if err != nil {
		s.logger.Warn("explanation request failed",
			slog.String("language", language),
			slog.String("tier", string(tier)),
			slog.String("error", err.Error()),
		)
		exp.Explanation = fmt.Sprintf("Error explaining code: %v", err)
		return exp, nil
	}
	exp.Explanation = text

	if s.repo != nil {
		if err := s.repo.Create(ctx, exp); err != nil {
			// History is a convenience; losing one record must not turn a
			// good explanation into a failure.
			s.logger.Error("failed to save explanation to history",
				slog.String("error", err.Error()),
			)
			exp.ID = ""
		}
	}

	s.logger.Info("code explained",
		slog.String("id", exp.ID),
		slog.String("language", language),
		slog.String("tier", string(tier)),
		slog.Int("codeBytes", len(code)),
	)

	return exp, nil
}
