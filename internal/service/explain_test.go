package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/sakif/code-explainer/internal/apperror"
	"github.com/sakif/code-explainer/internal/model"
	"github.com/sakif/code-explainer/internal/repository"
)

// mockCompleter is a fake remote model. It records whether (and with what)
// it was called, and returns a canned response or error.
type mockCompleter struct {
	response       string
	err            error
	called         bool
	capturedSystem string
	capturedUser   string
}

func (m *mockCompleter) ChatCompletion(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.called = true
	m.capturedSystem = systemPrompt
	m.capturedUser = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockCompleter) Model() string { return "test-model" }

// mockExplanationRepo is an in-memory stand-in for the sqlite store.
type mockExplanationRepo struct {
	explanations map[string]*model.Explanation
	createErr    error
	nextID       int
}

func newMockRepo() *mockExplanationRepo {
	return &mockExplanationRepo{explanations: make(map[string]*model.Explanation)}
}

func (m *mockExplanationRepo) Create(_ context.Context, exp *model.Explanation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	exp.ID = fmt.Sprintf("mock-%d", m.nextID)
	stored := *exp
	m.explanations[exp.ID] = &stored
	return nil
}

func (m *mockExplanationRepo) GetByID(_ context.Context, id string) (*model.Explanation, error) {
	exp, ok := m.explanations[id]
	if !ok {
		return nil, apperror.NotFound("explanation", id)
	}
	result := *exp
	return &result, nil
}

func (m *mockExplanationRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Explanation, error) {
	result := make([]model.Explanation, 0, len(m.explanations))
	for _, exp := range m.explanations {
		result = append(result, *exp)
	}
	return result, nil
}

func (m *mockExplanationRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.explanations[id]; !ok {
		return apperror.NotFound("explanation", id)
	}
	delete(m.explanations, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(t *testing.T) (*ExplainService, *mockCompleter, *mockExplanationRepo) {
	t.Helper()
	completer := &mockCompleter{response: "an explanation"}
	repo := newMockRepo()
	svc := NewExplainService(completer, repo, testLogger())
	return svc, completer, repo
}

// =========================================================================
// PRECONDITION TESTS — no network call may happen on bad input
// =========================================================================

func TestExplain_BlankCode(t *testing.T) {
	for _, code := range []string{"", "   ", "\n\t  \n"} {
		svc, completer, _ := newTestService(t)

		_, err := svc.Explain(context.Background(), code, "Python", model.TierBeginner)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Explain(%q) error = %v, want ErrValidation", code, err)
		}
		if completer.called {
			t.Errorf("Explain(%q) reached the remote model", code)
		}
	}
}

func TestExplain_CodeTooLong(t *testing.T) {
	svc, completer, _ := newTestService(t)

	_, err := svc.Explain(context.Background(), strings.Repeat("x", MaxCodeLength+1), "Python", model.TierBeginner)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Explain() error = %v, want ErrValidation", err)
	}
	if completer.called {
		t.Error("oversized code reached the remote model")
	}
}

func TestExplain_UnknownLanguage(t *testing.T) {
	svc, completer, _ := newTestService(t)

	_, err := svc.Explain(context.Background(), "x = 1", "Brainfuck", model.TierBeginner)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Explain() error = %v, want ErrValidation", err)
	}
	if completer.called {
		t.Error("unknown language reached the remote model")
	}
}

func TestExplain_UnknownTier(t *testing.T) {
	svc, completer, _ := newTestService(t)

	_, err := svc.Explain(context.Background(), "x = 1", "Python", model.Tier("Wizard"))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Explain() error = %v, want ErrValidation", err)
	}
	if completer.called {
		t.Error("unknown tier reached the remote model")
	}
}

func TestExplain_MissingCredential(t *testing.T) {
	// nil completer = no API key was configured at startup
	svc := NewExplainService(nil, newMockRepo(), testLogger())

	_, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierBeginner)
	if !errors.Is(err, apperror.ErrUnavailable) {
		t.Errorf("Explain() error = %v, want ErrUnavailable", err)
	}
}

// =========================================================================
// REMOTE CALL TESTS
// =========================================================================

func TestExplain_Success_VerbatimText(t *testing.T) {
	svc, completer, _ := newTestService(t)
	// Leading/trailing whitespace must survive — no trimming, no reformatting.
	completer.response = "  X\n"

	exp, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierBeginner)
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if exp.Explanation != "  X\n" {
		t.Errorf("Explanation = %q, want %q unmodified", exp.Explanation, "  X\n")
	}
	if exp.Model != "test-model" {
		t.Errorf("Model = %q, want %q", exp.Model, "test-model")
	}
}

func TestExplain_SendsPersonaAndPrompt(t *testing.T) {
	svc, completer, _ := newTestService(t)

	_, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierAdvanced)
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}

	if !strings.Contains(completer.capturedSystem, "expert programming instructor") {
		t.Errorf("system message = %q, want the instructor persona", completer.capturedSystem)
	}
	if !strings.Contains(completer.capturedUser, "print('hi')") {
		t.Error("user prompt does not contain the code")
	}
	if !strings.Contains(completer.capturedUser, "```python\n") {
		t.Error("user prompt does not fence the code with the lower-cased label")
	}
}

func TestExplain_RemoteFault_ErrorsAsContent(t *testing.T) {
	svc, completer, repo := newTestService(t)
	completer.err = errors.New("api status 401: invalid api key")

	exp, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierBeginner)
	if err != nil {
		t.Fatalf("Explain() error = %v, want nil (fault is returned as content)", err)
	}

	if !strings.HasPrefix(exp.Explanation, "Error explaining code: ") {
		t.Errorf("Explanation = %q, want the error-as-content prefix", exp.Explanation)
	}
	if !strings.Contains(exp.Explanation, "invalid api key") {
		t.Errorf("Explanation = %q, want the fault detail included", exp.Explanation)
	}

	// Faults are never persisted to history.
	if exp.ID != "" {
		t.Errorf("ID = %q, want empty for a failed explanation", exp.ID)
	}
	if len(repo.explanations) != 0 {
		t.Errorf("history has %d entries, want 0", len(repo.explanations))
	}
}

// =========================================================================
// HISTORY PERSISTENCE TESTS
// =========================================================================

func TestExplain_Success_Persisted(t *testing.T) {
	svc, _, repo := newTestService(t)

	exp, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierIntermediate)
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}

	if exp.ID == "" {
		t.Fatal("expected a persisted explanation to have an ID")
	}
	stored, err := repo.GetByID(context.Background(), exp.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Explanation != "an explanation" {
		t.Errorf("stored Explanation = %q, want %q", stored.Explanation, "an explanation")
	}
	if stored.Tier != model.TierIntermediate {
		t.Errorf("stored Tier = %q, want %q", stored.Tier, model.TierIntermediate)
	}
}

func TestExplain_HistoryWriteFailure_StillReturnsExplanation(t *testing.T) {
	svc, _, repo := newTestService(t)
	repo.createErr = errors.New("disk full")

	exp, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierBeginner)
	if err != nil {
		t.Fatalf("Explain() error = %v, want nil — history is best-effort", err)
	}
	if exp.Explanation != "an explanation" {
		t.Errorf("Explanation = %q, want the model text despite the failed write", exp.Explanation)
	}
	if exp.ID != "" {
		t.Errorf("ID = %q, want empty after a failed write", exp.ID)
	}
}

func TestExplain_NilRepo(t *testing.T) {
	completer := &mockCompleter{response: "an explanation"}
	svc := NewExplainService(completer, nil, testLogger())

	exp, err := svc.Explain(context.Background(), "print('hi')", "Python", model.TierBeginner)
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if exp.Explanation != "an explanation" {
		t.Errorf("Explanation = %q, want %q", exp.Explanation, "an explanation")
	}
}

func TestReady(t *testing.T) {
	withKey := NewExplainService(&mockCompleter{}, nil, testLogger())
	if !withKey.Ready() {
		t.Error("Ready() = false with a completer configured")
	}

	withoutKey := NewExplainService(nil, nil, testLogger())
	if withoutKey.Ready() {
		t.Error("Ready() = true with no completer configured")
	}
}
