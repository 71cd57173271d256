package generator

import (
	"context"
	"errors"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
)

//go:generate mockgen -source=interface.go -destination=../mocks/generator/mock_client.go -package=mock_generator

// Client generates a lesson plan from the wizard's answers
type Client interface {
	Generate(ctx context.Context, request lessonplan.GenerateRequest) (*lessonplan.LessonPlan, error)
}

// ErrGenerationFailed covers every failure of a generate call:
// network errors, non-2xx responses and malformed bodies.
var ErrGenerationFailed = errors.New("error on generating")

const (
	DefaultMaxRetryAttempts = 0
)
