package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/lessoner/internal/generator"
	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	"github.com/at-ishikawa/lessoner/internal/prompt"
)

const (
	StepSubject = iota + 1
	StepGradeLevel
	StepTopic
	// StepResult is where the generated plan is displayed
	StepResult

	MinStep = StepSubject
)

const (
	labelContinue   = "Continue"
	labelGenerating = "Generating..."

	messageLoading = "generating plan"
	messageSuccess = "generated"
	messageFailure = "error on generating"
)

type field struct {
	label string
	help  string
	value *string
}

// Wizard collects the generate request through one step per field and
// keeps the result of the last submission.
type Wizard struct {
	Subject    string
	GradeLevel string
	Topic      string

	step     int
	loading  bool
	result   *lessonplan.LessonPlan
	client   generator.Client
	notifier Notifier
}

func New(client generator.Client, notifier Notifier) *Wizard {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Wizard{
		step:     MinStep,
		client:   client,
		notifier: notifier,
	}
}

func (w *Wizard) Step() int {
	return w.step
}

// Next moves forward. There is no upper bound.
func (w *Wizard) Next() {
	w.step++
}

// Back moves backward, never below MinStep.
func (w *Wizard) Back() {
	if w.step > MinStep {
		w.step--
	}
}

func (w *Wizard) Loading() bool {
	return w.loading
}

// Result returns the plan of the last successful submission, or nil.
func (w *Wizard) Result() *lessonplan.LessonPlan {
	return w.result
}

func (w *Wizard) SubmitLabel() string {
	if w.loading {
		return labelGenerating
	}
	return labelContinue
}

func (w *Wizard) Request() lessonplan.GenerateRequest {
	return lessonplan.GenerateRequest{
		Subject:    strings.TrimSpace(w.Subject),
		GradeLevel: strings.TrimSpace(w.GradeLevel),
		Topic:      strings.TrimSpace(w.Topic),
	}
}

// Submit sends the collected fields to the generator.
// An incomplete request never reaches the client. A failed call clears the
// previous result.
func (w *Wizard) Submit(ctx context.Context) (*lessonplan.LessonPlan, error) {
	request := w.Request()
	if err := request.Validate(); err != nil {
		return nil, err
	}

	w.loading = true
	defer func() {
		w.loading = false
	}()
	w.notifier.Loading(messageLoading)

	plan, err := w.client.Generate(ctx, request)
	if err == nil && plan == nil {
		err = fmt.Errorf("%w: empty lesson plan", generator.ErrGenerationFailed)
	}
	if err != nil {
		w.result = nil
		w.notifier.Failure(messageFailure)
		return nil, fmt.Errorf("client.Generate > %w", err)
	}

	w.result = plan
	w.step = StepResult
	w.notifier.Success(messageSuccess)
	return plan, nil
}

func (w *Wizard) fields() map[int]field {
	return map[int]field{
		StepSubject: {
			label: "Subject",
			help:  "e.g., Math, Science",
			value: &w.Subject,
		},
		StepGradeLevel: {
			label: "Grade Level",
			help:  "e.g., 5th Grade",
			value: &w.GradeLevel,
		},
		StepTopic: {
			label: "Lesson Topic",
			help:  "e.g., Fractions, Photosynthesis",
			value: &w.Topic,
		},
	}
}

// Run asks every field in order, confirms, and submits.
// Declining the confirmation goes back to the first step with the answers kept as defaults.
func (w *Wizard) Run(ctx context.Context, prompter prompt.Prompter) (*lessonplan.LessonPlan, error) {
	fields := w.fields()
	for {
		for {
			f, ok := fields[w.step]
			if !ok {
				return nil, fmt.Errorf("unexpected wizard step %d", w.step)
			}
			value, err := prompter.Input(ctx, prompt.InputConfig{
				Message:   f.label,
				Default:   *f.value,
				Help:      f.help,
				Validator: required(f.label),
			})
			if err != nil {
				return nil, fmt.Errorf("prompter.Input(%s) > %w", f.label, err)
			}
			*f.value = strings.TrimSpace(value)

			if w.step == StepTopic {
				break
			}
			w.Next()
		}

		confirmed, err := prompter.Confirm(ctx, prompt.ConfirmConfig{
			Message: fmt.Sprintf("%s with subject %q, grade level %q and topic %q?", w.SubmitLabel(), w.Subject, w.GradeLevel, w.Topic),
			Default: true,
		})
		if err != nil {
			return nil, fmt.Errorf("prompter.Confirm > %w", err)
		}
		if confirmed {
			return w.Submit(ctx)
		}
		for w.step > MinStep {
			w.Back()
		}
	}
}

func required(label string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}
