package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a single line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

//go:generate mockgen -source=prompter.go -destination=../mocks/prompt/mock_prompter.go -package=mock_prompt Prompter

// Prompter asks the user for values so the wizard can be tested without a terminal
type Prompter interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

type SurveyPrompter struct {
	stdio terminal.Stdio
}

var _ Prompter = (*SurveyPrompter)(nil)

func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{
		stdio: terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	}
}

func (p *SurveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	question := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	opts := []survey.AskOpt{
		survey.WithStdio(p.stdio.In, p.stdio.Out, p.stdio.Err),
	}
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(answer interface{}) error {
			text, ok := answer.(string)
			if !ok {
				return fmt.Errorf("unexpected answer type %T", answer)
			}
			return validator(text)
		}))
	}
	if err := survey.AskOne(question, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *SurveyPrompter) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	question := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(question, &out, survey.WithStdio(p.stdio.In, p.stdio.Out, p.stdio.Err)); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
