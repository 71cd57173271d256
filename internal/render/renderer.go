package render

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	"github.com/spf13/pflag"
)

// Renderer writes a lesson plan. A nil plan writes nothing.
type Renderer interface {
	Render(w io.Writer, plan *lessonplan.LessonPlan) error
}

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatText, FormatMarkdown, FormatYAML, FormatJSON}
)

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s. Possible values are %v", val, allFormats)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "format"
}

func AllFormats() []Format {
	return allFormats
}

type Options struct {
	// MarkdownTemplate overrides the embedded markdown template
	MarkdownTemplate string
	// Color enables escape sequences in the text format
	Color bool
}

func New(format Format, options Options) (Renderer, error) {
	switch format {
	case FormatText, "":
		terminal := NewTerminal()
		if !options.Color {
			terminal.WithoutColor()
		}
		return terminal, nil
	case FormatMarkdown:
		return NewMarkdown(options.MarkdownTemplate), nil
	case FormatYAML:
		return YAML{}, nil
	case FormatJSON:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
