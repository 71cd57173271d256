package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
)

const lessonPlanTemplateName = "lesson-plan.md.go.tmpl"

//go:embed templates/lesson-plan.md.go.tmpl
var fallbackLessonPlanTemplate string

// LessonPlanTemplate is the data passed to the lesson plan markdown template.
// A section whose value is empty or nil is not written.
type LessonPlanTemplate struct {
	Topic          string
	Objective      string
	TargetAudience string
	Duration       string
	Introduction   *TextBlock
	Methods        []string
	Examples       []lessonplan.Example
	Quiz           *lessonplan.Quiz
	Application    *TextBlock
}

// TextBlock is either a paragraph or a list of "key: value" entries
type TextBlock struct {
	Text    string
	Entries []string
}

func ParseLessonPlanTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, lessonPlanTemplateName, fallbackLessonPlanTemplate)
}

func WriteLessonPlan(output io.Writer, templatePath string, templateData LessonPlanTemplate) error {
	tmpl, err := ParseLessonPlanTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseLessonPlanTemplate(%s) > %w", templatePath, err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	// First, try to read from the filesystem
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
