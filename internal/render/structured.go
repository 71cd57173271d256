package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	"gopkg.in/yaml.v3"
)

// YAML writes only the present fields of a lesson plan
type YAML struct{}

func (YAML) Render(w io.Writer, plan *lessonplan.LessonPlan) error {
	if plan == nil {
		return nil
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("yaml.Encoder.Close > %w", err)
	}
	return nil
}

// JSON writes only the present fields of a lesson plan
type JSON struct{}

func (JSON) Render(w io.Writer, plan *lessonplan.LessonPlan) error {
	if plan == nil {
		return nil
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("json.Encoder.Encode > %w", err)
	}
	return nil
}
