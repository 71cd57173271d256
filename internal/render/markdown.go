package render

import (
	"io"

	"github.com/at-ishikawa/lessoner/internal/assets"
	"github.com/at-ishikawa/lessoner/internal/lessonplan"
)

// Markdown writes a lesson plan with the markdown template.
// An empty templatePath uses the embedded template.
type Markdown struct {
	templatePath string
}

func NewMarkdown(templatePath string) *Markdown {
	return &Markdown{templatePath: templatePath}
}

func (r *Markdown) Render(w io.Writer, plan *lessonplan.LessonPlan) error {
	if plan == nil {
		return nil
	}
	return assets.WriteLessonPlan(w, r.templatePath, toTemplateData(plan))
}

func toTemplateData(plan *lessonplan.LessonPlan) assets.LessonPlanTemplate {
	data := assets.LessonPlanTemplate{
		Topic:          plan.Topic,
		Objective:      plan.Objective,
		TargetAudience: plan.TargetAudience,
		Duration:       plan.Duration,
		Introduction:   toTextBlock(plan.Introduction()),
		Methods:        plan.Methods,
		Examples:       plan.Examples,
		Application:    toTextBlock(plan.Application),
	}
	if plan.Quiz.HasContent() {
		data.Quiz = plan.Quiz
	}
	return data
}

func toTextBlock(value *lessonplan.TextOrMapping) *assets.TextBlock {
	if !value.IsPresent() {
		return nil
	}
	if value.IsMapping() {
		return &assets.TextBlock{Entries: TextOrMapping(value)}
	}
	return &assets.TextBlock{Text: value.Text()}
}
