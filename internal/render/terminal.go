package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	"github.com/fatih/color"
)

// Terminal writes a lesson plan as colored sections
type Terminal struct {
	title   *color.Color
	heading *color.Color
	bold    *color.Color
	link    *color.Color
}

func NewTerminal() *Terminal {
	return &Terminal{
		title:   color.New(color.Bold),
		heading: color.New(color.Bold, color.FgMagenta),
		bold:    color.New(color.Bold),
		link:    color.New(color.FgBlue, color.Underline),
	}
}

// WithoutColor disables escape sequences, for writing to files
func (r *Terminal) WithoutColor() *Terminal {
	r.title.DisableColor()
	r.heading.DisableColor()
	r.bold.DisableColor()
	r.link.DisableColor()
	return r
}

// sectionWriter keeps the first write error so that every section does not need to check it
type sectionWriter struct {
	w   io.Writer
	err error
}

func (sw *sectionWriter) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

// indented writes every line of text two spaces in, so multi-line values stay inside their section
func (sw *sectionWriter) indented(text string) {
	for _, line := range strings.Split(text, "\n") {
		sw.printf("  %s\n", line)
	}
}

func (sw *sectionWriter) colorf(c *color.Color, format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = c.Fprintf(sw.w, format, args...)
}

func (r *Terminal) Render(w io.Writer, plan *lessonplan.LessonPlan) error {
	if plan == nil {
		return nil
	}

	sw := &sectionWriter{w: w}
	sw.colorf(r.title, "Generated Lesson Plan")
	sw.printf("\n")

	r.textSection(sw, "📘 Topic", plan.Topic)
	r.textSection(sw, "🎯 Objective", plan.Objective)
	r.textSection(sw, "👥 Target Audience", plan.TargetAudience)
	r.textSection(sw, "⏱ Duration", plan.Duration)
	r.linesSection(sw, "📚 Introduction", TextOrMapping(plan.Introduction()))

	if len(plan.Methods) > 0 {
		r.sectionHeading(sw, "⚙️ Methods")
		for _, method := range plan.Methods {
			sw.printf("  • %s\n", method)
		}
	}

	if len(plan.Examples) > 0 {
		r.sectionHeading(sw, "🧪 Examples")
		for i, example := range plan.Examples {
			if i > 0 {
				sw.printf("\n")
			}
			sw.colorf(r.bold, "  Problem:")
			sw.printf(" %s\n", example.Problem)
			sw.colorf(r.bold, "  Solution:")
			sw.printf(" %s\n", example.Solution)
		}
	}

	if plan.Quiz.HasContent() {
		r.sectionHeading(sw, "📝 Quiz")
		if plan.Quiz.LeetCodeLink != "" {
			sw.printf("  • LeetCode Problem: ")
			sw.colorf(r.link, "%s", plan.Quiz.LeetCodeLink)
			sw.printf("\n")
		}
		if plan.Quiz.GFGLink != "" {
			sw.printf("  • GeeksForGeeks Problem: ")
			sw.colorf(r.link, "%s", plan.Quiz.GFGLink)
			sw.printf("\n")
		}
		for _, question := range plan.Quiz.Questions {
			sw.colorf(r.bold, "  • Q:")
			sw.printf(" %s\n", question.Question)
			sw.colorf(r.bold, "    A:")
			sw.printf(" %s\n", question.Answer)
		}
	}

	r.linesSection(sw, "🔍 Applications", TextOrMapping(plan.Application))

	if sw.err != nil {
		return fmt.Errorf("failed to write a lesson plan > %w", sw.err)
	}
	return nil
}

func (r *Terminal) sectionHeading(sw *sectionWriter, heading string) {
	sw.printf("\n")
	sw.colorf(r.heading, "%s", heading)
	sw.printf("\n")
}

func (r *Terminal) textSection(sw *sectionWriter, heading, text string) {
	if text == "" {
		return
	}
	r.sectionHeading(sw, heading)
	sw.indented(text)
}

func (r *Terminal) linesSection(sw *sectionWriter, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	r.sectionHeading(sw, heading)
	for _, line := range lines {
		sw.indented(line)
	}
}
