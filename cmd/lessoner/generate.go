package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/at-ishikawa/lessoner/internal/config"
	"github.com/at-ishikawa/lessoner/internal/generator"
	"github.com/at-ishikawa/lessoner/internal/generator/httpapi"
	"github.com/at-ishikawa/lessoner/internal/pdf"
	"github.com/at-ishikawa/lessoner/internal/prompt"
	"github.com/at-ishikawa/lessoner/internal/render"
	"github.com/at-ishikawa/lessoner/internal/wizard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	subject    string
	gradeLevel string
	topic      string

	format    render.Format
	output    string
	exportPDF bool
	darkPDF   bool
}

func (opts generateOptions) interactive() bool {
	return opts.subject == "" || opts.gradeLevel == "" || opts.topic == ""
}

func (opts *generateOptions) normalize() error {
	if !opts.exportPDF {
		return nil
	}
	if opts.format != "" && opts.format != render.FormatMarkdown {
		return fmt.Errorf("--pdf requires the %s format, got %s", render.FormatMarkdown, opts.format)
	}
	opts.format = render.FormatMarkdown
	if opts.output != "" && filepath.Ext(opts.output) != ".md" {
		return fmt.Errorf("--pdf requires an --output file with .md extension: %s", opts.output)
	}
	return nil
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{
		format: render.FormatText,
	}

	command := &cobra.Command{
		Use:   "generate",
		Short: "Generate a lesson plan",
		Long: "Generate a lesson plan. The subject, the grade level and the topic are asked interactively\n" +
			"unless all of them are given by flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.exportPDF && !cmd.Flags().Changed("format") {
				opts.format = render.FormatMarkdown
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := httpapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.RetryAttempts)
			defer func() {
				_ = client.Close()
			}()

			return runGenerate(
				cmd.Context(),
				opts,
				cfg,
				client,
				prompt.NewSurveyPrompter(),
				cmd.OutOrStdout(),
				cmd.ErrOrStderr(),
			)
		},
	}

	command.Flags().StringVar(&opts.subject, "subject", "", "Subject, e.g. Math")
	command.Flags().StringVar(&opts.gradeLevel, "grade", "", "Grade level, e.g. 5th Grade")
	command.Flags().StringVar(&opts.topic, "topic", "", "Lesson topic, e.g. Fractions")
	command.Flags().Var(&opts.format, "format", fmt.Sprintf("Output format. One of %v", render.AllFormats()))
	command.Flags().StringVarP(&opts.output, "output", "o", "", "Write the lesson plan to a file instead of stdout")
	command.Flags().BoolVar(&opts.exportPDF, "pdf", false, "Also export the markdown lesson plan as PDF")
	command.Flags().BoolVar(&opts.darkPDF, "dark", false, "Use the dark theme for the PDF")

	return command
}

func runGenerate(
	ctx context.Context,
	opts generateOptions,
	cfg *config.Config,
	client generator.Client,
	prompter prompt.Prompter,
	stdout io.Writer,
	stderr io.Writer,
) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	w := wizard.New(client, wizard.NewColorNotifier(stderr))
	w.Subject = opts.subject
	w.GradeLevel = opts.gradeLevel
	w.Topic = opts.topic

	var runErr error
	if opts.interactive() {
		_, runErr = w.Run(ctx, prompter)
	} else {
		_, runErr = w.Submit(ctx)
	}
	if runErr != nil {
		if errors.Is(runErr, prompt.ErrAborted) {
			_, _ = fmt.Fprintln(stderr, "aborted")
			return nil
		}
		return fmt.Errorf("wizard > %w", runErr)
	}

	output := opts.output
	if opts.exportPDF && output == "" {
		output = filepath.Join(cfg.Outputs.Directory, fileName(w.Topic)+".md")
	}

	renderer, err := render.New(opts.format, render.Options{
		MarkdownTemplate: cfg.Templates.MarkdownFile,
		Color:            output == "" && !color.NoColor,
	})
	if err != nil {
		return fmt.Errorf("render.New > %w", err)
	}

	if output == "" {
		if err := renderer.Render(stdout, w.Result()); err != nil {
			return fmt.Errorf("renderer.Render > %w", err)
		}
		return nil
	}

	if err := writeFile(output, renderer, w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Lesson plan written to %s\n", output)

	if !opts.exportPDF {
		return nil
	}
	pdfPath, err := pdf.ConvertMarkdownToPDF(output, pdf.Options{Dark: opts.darkPDF})
	if err != nil {
		return fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", output, err)
	}
	_, _ = fmt.Fprintf(stdout, "PDF written to %s\n", pdfPath)
	return nil
}

func writeFile(path string, renderer render.Renderer, w *wizard.Wizard) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	if err := renderer.Render(file, w.Result()); err != nil {
		_ = file.Close()
		return fmt.Errorf("renderer.Render(%s) > %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", path, err)
	}
	return nil
}

// fileName turns a topic into a lowercase, hyphen separated file name
func fileName(topic string) string {
	var builder strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			builder.WriteRune('-')
			lastHyphen = true
		}
	}

	name := strings.TrimSuffix(builder.String(), "-")
	if name == "" {
		return "lesson-plan"
	}
	return name
}
