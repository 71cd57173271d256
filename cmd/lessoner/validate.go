package main

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/lessoner/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			displayConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func displayConfig(w io.Writer, cfg *config.Config) {
	markdownTemplate := cfg.Templates.MarkdownFile
	if markdownTemplate == "" {
		markdownTemplate = "(embedded)"
	}

	_, _ = fmt.Fprintln(w, "=== Configuration ===")
	_, _ = fmt.Fprintf(w, "  API base URL:      %s\n", cfg.API.BaseURL)
	_, _ = fmt.Fprintf(w, "  API timeout:       %s\n", cfg.API.Timeout)
	_, _ = fmt.Fprintf(w, "  Retry attempts:    %d\n", cfg.API.RetryAttempts)
	_, _ = fmt.Fprintf(w, "  Markdown template: %s\n", markdownTemplate)
	_, _ = fmt.Fprintf(w, "  Output directory:  %s\n", cfg.Outputs.Directory)
	_, _ = fmt.Fprintln(w, "✓ Configuration is valid!")
}
