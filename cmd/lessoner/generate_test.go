package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/lessoner/internal/config"
	"github.com/at-ishikawa/lessoner/internal/generator"
	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	mock_generator "github.com/at-ishikawa/lessoner/internal/mocks/generator"
	mock_prompt "github.com/at-ishikawa/lessoner/internal/mocks/prompt"
	"github.com/at-ishikawa/lessoner/internal/prompt"
	"github.com/at-ishikawa/lessoner/internal/render"
	"github.com/at-ishikawa/lessoner/internal/testutil"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func disableColor(t *testing.T) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})
}

func TestNewGenerateCommand(t *testing.T) {
	cmd := newGenerateCommand()

	assert.Equal(t, "generate", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	for _, name := range []string{"subject", "grade", "topic", "output", "pdf", "dark"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	formatFlag := cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
	assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
}

func TestGenerateOptions_normalize(t *testing.T) {
	tests := []struct {
		name       string
		opts       generateOptions
		wantFormat render.Format
		wantErrMsg string
	}{
		{
			name:       "without pdf the format is kept",
			opts:       generateOptions{format: render.FormatJSON},
			wantFormat: render.FormatJSON,
		},
		{
			name:       "pdf rejects other formats",
			opts:       generateOptions{format: render.FormatText, exportPDF: true},
			wantErrMsg: "--pdf requires the markdown format, got text",
		},
		{
			name:       "pdf switches an unset format to markdown",
			opts:       generateOptions{exportPDF: true, output: "plan.md"},
			wantFormat: render.FormatMarkdown,
		},
		{
			name:       "pdf requires a markdown file",
			opts:       generateOptions{format: render.FormatMarkdown, exportPDF: true, output: "plan.txt"},
			wantErrMsg: "--output file with .md extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.normalize()
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, opts.format)
		})
	}
}

func TestGenerateOptions_interactive(t *testing.T) {
	assert.True(t, generateOptions{}.interactive())
	assert.True(t, generateOptions{subject: "Math", gradeLevel: "5th"}.interactive())
	assert.False(t, generateOptions{subject: "Math", gradeLevel: "5th", topic: "Fractions"}.interactive())
}

func TestRunGenerate(t *testing.T) {
	disableColor(t)

	request := lessonplan.GenerateRequest{Subject: "Math", GradeLevel: "5th", Topic: "Fractions"}
	plan := &lessonplan.LessonPlan{
		Topic:     "Fractions",
		Objective: "Understand parts of a whole",
	}

	tests := []struct {
		name          string
		opts          generateOptions
		setupClient   func(client *mock_generator.MockClient)
		setupPrompter func(prompter *mock_prompt.MockPrompter)

		wantErr        error
		wantErrMsg     string
		wantStdout     string
		wantStderr     []string
		wantOutputFile string
		wantFileHas    []string
	}{
		{
			name: "flags submit without prompting",
			opts: generateOptions{subject: "Math", gradeLevel: "5th", topic: "Fractions", format: render.FormatText},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), request).Return(plan, nil)
			},
			wantStdout: "Generated Lesson Plan\n" +
				"\n📘 Topic\n  Fractions\n" +
				"\n🎯 Objective\n  Understand parts of a whole\n",
			wantStderr: []string{"generating plan", "generated"},
		},
		{
			name: "json format",
			opts: generateOptions{subject: "Math", gradeLevel: "5th", topic: "Fractions", format: render.FormatJSON},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), request).Return(plan, nil)
			},
			wantStdout: "{\n  \"topic\": \"Fractions\",\n  \"objective\": \"Understand parts of a whole\"\n}\n",
		},
		{
			name: "blank flags never reach the client",
			opts: generateOptions{subject: "Math", gradeLevel: "5th", topic: "  "},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: lessonplan.ErrInvalidRequest,
		},
		{
			name: "generation failure",
			opts: generateOptions{subject: "Math", gradeLevel: "5th", topic: "Fractions"},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), request).
					Return(nil, generator.ErrGenerationFailed)
			},
			wantErr:    generator.ErrGenerationFailed,
			wantStderr: []string{"error on generating"},
		},
		{
			name: "interactive wizard uses answers",
			opts: generateOptions{subject: "Math", format: render.FormatYAML},
			setupPrompter: func(prompter *mock_prompt.MockPrompter) {
				gomock.InOrder(
					prompter.EXPECT().Input(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, cfg prompt.InputConfig) (string, error) {
							assert.Equal(t, "Math", cfg.Default)
							return "Math", nil
						}),
					prompter.EXPECT().Input(gomock.Any(), gomock.Any()).Return("5th", nil),
					prompter.EXPECT().Input(gomock.Any(), gomock.Any()).Return("Fractions", nil),
					prompter.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil),
				)
			},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), request).Return(plan, nil)
			},
			wantStdout: "topic: Fractions\nobjective: Understand parts of a whole\n",
		},
		{
			name: "aborted wizard is not an error",
			opts: generateOptions{},
			setupPrompter: func(prompter *mock_prompt.MockPrompter) {
				prompter.EXPECT().Input(gomock.Any(), gomock.Any()).Return("", prompt.ErrAborted)
			},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStderr: []string{"aborted"},
		},
		{
			name: "markdown written to a file",
			opts: generateOptions{subject: "Math", gradeLevel: "5th", topic: "Fractions", format: render.FormatMarkdown, output: "nested/plan.md"},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), request).Return(plan, nil)
			},
			wantOutputFile: "nested/plan.md",
			wantFileHas:    []string{"# Generated Lesson Plan", "## Topic\n\nFractions"},
		},
		{
			name: "invalid pdf options fail before prompting",
			opts: generateOptions{format: render.FormatYAML, exportPDF: true},
			setupClient: func(client *mock_generator.MockClient) {
				client.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErrMsg: "--pdf requires the markdown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			ctrl := gomock.NewController(t)
			client := mock_generator.NewMockClient(ctrl)
			prompter := mock_prompt.NewMockPrompter(ctrl)
			if tt.setupClient != nil {
				tt.setupClient(client)
			}
			if tt.setupPrompter != nil {
				tt.setupPrompter(prompter)
			}

			var stdout, stderr bytes.Buffer
			err := runGenerate(context.Background(), tt.opts, &config.Config{}, client, prompter, &stdout, &stderr)
			if tt.wantErr != nil || tt.wantErrMsg != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				require.NoError(t, err)
			}

			if tt.wantOutputFile != "" {
				content, readErr := os.ReadFile(tt.wantOutputFile)
				require.NoError(t, readErr)
				for _, want := range tt.wantFileHas {
					assert.Contains(t, string(content), want)
				}
				assert.Contains(t, stdout.String(), "Lesson plan written to "+tt.wantOutputFile)
			} else if tt.wantErr == nil && tt.wantErrMsg == "" {
				assert.Equal(t, tt.wantStdout, stdout.String())
			}
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr.String(), want)
			}
		})
	}
}

func TestRunGenerate_PDF(t *testing.T) {
	disableColor(t)

	outputDir := filepath.Join(t.TempDir(), "lesson_plans")
	ctrl := gomock.NewController(t)
	client := mock_generator.NewMockClient(ctrl)
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(&lessonplan.LessonPlan{
		Topic:   "Fractions",
		Methods: []string{"Visual models", "Group work"},
	}, nil)

	var stdout bytes.Buffer
	err := runGenerate(
		context.Background(),
		generateOptions{subject: "Math", gradeLevel: "5th", topic: "Adding Fractions!", exportPDF: true},
		&config.Config{Outputs: config.OutputsConfig{Directory: outputDir}},
		client,
		mock_prompt.NewMockPrompter(ctrl),
		&stdout,
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "adding-fractions.md"))
	assert.FileExists(t, filepath.Join(outputDir, "adding-fractions.pdf"))
	assert.Contains(t, stdout.String(), "PDF written to ")
}

func TestFileName(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{topic: "Fractions", want: "fractions"},
		{topic: "  Adding Fractions!  ", want: "adding-fractions"},
		{topic: "Photosynthesis & Respiration", want: "photosynthesis-respiration"},
		{topic: "1/2 + 1/4", want: "1-2-1-4"},
		{topic: "???", want: "lesson-plan"},
		{topic: "", want: "lesson-plan"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, fileName(tt.topic))
		})
	}
}

func TestGenerateCommand_Execute(t *testing.T) {
	disableColor(t)
	t.Cleanup(func() {
		configFile = ""
	})

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
		wantStdout []string
	}{
		{
			name:       "renders the generated plan",
			statusCode: http.StatusOK,
			body: `{"data": {
				"topic": "Fractions",
				"introductions": {"definition": {"a": "x", "b": 2}},
				"methods": ["Visual models"],
				"quiz": {"questions": [{"question": "What is 1/2 of 4?", "answer": "2"}]}
			}}`,
			wantStdout: []string{
				"📘 Topic\n  Fractions",
				"📚 Introduction\n  a: x\n  b: 2",
				"  • Visual models",
				"  • Q: What is 1/2 of 4?\n    A: 2",
			},
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"message": "model unavailable"}`,
			wantErr:    generator.ErrGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewGenerateServer(t, tt.statusCode, tt.body)
			cfgPath := testutil.SetupTestConfig(t, t.TempDir(), server.URL)

			var stdout bytes.Buffer
			cmd := newRootCommand()
			cmd.SetOut(&stdout)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{
				"generate", "--config", cfgPath,
				"--subject", "Math", "--grade", "5th", "--topic", "Fractions",
			})

			err := cmd.Execute()
			assert.Equal(t, []lessonplan.GenerateRequest{
				{Subject: "Math", GradeLevel: "5th", Topic: "Fractions"},
			}, server.Requests())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}
