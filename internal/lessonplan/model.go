package lessonplan

// LessonPlan is the document returned by the generate endpoint.
// Every field is optional and an absent field is omitted from the output.
type LessonPlan struct {
	Topic          string         `json:"topic,omitempty" yaml:"topic,omitempty"`
	Objective      string         `json:"objective,omitempty" yaml:"objective,omitempty"`
	TargetAudience string         `json:"target_audience,omitempty" yaml:"target_audience,omitempty"`
	Duration       string         `json:"duration,omitempty" yaml:"duration,omitempty"`
	Introductions  *Introductions `json:"introductions,omitzero" yaml:"introductions,omitempty"`
	Methods        []string       `json:"methods,omitempty" yaml:"methods,omitempty"`
	Examples       []Example      `json:"examples,omitempty" yaml:"examples,omitempty"`
	Quiz           *Quiz          `json:"quiz,omitzero" yaml:"quiz,omitempty"`
	Application    *TextOrMapping `json:"application,omitzero" yaml:"application,omitempty"`
}

type Introductions struct {
	Definition *TextOrMapping `json:"definition,omitzero" yaml:"definition,omitempty"`
}

type Example struct {
	Problem  string `json:"problem" yaml:"problem"`
	Solution string `json:"solution" yaml:"solution"`
}

type Quiz struct {
	LeetCodeLink string         `json:"leet_code_link,omitempty" yaml:"leet_code_link,omitempty"`
	GFGLink      string         `json:"gfg_link,omitempty" yaml:"gfg_link,omitempty"`
	Questions    []QuizQuestion `json:"questions,omitempty" yaml:"questions,omitempty"`
}

type QuizQuestion struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// HasContent reports whether the quiz has at least one link or one question.
func (quiz *Quiz) HasContent() bool {
	if quiz == nil {
		return false
	}
	return quiz.LeetCodeLink != "" || quiz.GFGLink != "" || len(quiz.Questions) > 0
}

// IsZero makes an introduction without a definition omitted by the JSON and YAML encoders.
func (introductions *Introductions) IsZero() bool {
	return introductions == nil || !introductions.Definition.IsPresent()
}

// IsZero makes a quiz without content omitted by the JSON and YAML encoders.
func (quiz *Quiz) IsZero() bool {
	return !quiz.HasContent()
}

// Introduction returns the introduction definition, or nil when it is absent.
func (plan *LessonPlan) Introduction() *TextOrMapping {
	if plan == nil || plan.Introductions == nil || !plan.Introductions.Definition.IsPresent() {
		return nil
	}
	return plan.Introductions.Definition
}

// IsEmpty reports whether no section of the plan would be rendered.
func (plan *LessonPlan) IsEmpty() bool {
	if plan == nil {
		return true
	}
	return plan.Topic == "" &&
		plan.Objective == "" &&
		plan.TargetAudience == "" &&
		plan.Duration == "" &&
		plan.Introduction() == nil &&
		len(plan.Methods) == 0 &&
		len(plan.Examples) == 0 &&
		!plan.Quiz.HasContent() &&
		!plan.Application.IsPresent()
}
