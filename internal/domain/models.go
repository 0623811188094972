package domain

// Question models a multiple-choice question with a single correct option.
type Question struct {
	Topic       string   `json:"topic"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
}

// State is the position of a quiz in its lifecycle.
type State string

const (
	StateNotLoaded       State = "not_loaded"
	StateIdle            State = "idle"
	StateQuestionActive  State = "question"
	StateAnswerSubmitted State = "answered"
	StateComplete        State = "complete"
)

// AnswerResult is the feedback for one submitted answer.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	SelectedIndex int    `json:"selectedIndex"`
	SelectedText  string `json:"selectedText"`
	CorrectIndex  int    `json:"correctIndex"`
	CorrectText   string `json:"correctText"`
	Explanation   string `json:"explanation"`
	Score         int    `json:"score"`
}

// Grade buckets a final percentage.
type Grade string

const (
	GradeExpert   Grade = "expert"
	GradeStrong   Grade = "strong"
	GradeGood     Grade = "good"
	GradePractice Grade = "practice"
)

// Summary is the final score of a completed quiz.
type Summary struct {
	Topic      string `json:"topic"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Grade      Grade  `json:"grade"`
	Message    string `json:"message"`
}

// OptionView is an option as displayed; Index is its position in Question.Options.
type OptionView struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// View is a read-only snapshot handed to presentation layers.
type View struct {
	State    State         `json:"state"`
	Topics   []string      `json:"topics,omitempty"`
	Topic    string        `json:"topic,omitempty"`
	Position int           `json:"position,omitempty"` // 1-based
	Total    int           `json:"total,omitempty"`
	Progress float64       `json:"progress"`
	Score    int           `json:"score"`
	Question string        `json:"question,omitempty"`
	Options  []OptionView  `json:"options,omitempty"`
	Selected *int          `json:"selected,omitempty"`
	Result   *AnswerResult `json:"result,omitempty"`
	Summary  *Summary      `json:"summary,omitempty"`
}
