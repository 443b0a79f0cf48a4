package llm

import (
	"strings"
	"testing"

	"github.com/pethoang/ExamGen10/internal/model"
)

func validExam() model.Exam {
	return model.Exam{
		Title:    "Generated Exam",
		Duration: 60,
		Sections: []model.Section{
			{
				Title: "Part I. Reading",
				Questions: []model.Question{
					{ID: "q1", Kind: model.KindMultipleChoice, Content: "Pick one", Options: []string{"a", "b"}},
					{ID: "q2", Kind: model.KindConversationMatching, Content: "(1) (2)"},
				},
			},
		},
	}
}

func TestValidateExam(t *testing.T) {
	if err := ValidateExam(validExam()); err != nil {
		t.Fatalf("valid exam rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*model.Exam)
		wantErr string
	}{
		{"missing title", func(e *model.Exam) { e.Title = "  " }, "missing title"},
		{"no sections", func(e *model.Exam) { e.Sections = nil }, "no sections"},
		{"section without title", func(e *model.Exam) { e.Sections[0].Title = "" }, "missing title"},
		{"section without questions", func(e *model.Exam) { e.Sections[0].Questions = nil }, "no questions"},
		{"question without id", func(e *model.Exam) { e.Sections[0].Questions[1].ID = "" }, "missing id"},
		{"unknown question type", func(e *model.Exam) { e.Sections[0].Questions[0].Kind = "true_false" }, "unknown type"},
		{"negative sub count", func(e *model.Exam) { e.Sections[0].Questions[0].SubCount = -1 }, "negative sub_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := validExam()
			tt.mutate(&exam)
			err := ValidateExam(exam)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.raw); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
