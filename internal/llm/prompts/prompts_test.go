package prompts

import (
	"strings"
	"testing"

	"github.com/pethoang/ExamGen10/internal/model"
)

func TestBuildAnalyzePrompt(t *testing.T) {
	sample := "Part I. Listening\n1. Where is Tom?\nA. Home B. School"

	prompt, err := BuildAnalyzePrompt(sample)
	if err != nil {
		t.Fatalf("BuildAnalyzePrompt: %v", err)
	}
	if !strings.Contains(prompt, "Where is Tom?") {
		t.Error("prompt should contain the sample text")
	}
	if !strings.Contains(prompt, `"average_word_count"`) {
		t.Error("prompt should state the JSON response contract")
	}
}

func TestBuildGeneratePrompt(t *testing.T) {
	a := model.Analysis{
		Difficulty: "upper-intermediate",
		Structure:  "3 parts, 25 questions",
		Level:      "B2",
		Reading:    model.ReadingStats{AverageWordCount: 220, Difficulty: "moderate"},
	}

	prompt, err := BuildGeneratePrompt("Part I: 10 multiple choice\nPart II: 1 essay", a)
	if err != nil {
		t.Fatalf("BuildGeneratePrompt: %v", err)
	}
	for _, want := range []string{
		"upper-intermediate",
		"3 parts, 25 questions",
		"B2",
		"220 words",
		"Part II: 1 essay",
		"conversation_matching",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello", "hello"},
		{"strips sample tags", "a <sample-exam>b</sample-exam> c", "a b c"},
		{"strips instruction tags", "x <system-instructions>y</system-instructions> z", "x y z"},
		{"empty becomes marker", "   ", "[empty]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", maxSampleRunes+100)
	got := Sanitize(long)
	if !strings.HasSuffix(got, "[truncated due to length]") {
		t.Error("oversized input should be truncated")
	}
	if len(got) >= len(long) {
		t.Error("truncated output should be shorter than input")
	}
}
