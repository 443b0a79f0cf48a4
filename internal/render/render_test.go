package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pethoang/ExamGen10/internal/model"
)

func TestRenumberPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   int
		want    string
	}{
		{"sequential markers", "Fill (1), then (2), then (3).", 11, "Fill (11), then (12), then (13)."},
		{"original digits discarded", "Fill (5), then (9), then (20).", 11, "Fill (11), then (12), then (13)."},
		{"start at one", "(1) (2)", 1, "(1) (2)"},
		{"no markers", "nothing to do", 7, "nothing to do"},
		{"non-numeric parens untouched", "(a) stays, (3) moves", 4, "(a) stays, (4) moves"},
		{"empty content", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenumberPlaceholders(tt.content, tt.start); got != tt.want {
				t.Errorf("RenumberPlaceholders() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabelOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		want    []string
	}{
		{"plain options", []string{"Paris", "London"}, []string{"A. Paris", "B. London"}},
		{"existing prefix kept verbatim", []string{"A. Paris", "go"}, []string{"A. Paris", "B. go"}},
		{"prefix detection needs the dot", []string{"Apple", "Berry"}, []string{"A. Apple", "B. Berry"}},
		{"nil options", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelOptions(tt.options); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LabelOptions() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Labels past H are still generated arithmetically, but an "I." prefix is
// not recognized as pre-labeled.
func TestLabelOptionsBeyondH(t *testing.T) {
	options := []string{"o1", "o2", "o3", "o4", "o5", "o6", "o7", "o8", "I. nine"}
	got := LabelOptions(options)
	if got[7] != "H. o8" {
		t.Errorf("eighth option = %q, want %q", got[7], "H. o8")
	}
	if got[8] != "I. I. nine" {
		t.Errorf("ninth option = %q, want %q (prefix detection stops at H)", got[8], "I. I. nine")
	}
}

func TestQuestionLabel(t *testing.T) {
	if got := QuestionLabel(7, 1); got != "Question 7" {
		t.Errorf("QuestionLabel(7,1) = %q", got)
	}
	if got := QuestionLabel(2, 3); got != "Questions 2 - 4" {
		t.Errorf("QuestionLabel(2,3) = %q", got)
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("First paragraph.\n\nSecond paragraph.\n  \nThird.")
	want := []string{"First paragraph.", "Second paragraph.", "Third."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitParagraphs() = %v, want %v", got, want)
	}
	if got := SplitParagraphs(""); got != nil {
		t.Errorf("SplitParagraphs(\"\") = %v, want nil", got)
	}
}

func twoSectionExam() model.Exam {
	return model.Exam{
		Title:    "Midterm English Exam",
		Subtitle: "Grade 9",
		Duration: 90,
		Sections: []model.Section{
			{
				Title:   "Part I. Listening (choose the best answer)",
				Passage: "Listen to the dialogue.\nThen answer the questions.",
				Questions: []model.Question{
					{ID: "q1", Kind: model.KindMultipleChoice, Content: "Where does Tom live?", Options: []string{"Paris", "London"}, Answer: "B"},
					{ID: "q2", Kind: model.KindConversationMatching, Content: "A: Hi! (1) B: Fine. (2) A: Bye! (3)", Options: []string{"How are you?", "See you.", "What's up?"}, Answer: "A C B"},
				},
			},
			{
				Title: "Part II. Writing",
				Questions: []model.Question{
					{ID: "q3", Kind: model.KindEssay, Content: "Describe your weekend.", Answer: ""},
				},
			},
		},
	}
}

func TestExamViewEndToEnd(t *testing.T) {
	view := Exam(twoSectionExam(), "")

	if view.TotalQuestions != 5 {
		t.Errorf("TotalQuestions = %d, want 5", view.TotalQuestions)
	}
	if len(view.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(view.Sections))
	}

	q1 := view.Sections[0].Questions[0]
	if q1.Label != "Question 1" {
		t.Errorf("q1 label = %q, want %q", q1.Label, "Question 1")
	}
	if !reflect.DeepEqual(q1.Options, []string{"A. Paris", "B. London"}) {
		t.Errorf("q1 options = %v", q1.Options)
	}

	q2 := view.Sections[0].Questions[1]
	if q2.Label != "Questions 2 - 4" {
		t.Errorf("q2 label = %q, want %q", q2.Label, "Questions 2 - 4")
	}
	if q2.Content != "A: Hi! (2) B: Fine. (3) A: Bye! (4)" {
		t.Errorf("q2 content = %q", q2.Content)
	}

	q3 := view.Sections[1].Questions[0]
	if q3.Label != "Question 5" {
		t.Errorf("q3 label = %q, want %q", q3.Label, "Question 5")
	}

	if !reflect.DeepEqual(view.Sections[0].Paragraphs,
		[]string{"Listen to the dialogue.", "Then answer the questions."}) {
		t.Errorf("passage paragraphs = %v", view.Sections[0].Paragraphs)
	}
}

func TestExamViewEditMode(t *testing.T) {
	exam := twoSectionExam()

	view := Exam(exam, "q2")
	q2 := view.Sections[0].Questions[1]
	if !q2.Editing {
		t.Fatal("q2 should be in edit mode")
	}
	// Editing shows the original content; the numbered text is still
	// available for the view to swap back on deselect.
	if q2.RawContent != "A: Hi! (1) B: Fine. (2) A: Bye! (3)" {
		t.Errorf("raw content = %q", q2.RawContent)
	}
	if q2.Content != "A: Hi! (2) B: Fine. (3) A: Bye! (4)" {
		t.Errorf("substituted content = %q", q2.Content)
	}
	for _, q := range []QuestionView{view.Sections[0].Questions[0], view.Sections[1].Questions[0]} {
		if q.Editing {
			t.Errorf("%s should not be in edit mode", q.ID)
		}
	}

	// Selecting another question closes the first; the snapshot is untouched.
	view = Exam(exam, "q3")
	if view.Sections[0].Questions[1].Editing {
		t.Error("q2 still in edit mode after selecting q3")
	}
	if !view.Sections[1].Questions[0].Editing {
		t.Error("q3 should be in edit mode")
	}
	if exam.Sections[0].Questions[1].Content != "A: Hi! (1) B: Fine. (2) A: Bye! (3)" {
		t.Error("selection must not mutate the exam snapshot")
	}
}

func TestAnswerKey(t *testing.T) {
	key := AnswerKey(twoSectionExam())

	if len(key) != 2 {
		t.Fatalf("key sections = %d, want 2", len(key))
	}
	want := []KeyEntry{
		{Label: "Question 1", Answer: "B"},
		{Label: "Questions 2 - 4", Answer: "A C B"},
	}
	if !reflect.DeepEqual(key[0].Entries, want) {
		t.Errorf("section 1 entries = %v, want %v", key[0].Entries, want)
	}
	// Empty answers still get a line.
	if !reflect.DeepEqual(key[1].Entries, []KeyEntry{{Label: "Question 5", Answer: ""}}) {
		t.Errorf("section 2 entries = %v", key[1].Entries)
	}
}

// Preview and answer key must agree on every question's label, whatever the
// exam looks like.
func TestPreviewAndKeyConsistency(t *testing.T) {
	exam := twoSectionExam()
	view := Exam(exam, "")
	key := AnswerKey(exam)

	for i, sec := range view.Sections {
		for j, q := range sec.Questions {
			if got := key[i].Entries[j].Label; got != q.Label {
				t.Errorf("question %s: preview label %q, key label %q", q.ID, q.Label, got)
			}
		}
	}
}

func TestDocument(t *testing.T) {
	doc := string(Document(twoSectionExam()))

	for _, want := range []string{
		"<title>Midterm English Exam</title>",
		"Time allowed: 90 minutes",
		"Question 1",
		"Questions 2 - 4",
		"Question 5",
		"A: Hi! (2) B: Fine. (3) A: Bye! (4)",
		"A. Paris",
		"Answer Key",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Body and key numbering must match: each label appears in both halves.
	keyIdx := strings.Index(doc, "Answer Key")
	body, key := doc[:keyIdx], doc[keyIdx:]
	for _, label := range []string{"Question 1", "Questions 2 - 4", "Question 5"} {
		if !strings.Contains(body, label) {
			t.Errorf("body missing %q", label)
		}
		if !strings.Contains(key, label) {
			t.Errorf("answer key missing %q", label)
		}
	}

	// The raw marker values must not leak into the export.
	if strings.Contains(body, "A: Hi! (1)") {
		t.Error("document contains unsubstituted placeholder content")
	}
}

func TestDocumentEmptyExam(t *testing.T) {
	doc := string(Document(model.Exam{Title: "Empty"}))
	if !strings.Contains(doc, "<title>Empty</title>") {
		t.Error("document missing title")
	}
	if strings.Contains(doc, "Question ") {
		t.Error("empty exam should render zero questions")
	}
}
