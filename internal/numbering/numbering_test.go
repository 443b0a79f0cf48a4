package numbering

import (
	"reflect"
	"testing"

	"github.com/pethoang/ExamGen10/internal/model"
)

func TestEffectiveCount(t *testing.T) {
	tests := []struct {
		name string
		q    model.Question
		want int
	}{
		{"plain multiple choice", model.Question{Kind: model.KindMultipleChoice, Content: "Pick one"}, 1},
		{"essay", model.Question{Kind: model.KindEssay, Content: "Write 200 words"}, 1},
		{"explicit count wins over kind default", model.Question{Kind: model.KindConstructedResponse, SubCount: 4}, 4},
		{"conversation counts markers", model.Question{Kind: model.KindConversationMatching, Content: "Dialogue: (1) ... (2) ... (3)"}, 3},
		{"conversation explicit count wins over markers", model.Question{Kind: model.KindConversationMatching, Content: "Dialogue: (1) ... (2) ... (3)", SubCount: 5}, 5},
		{"conversation without markers", model.Question{Kind: model.KindConversationMatching, Content: "no gaps here"}, 1},
		{"conversation with empty content", model.Question{Kind: model.KindConversationMatching}, 1},
		{"marker values are irrelevant", model.Question{Kind: model.KindConversationMatching, Content: "(9) and (42)"}, 2},
		{"non-numeric parens ignored", model.Question{Kind: model.KindConversationMatching, Content: "(a) (b) (1)"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveCount(tt.q); got != tt.want {
				t.Errorf("EffectiveCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAssignRunsAcrossSections(t *testing.T) {
	sections := []model.Section{
		{
			Title: "Part I. Listening",
			Questions: []model.Question{
				{ID: "q1", Kind: model.KindMultipleChoice, Content: "Pick one"},
				{ID: "q2", Kind: model.KindConversationMatching, Content: "A: (1) B: (2) A: (3)"},
			},
		},
		{
			Title: "Part II. Writing",
			Questions: []model.Question{
				{ID: "q3", Kind: model.KindEssay, Content: "Describe your hometown."},
			},
		},
	}

	nums := Assign(sections)
	want := map[string]int{"q1": 1, "q2": 2, "q3": 5}
	if !reflect.DeepEqual(nums, want) {
		t.Errorf("Assign() = %v, want %v", nums, want)
	}
	if got := Total(sections); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
}

func TestAssignIdempotent(t *testing.T) {
	sections := []model.Section{
		{Questions: []model.Question{
			{ID: "a", Kind: model.KindConversationMatching, Content: "(1)(2)"},
			{ID: "b", Kind: model.KindMultipleChoice},
			{ID: "c", Kind: model.KindConstructedResponse, SubCount: 3},
		}},
	}

	first := Assign(sections)
	second := Assign(sections)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Assign not idempotent: %v then %v", first, second)
	}
}

// The start numbers expanded by effective counts must tile [1, N] exactly.
func TestAssignContiguous(t *testing.T) {
	sections := []model.Section{
		{Questions: []model.Question{
			{ID: "a", Kind: model.KindMultipleChoice},
			{ID: "b", Kind: model.KindConversationMatching, Content: "(5) (9) (20)"},
		}},
		{Questions: []model.Question{
			{ID: "c", Kind: model.KindConstructedResponse, SubCount: 2},
			{ID: "d", Kind: model.KindEssay},
		}},
	}

	nums := Assign(sections)
	total := Total(sections)

	covered := make(map[int]bool)
	for _, sec := range sections {
		for _, q := range sec.Questions {
			start := nums[q.ID]
			for k := 0; k < EffectiveCount(q); k++ {
				if covered[start+k] {
					t.Errorf("ordinal %d assigned twice", start+k)
				}
				covered[start+k] = true
			}
		}
	}
	for i := 1; i <= total; i++ {
		if !covered[i] {
			t.Errorf("ordinal %d never assigned", i)
		}
	}
	if len(covered) != total {
		t.Errorf("covered %d ordinals, want %d", len(covered), total)
	}
}

func TestAssignEmptyExam(t *testing.T) {
	if nums := Assign(nil); len(nums) != 0 {
		t.Errorf("Assign(nil) = %v, want empty map", nums)
	}
	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %d, want 0", got)
	}
}

func TestAssignDuplicateIDsLastWriteWins(t *testing.T) {
	sections := []model.Section{
		{Questions: []model.Question{
			{ID: "dup", Kind: model.KindMultipleChoice},
			{ID: "dup", Kind: model.KindMultipleChoice},
		}},
	}

	nums := Assign(sections)
	if nums["dup"] != 2 {
		t.Errorf("nums[dup] = %d, want 2 (last write wins)", nums["dup"])
	}

	if err := ValidateIDs(sections); err == nil {
		t.Error("ValidateIDs should report the duplicate")
	}
}

func TestValidateIDsClean(t *testing.T) {
	sections := []model.Section{
		{Questions: []model.Question{{ID: "a"}, {ID: "b"}}},
		{Questions: []model.Question{{ID: "c"}}},
	}
	if err := ValidateIDs(sections); err != nil {
		t.Errorf("ValidateIDs() = %v, want nil", err)
	}
}
