// Package numbering assigns global 1-based question numbers to an exam.
//
// Every number shown anywhere (preview, answer key, exported document) is
// derived from this package. Assign is a pure function of section order,
// question order, and question content; callers recompute it at each
// consumption point instead of caching a mapping across passes.
package numbering

import (
	"fmt"
	"regexp"

	"github.com/pethoang/ExamGen10/internal/model"
)

// PlaceholderPattern matches a numbered gap marker such as (1) or (12).
var PlaceholderPattern = regexp.MustCompile(`\((\d+)\)`)

// EffectiveCount returns the number of global ordinals a question consumes.
// An explicit sub-question count always wins. Conversation-matching blocks
// without one are sized by counting placeholder markers in their content;
// everything else counts as a single question.
func EffectiveCount(q model.Question) int {
	if q.SubCount > 0 {
		return q.SubCount
	}
	if q.Kind == model.KindConversationMatching {
		if n := len(PlaceholderPattern.FindAllString(q.Content, -1)); n > 0 {
			return n
		}
	}
	return 1
}

// Assign walks sections and questions in order and returns each question's
// start number: the ordinal of the first sub-question it represents. The
// counter starts at 1 and runs across section boundaries.
//
// If two questions share an ID the later one wins in the returned map; use
// ValidateIDs to surface that condition.
func Assign(sections []model.Section) map[string]int {
	nums := make(map[string]int)
	n := 1
	for _, sec := range sections {
		for _, q := range sec.Questions {
			nums[q.ID] = n
			n += EffectiveCount(q)
		}
	}
	return nums
}

// Total returns the number of global ordinals the exam consumes, i.e. the
// highest assigned number.
func Total(sections []model.Section) int {
	n := 0
	for _, sec := range sections {
		for _, q := range sec.Questions {
			n += EffectiveCount(q)
		}
	}
	return n
}

// ValidateIDs reports the first duplicated question ID across the exam.
// Duplicates usually mean the generation service misbehaved; Assign tolerates
// them (last write wins) but downstream lookups become ambiguous.
func ValidateIDs(sections []model.Section) error {
	seen := make(map[string]bool)
	for _, sec := range sections {
		for _, q := range sec.Questions {
			if seen[q.ID] {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
		}
	}
	return nil
}
