package render

import (
	"github.com/pethoang/ExamGen10/internal/model"
	"github.com/pethoang/ExamGen10/internal/numbering"
)

// KeyEntry is one answer line in the key.
type KeyEntry struct {
	Label  string // "Question 3" or "Questions 2 - 4"
	Answer string // reference answer verbatim, may be empty
}

// KeySection groups key entries under their section title. Titles are
// headers only; they never reset or offset the counter.
type KeySection struct {
	Title   string
	Entries []KeyEntry
}

// AnswerKey derives the answer key by re-walking the exam with a fresh
// counter. It deliberately does not reuse a numbering map computed for an
// earlier preview: recomputing from the current snapshot is what guarantees
// the exported key agrees with the exported body even if the exam changed
// between preview and export.
func AnswerKey(exam model.Exam) []KeySection {
	var key []KeySection
	n := 1
	for _, sec := range exam.Sections {
		ks := KeySection{Title: sec.Title}
		for _, q := range sec.Questions {
			count := numbering.EffectiveCount(q)
			ks.Entries = append(ks.Entries, KeyEntry{
				Label:  QuestionLabel(n, count),
				Answer: q.Answer,
			})
			n += count
		}
		key = append(key, ks)
	}
	return key
}
