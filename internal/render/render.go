// Package render turns an exam snapshot into its presentation: the on-screen
// preview view, the answer key, and the exported document. All question
// numbers come from the numbering package; nothing in here keeps a counter
// of its own except the answer-key walk, which re-applies the same rule.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pethoang/ExamGen10/internal/model"
	"github.com/pethoang/ExamGen10/internal/numbering"
)

// optionPrefixPattern recognizes an option that already carries its own
// letter label. Only A-H are recognized; a 9th+ option still gets an
// arithmetic label but is never treated as pre-labeled.
var optionPrefixPattern = regexp.MustCompile(`^[A-H]\.`)

// RenumberPlaceholders rewrites every placeholder marker in content,
// left to right, to (start + k) where k is the marker's 0-based occurrence
// index. The digits originally inside the parentheses are discarded.
func RenumberPlaceholders(content string, start int) string {
	k := 0
	return numbering.PlaceholderPattern.ReplaceAllStringFunc(content, func(string) string {
		s := fmt.Sprintf("(%d)", start+k)
		k++
		return s
	})
}

// LabelOptions prefixes options with A., B., C., ... by position. An option
// already matching ^[A-H]\. keeps its existing prefix verbatim.
func LabelOptions(options []string) []string {
	if len(options) == 0 {
		return nil
	}
	out := make([]string, len(options))
	for i, opt := range options {
		if optionPrefixPattern.MatchString(opt) {
			out[i] = opt
			continue
		}
		out[i] = fmt.Sprintf("%c. %s", rune('A'+i), opt)
	}
	return out
}

// QuestionLabel formats the display label for a question occupying count
// ordinals starting at start.
func QuestionLabel(start, count int) string {
	if count <= 1 {
		return fmt.Sprintf("Question %d", start)
	}
	return fmt.Sprintf("Questions %d - %d", start, start+count-1)
}

// SplitParagraphs breaks a passage body on newline boundaries, dropping
// blank lines.
func SplitParagraphs(body string) []string {
	var paras []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paras = append(paras, line)
		}
	}
	return paras
}

// QuestionView is one question prepared for display.
type QuestionView struct {
	ID         string
	Label      string
	Start      int
	Count      int
	Kind       model.QuestionKind
	Content    string   // numbered/substituted content
	RawContent string   // original content, shown while editing
	Options    []string // labeled options
	Answer     string
	Editing    bool
}

// SectionView is one section prepared for display.
type SectionView struct {
	Title      string
	Paragraphs []string
	Questions  []QuestionView
}

// ExamView is the full presentation tree for one render pass.
type ExamView struct {
	Title          string
	Subtitle       string
	Duration       int
	TotalQuestions int
	Sections       []SectionView
}

// Exam builds the presentation tree for an exam. selectedID names the one
// question currently in edit mode ("" for none); that question shows its raw
// content and the rest show fully substituted content. Selection never
// touches the exam snapshot itself.
func Exam(exam model.Exam, selectedID string) ExamView {
	nums := numbering.Assign(exam.Sections)

	view := ExamView{
		Title:          exam.Title,
		Subtitle:       exam.Subtitle,
		Duration:       exam.Duration,
		TotalQuestions: numbering.Total(exam.Sections),
	}

	for _, sec := range exam.Sections {
		sv := SectionView{
			Title:      sec.Title,
			Paragraphs: SplitParagraphs(sec.Passage),
		}
		for _, q := range sec.Questions {
			start := nums[q.ID]
			count := numbering.EffectiveCount(q)

			content := q.Content
			if q.Kind == model.KindConversationMatching {
				content = RenumberPlaceholders(q.Content, start)
			}

			sv.Questions = append(sv.Questions, QuestionView{
				ID:         q.ID,
				Label:      QuestionLabel(start, count),
				Start:      start,
				Count:      count,
				Kind:       q.Kind,
				Content:    content,
				RawContent: q.Content,
				Options:    LabelOptions(q.Options),
				Answer:     q.Answer,
				Editing:    selectedID != "" && q.ID == selectedID,
			})
		}
		view.Sections = append(view.Sections, sv)
	}

	return view
}
