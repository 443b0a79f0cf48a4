package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/pethoang/ExamGen10/internal/model"
)

const docHeader = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "Times New Roman", serif; font-size: 12pt; }
h1 { text-align: center; font-size: 16pt; }
h2 { text-align: center; font-size: 12pt; font-weight: normal; }
h3 { font-size: 13pt; }
.question { margin: 12pt 0; }
.options p { margin: 2pt 0 2pt 18pt; }
.answer-key { page-break-before: always; }
</style>
</head>
<body>
`

// Document materializes the full export artifact: the rendered exam body
// followed by the independently derived answer key, wrapped in a minimal
// Word-compatible HTML envelope. Body and key both recompute numbering from
// the snapshot passed in, so their numbers always agree.
func Document(exam model.Exam) []byte {
	view := Exam(exam, "")
	key := AnswerKey(exam)

	var sb strings.Builder
	fmt.Fprintf(&sb, docHeader, html.EscapeString(exam.Title))

	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(view.Title))
	if view.Subtitle != "" {
		fmt.Fprintf(&sb, "<h2>%s</h2>\n", html.EscapeString(view.Subtitle))
	}
	if view.Duration > 0 {
		fmt.Fprintf(&sb, "<h2>Time allowed: %d minutes</h2>\n", view.Duration)
	}

	for _, sec := range view.Sections {
		fmt.Fprintf(&sb, "<h3>%s</h3>\n", html.EscapeString(sec.Title))
		for _, p := range sec.Paragraphs {
			fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(p))
		}
		for _, q := range sec.Questions {
			sb.WriteString(`<div class="question">` + "\n")
			fmt.Fprintf(&sb, "<p><b>%s.</b> %s</p>\n",
				html.EscapeString(q.Label), html.EscapeString(q.Content))
			if len(q.Options) > 0 {
				sb.WriteString(`<div class="options">` + "\n")
				for _, opt := range q.Options {
					fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(opt))
				}
				sb.WriteString("</div>\n")
			}
			sb.WriteString("</div>\n")
		}
	}

	sb.WriteString(`<div class="answer-key">` + "\n")
	sb.WriteString("<h1>Answer Key</h1>\n")
	for _, ks := range key {
		fmt.Fprintf(&sb, "<h3>%s</h3>\n", html.EscapeString(ks.Title))
		for _, e := range ks.Entries {
			fmt.Fprintf(&sb, "<p><b>%s:</b> %s</p>\n",
				html.EscapeString(e.Label), html.EscapeString(e.Answer))
		}
	}
	sb.WriteString("</div>\n</body>\n</html>\n")

	return []byte(sb.String())
}
