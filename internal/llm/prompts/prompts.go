// Package prompts builds the system prompts for the analysis and generation
// calls from templates on an embedded filesystem.
package prompts

import (
	"bytes"
	"embed"
	"errors"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"github.com/pethoang/ExamGen10/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

var (
	sampleTextRegex         = regexp.MustCompile(`(?i)</?\s*sample-exam\b[^>]*>`)
	systemInstructionsRegex = regexp.MustCompile(`(?i)</?\s*system-instructions\b[^>]*>`)
)

// maxSampleRunes caps how much of an uploaded sample reaches the model.
const maxSampleRunes = 20000

var (
	loadOnce     sync.Once
	loadErr      error
	analyzeTmpl  *template.Template
	generateTmpl *template.Template
)

// AnalyzeData holds template data for the analysis prompt.
type AnalyzeData struct {
	SampleText string
}

// GenerateData holds template data for the generation prompt.
type GenerateData struct {
	Matrix           string
	Difficulty       string
	Structure        string
	Level            string
	AverageWordCount int
	ReadingLevel     string
}

func load() error {
	loadOnce.Do(func() {
		analyzeTmpl, loadErr = parseTemplate("templates/analyze.txt")
		if loadErr != nil {
			return
		}
		generateTmpl, loadErr = parseTemplate("templates/generate.txt")
	})
	return loadErr
}

func parseTemplate(name string) (*template.Template, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, errors.New("failed to read prompt file " + name + ": " + err.Error())
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, errors.New("failed to parse prompt template " + name + ": " + err.Error())
	}
	return tmpl, nil
}

// BuildAnalyzePrompt builds the system prompt for sample-exam analysis.
func BuildAnalyzePrompt(sampleText string) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := analyzeTmpl.Execute(&buf, AnalyzeData{SampleText: Sanitize(sampleText)}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildGeneratePrompt builds the system prompt for exam generation from the
// structure matrix and the (possibly user-edited) analysis.
func BuildGeneratePrompt(matrix string, a model.Analysis) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	data := GenerateData{
		Matrix:           Sanitize(matrix),
		Difficulty:       a.Difficulty,
		Structure:        a.Structure,
		Level:            a.Level,
		AverageWordCount: a.Reading.AverageWordCount,
		ReadingLevel:     a.Reading.Difficulty,
	}
	var buf bytes.Buffer
	if err := generateTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Sanitize scrubs tag-like injection attempts from user-provided text and
// truncates oversized input.
func Sanitize(text string) string {
	text = sampleTextRegex.ReplaceAllString(text, "")
	text = systemInstructionsRegex.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if text == "" {
		return "[empty]"
	}

	if utf8.RuneCountInString(text) > maxSampleRunes {
		runes := []rune(text)
		runes = runes[:maxSampleRunes]
		text = string(runes) + "\n\n[truncated due to length]"
	}

	return text
}
