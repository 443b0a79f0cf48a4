package model

import (
	"context"
	"time"
)

// UserRole represents a user's access level.
type UserRole string

const (
	// UserRoleTeacher is a regular teacher account.
	UserRoleTeacher UserRole = "teacher"
	// UserRoleAdmin is an admin account.
	UserRoleAdmin UserRole = "admin"
)

// User represents a system user.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}

type csrfCtxKey struct{}

// ContextWithCSRFToken stores the CSRF token in context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfCtxKey{}, token)
}

// CSRFTokenFromContext retrieves the CSRF token from context.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfCtxKey{}).(string)
	return t
}

// QuestionKind discriminates the shape of a question.
type QuestionKind string

const (
	// KindMultipleChoice is a single question with a closed option list.
	KindMultipleChoice QuestionKind = "multiple_choice"
	// KindConstructedResponse is a short free-form answer question.
	KindConstructedResponse QuestionKind = "constructed_response"
	// KindEssay is a long-form writing question.
	KindEssay QuestionKind = "essay"
	// KindConversationMatching is a single block with several numbered gaps
	// sharing one answer-option pool.
	KindConversationMatching QuestionKind = "conversation_matching"
)

// Difficulty represents a question difficulty tier, ordered easiest first.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Question is a single gradable unit, or a block standing for several
// sub-questions (conversation matching, cloze gaps). Content may embed
// numbered placeholder markers of the form (<integer>).
type Question struct {
	ID         string       `json:"id"`
	Kind       QuestionKind `json:"type"`
	Content    string       `json:"content"`
	Options    []string     `json:"options,omitempty"`
	SubCount   int          `json:"sub_count,omitempty"`
	Answer     string       `json:"answer,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	Part       string       `json:"part,omitempty"`
}

// Section is an ordered group of questions under one instruction title.
// Passage, when present, is shown before the questions and is not numbered.
// Section order and internal question order both drive the global numbering.
type Section struct {
	Title     string     `json:"title"`
	Passage   string     `json:"passage,omitempty"`
	Questions []Question `json:"questions"`
}

// Exam is a full generated exam. Sections and their questions are an
// immutable snapshot for the duration of a render pass; numbering is always
// derived from them, never stored on them.
type Exam struct {
	ID        int64     `json:"id,omitempty"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Duration  int       `json:"duration_minutes"`
	Sections  []Section `json:"sections"`
	Analysis  *Analysis `json:"analysis,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ReadingStats describes the reading-material profile of a sample exam.
type ReadingStats struct {
	AverageWordCount int    `json:"average_word_count"`
	Difficulty       string `json:"difficulty"`
}

// Analysis is the upstream service's description of a sample exam. The user
// may edit it before generation; edits replace the whole value.
type Analysis struct {
	Difficulty string       `json:"difficulty"`
	Structure  string       `json:"structure"`
	Level      string       `json:"level"`
	Reading    ReadingStats `json:"reading"`
}

// DefaultAnalysis is the fallback substituted when the analysis service
// fails or returns something unparsable.
func DefaultAnalysis() Analysis {
	return Analysis{
		Difficulty: "undetermined",
		Level:      "N/A",
		Reading: ReadingStats{
			AverageWordCount: 150,
			Difficulty:       "medium",
		},
	}
}

// Sample is an uploaded sample exam text plus the user's structure matrix.
type Sample struct {
	ID        int64
	Name      string
	Text      string
	Matrix    string
	CreatedAt time.Time
}

// ServerConfig holds runtime parameters set via CLI flags.
type ServerConfig struct {
	BasePath      string // URL prefix for sub-path deployments (e.g. "/exams")
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
	MaxUploadSize int64  // Upload size cap in bytes
}
