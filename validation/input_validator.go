// Package validation provides input validation for the MyOncologist API.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/giygas/myoncologist-api/interfaces"
)

var (
	// ErrEmptySymptoms carries the message shown when nothing was described.
	ErrEmptySymptoms = errors.New("Please describe your symptoms before analyzing.")
	// ErrSymptomsTooLong is returned for descriptions above the configured limit.
	ErrSymptomsTooLong = errors.New("symptom description is too long")
	// ErrNotAnImage carries the message shown for non-image uploads.
	ErrNotAnImage = errors.New("Please upload a valid image file.")
)

const (
	maxQueryLength  = 50
	maxQueryWords   = 6
	maxIDLength     = 36
	maxRepeatedRune = 10
)

// Pre-compiled regex patterns, compiled once at package initialization
var (
	// Search input: letters of any script, digits and safe punctuation
	queryRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.\+']+$`)

	oncologistIDRegex = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// LDAP injection patterns
		"*)(", "*|(", "*)%",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct {
	maxSymptomLength int
}

// SymptomBodyLimit is the largest JSON body that can carry a symptom text of
// maxLength characters: six bytes per character for \uXXXX escapes plus
// room for the envelope.
func SymptomBodyLimit(maxLength int) int64 {
	return int64(maxLength)*6 + 1024
}

// NewInputValidator creates a validator. Symptom texts longer than
// maxSymptomLength characters are rejected.
func NewInputValidator(maxSymptomLength int) interfaces.InputValidator {
	return &InputValidatorImpl{maxSymptomLength: maxSymptomLength}
}

// ValidateSymptomText rejects empty or whitespace-only descriptions.
// The text is otherwise free-form: it is only ever matched against keywords.
func (v *InputValidatorImpl) ValidateSymptomText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptySymptoms
	}

	if v.maxSymptomLength > 0 && utf8.RuneCountInString(trimmed) > v.maxSymptomLength {
		return "", fmt.Errorf("%w: maximum %d characters", ErrSymptomsTooLong, v.maxSymptomLength)
	}

	return trimmed, nil
}

// ValidateImage detects the content type from the bytes themselves; the
// client-supplied Content-Type is not trusted.
func (v *InputValidatorImpl) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotAnImage
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotAnImage
	}

	return mtype.String(), nil
}

// ValidateSessionID checks that id is a uuid in its canonical lowercase
// hyphenated form, the only form sessions are stored under.
func (v *InputValidatorImpl) ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}
	if parsed.String() != id {
		return fmt.Errorf("invalid session id: must be lowercase hyphenated form")
	}
	return nil
}

// ValidateOncologistID checks the shape of a directory id.
func (v *InputValidatorImpl) ValidateOncologistID(id string) error {
	if id == "" {
		return fmt.Errorf("oncologist id cannot be empty")
	}
	if len(id) > maxIDLength || !oncologistIDRegex.MatchString(id) {
		return fmt.Errorf("invalid oncologist id: %q", id)
	}
	return nil
}

// ValidateSearchQuery validates directory search input with the same
// dangerous-content screening as every other user string.
func (v *InputValidatorImpl) ValidateSearchQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", nil
	}

	if utf8.RuneCountInString(trimmed) > maxQueryLength {
		return "", fmt.Errorf("input too long: maximum %d characters", maxQueryLength)
	}

	// Word count validation to prevent DoS attacks with many short words
	if len(strings.Fields(trimmed)) > maxQueryWords {
		return "", fmt.Errorf("search query too complex: maximum %d words allowed", maxQueryWords)
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return "", fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !queryRegex.MatchString(trimmed) {
		return "", fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods and plus sign are allowed")
	}

	if hasExcessiveRepetition(trimmed) {
		return "", fmt.Errorf("input contains excessive character repetition")
	}

	return trimmed, nil
}

// hasExcessiveRepetition reports a rune repeated more than maxRepeatedRune
// times in a row.
func hasExcessiveRepetition(input string) bool {
	var prev rune
	run := 0
	for _, r := range input {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > maxRepeatedRune {
			return true
		}
	}
	return false
}
