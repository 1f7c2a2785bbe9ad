// Package filter compiles loosely-typed filter maps into a typed predicate set.
//
// Raw maps arrive from two sloppy sources with one coercion policy: URL query
// strings (every value is a string) and the natural-language translator
// (native JSON types, sometimes overlong strings). Compilation is
// all-or-nothing; unrecognized keys are ignored for forward compatibility.
package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/domain/analysis"
)

// Recognized filter names. The set is closed.
const (
	KeyIsPalindrome      = "is_palindrome"
	KeyMinLength         = "min_length"
	KeyMaxLength         = "max_length"
	KeyWordCount         = "word_count"
	KeyContainsCharacter = "contains_character"
)

// Set is the validated, type-correct form of a filter request, safe to apply
// directly to records. The zero Set matches everything.
type Set struct {
	isPalindrome      *bool
	minLength         *int
	maxLength         *int
	wordCount         *int
	containsCharacter string // single lowercased character, "" means unset
}

// Compile validates and coerces a raw filter map into a Set.
//
// Every recognized key is validated independently; failures are collected and
// returned together as a *domain.FilterValidationError. No partial set is
// ever returned alongside an error. An empty raw map compiles to the empty
// Set (no filtering).
func Compile(raw map[string]any) (Set, error) {
	var s Set
	var fields []domain.FieldError

	fail := func(key, msg string) {
		fields = append(fields, domain.FieldError{Field: key, Message: msg})
	}

	if v, ok := raw[KeyIsPalindrome]; ok {
		b, err := coerceBool(v)
		if err != nil {
			fail(KeyIsPalindrome, err.Error())
		} else {
			s.isPalindrome = &b
		}
	}

	if v, ok := raw[KeyMinLength]; ok {
		n, err := coerceNonNegativeInt(v)
		if err != nil {
			fail(KeyMinLength, err.Error())
		} else {
			s.minLength = &n
		}
	}

	if v, ok := raw[KeyMaxLength]; ok {
		n, err := coerceNonNegativeInt(v)
		if err != nil {
			fail(KeyMaxLength, err.Error())
		} else {
			s.maxLength = &n
		}
	}

	if v, ok := raw[KeyWordCount]; ok {
		n, err := coerceNonNegativeInt(v)
		switch {
		case err != nil:
			fail(KeyWordCount, err.Error())
		case n < 1:
			fail(KeyWordCount, "must be a positive integer")
		default:
			s.wordCount = &n
		}
	}

	if v, ok := raw[KeyContainsCharacter]; ok {
		c, err := coerceCharacter(v)
		if err != nil {
			fail(KeyContainsCharacter, err.Error())
		} else {
			s.containsCharacter = c
		}
	}

	if len(fields) > 0 {
		return Set{}, &domain.FilterValidationError{Fields: fields}
	}
	return s, nil
}

// IsPalindrome returns the palindrome predicate, or nil if unset.
func (s Set) IsPalindrome() *bool { return s.isPalindrome }

// MinLength returns the inclusive lower length bound, or nil if unset.
func (s Set) MinLength() *int { return s.minLength }

// MaxLength returns the inclusive upper length bound, or nil if unset.
func (s Set) MaxLength() *int { return s.maxLength }

// WordCount returns the exact word-count predicate, or nil if unset.
func (s Set) WordCount() *int { return s.wordCount }

// ContainsCharacter returns the lowercased character predicate, or "" if unset.
func (s Set) ContainsCharacter() string { return s.containsCharacter }

// IsEmpty reports whether no predicate is set.
func (s Set) IsEmpty() bool {
	return s.isPalindrome == nil && s.minLength == nil && s.maxLength == nil &&
		s.wordCount == nil && s.containsCharacter == ""
}

// Matches applies every present predicate conjunctively, in a fixed order:
// palindrome, min length, max length, word count, character containment.
// Containment is presence-only; the frequency value is irrelevant.
func (s Set) Matches(p analysis.Properties) bool {
	if s.isPalindrome != nil && p.IsPalindrome != *s.isPalindrome {
		return false
	}
	if s.minLength != nil && p.Length < *s.minLength {
		return false
	}
	if s.maxLength != nil && p.Length > *s.maxLength {
		return false
	}
	if s.wordCount != nil && p.WordCount != *s.wordCount {
		return false
	}
	if s.containsCharacter != "" {
		if _, ok := p.CharFrequency[s.containsCharacter]; !ok {
			return false
		}
	}
	return true
}

func coerceBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(t) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("must be a boolean or \"true\"/\"false\", got %q", t)
	default:
		return false, fmt.Errorf("must be a boolean or \"true\"/\"false\", got %T", v)
	}
}

func coerceNonNegativeInt(v any) (int, error) {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		// JSON numbers decode as float64; only integral values qualify.
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("must be an integer, got %v", t)
		}
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", t)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("must be an integer, got %T", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("must be non-negative, got %d", n)
	}
	return n, nil
}

// coerceCharacter accepts a single-character string and lowercases it. A
// longer string is reduced to the first character of its lowercased form and
// accepted only if that character is ASCII alphanumeric. The reduction is a
// deliberate contract of the filter layer: "the letter x" coerces to "t",
// not "x".
func coerceCharacter(v any) (string, error) {
	t, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("must be a string, got %T", v)
	}

	lower := strings.ToLower(t)
	runes := []rune(lower)
	switch {
	case len(runes) == 0:
		return "", fmt.Errorf("must be a single character, got empty string")
	case len(runes) == 1:
		return string(runes[0]), nil
	default:
		first := runes[0]
		if !unicode.IsLetter(first) && !unicode.IsDigit(first) || first > unicode.MaxASCII {
			return "", fmt.Errorf("must be a single character, got %q", t)
		}
		return string(first), nil
	}
}
