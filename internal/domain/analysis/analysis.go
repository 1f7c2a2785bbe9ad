// Package analysis derives the stored properties of a string value.
// Analyze is pure and total: any string, including the empty one, is valid
// input, and equal inputs always produce equal output.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Properties are the derived attributes of an analyzed string.
type Properties struct {
	Length        int
	IsPalindrome  bool
	WordCount     int
	CharFrequency map[string]int
	UniqueChars   int
	SHA256        string
}

// Analyze computes the properties of a value.
//
// Length counts characters of the raw value. Palindrome, frequency and
// uniqueness are computed over the normalized form (lowercased, ASCII
// letters and digits only). Word count splits the original value on
// whitespace. SHA256 digests the raw bytes and doubles as the record's
// content address.
func Analyze(value string) Properties {
	normalized := normalize(value)

	freq := make(map[string]int, len(normalized))
	for i := 0; i < len(normalized); i++ {
		freq[string(normalized[i])]++
	}

	sum := sha256.Sum256([]byte(value))

	return Properties{
		Length:        utf8.RuneCountInString(value),
		IsPalindrome:  isPalindrome(normalized),
		WordCount:     len(strings.Fields(value)),
		CharFrequency: freq,
		UniqueChars:   len(freq),
		SHA256:        hex.EncodeToString(sum[:]),
	}
}

// normalize lowercases the value and strips everything that is not an ASCII
// letter or digit. The result is ASCII-only by construction.
func normalize(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.ToLower(value) {
		if isASCIIAlnum(r) {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// isPalindrome reports whether s reads the same in both directions.
// The empty string is a palindrome. s is ASCII, so byte comparison is exact.
func isPalindrome(s string) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
