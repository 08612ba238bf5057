// services/evaluator.go
package services

import (
	"strings"
	"unicode/utf8"

	"word-league-system/models"
)

// Mark scores one guessed letter.
type Mark byte

const (
	MarkExact   Mark = '+' // right letter, right place
	MarkPresent Mark = '-' // letter elsewhere in the secret, budget not yet used up
	MarkAbsent  Mark = ' '
)

// Marks is the per-position score of a guess.
type Marks []Mark

// String renders the compact one-character-per-letter form, e.g. " -+--".
func (m Marks) String() string {
	var b strings.Builder
	b.Grow(len(m))
	for _, mark := range m {
		b.WriteByte(byte(mark))
	}
	return b.String()
}

// Exact counts letters in the right place.
func (m Marks) Exact() int {
	return m.count(MarkExact)
}

// Matched counts letters scored exact or present.
func (m Marks) Matched() int {
	return m.count(MarkExact) + m.count(MarkPresent)
}

// Solved reports whether every position is exact.
func (m Marks) Solved() bool {
	return len(m) > 0 && m.Exact() == len(m)
}

func (m Marks) count(want Mark) int {
	n := 0
	for _, mark := range m {
		if mark == want {
			n++
		}
	}
	return n
}

// EvaluateGuess scores guess against secret position by position.
//
// Exact matches claim their letters first. Remaining positions are scanned left to
// right; each non-exact occurrence of a letter adds to that letter's claimed count and is
// marked present only while the claimed count stays within the letter's count in secret.
// A letter is therefore never marked exact or present more often than it occurs in secret.
func EvaluateGuess(secret, guess string) Marks {
	s := []rune(secret)
	g := []rune(guess)

	expected := make(map[rune]int, len(s))
	for _, r := range s {
		expected[r]++
	}

	claimed := make(map[rune]int, len(g))
	for i, r := range g {
		if i < len(s) && s[i] == r {
			claimed[r]++
		}
	}

	out := make(Marks, len(g))
	for i, r := range g {
		exact := i < len(s) && s[i] == r
		if !exact {
			claimed[r]++
		}
		switch {
		case exact:
			out[i] = MarkExact
		case expected[r] > 0 && claimed[r] <= expected[r]:
			out[i] = MarkPresent
		default:
			out[i] = MarkAbsent
		}
	}
	return out
}

// CheckGuess validates a raw guess against the secret's length and scores it.
// A wrong-length guess is rejected; nothing is scored.
func CheckGuess(secret, guess string) (Marks, error) {
	guess = NormalizeWord(guess)
	if guess == "" {
		return nil, models.NewValidationError("guess", `must pass field named "guess" containing guessed word`)
	}
	letters := utf8.RuneCountInString(secret)
	if utf8.RuneCountInString(guess) != letters {
		return nil, models.NewValidationError("guess", "guess must be %d letters", letters)
	}
	return EvaluateGuess(secret, guess), nil
}
