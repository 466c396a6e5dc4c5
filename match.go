package main

import (
	"strings"
)

// Matcher decides whether a submission scores against the current question.
// It scans answers in rank order, skipping indices already in the revealed
// set, and returns the index of the first qualifying answer. Matchers must
// be pure: no side effects, no retained state.
type Matcher func(submission string, answers []Answer, revealed map[int]bool) (int, bool)

// translitHints maps Devanagari fragments to Latin transliterations, so a
// romanized submission can still hit an answer written in Devanagari.
var translitHints = map[string]string{
	"देवो":   "devo",
	"ज्ञान":  "gyan",
	"विद्या": "vidya",
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchAnswer is the default Matcher: case-folded substring containment in
// either direction. Deliberately loose, to tolerate partial typing and
// transliteration; a stricter strategy can be swapped in on the hub
// without touching the game handlers.
func MatchAnswer(submission string, answers []Answer, revealed map[int]bool) (int, bool) {
	guess := normalizeAnswer(submission)
	if guess == "" {
		return 0, false
	}

	for i, a := range answers {
		if revealed[i] {
			continue
		}

		text := normalizeAnswer(a.Text)
		if strings.Contains(text, guess) || strings.Contains(guess, text) {
			return i, true
		}

		for devanagari, latin := range translitHints {
			if strings.Contains(text, devanagari) && strings.Contains(guess, latin) {
				return i, true
			}
		}
	}

	return 0, false
}
