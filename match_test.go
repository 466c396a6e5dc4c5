package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchAnswer(t *testing.T) {
	answers := []Answer{
		{Text: "The world is one family", Points: 25},
		{Text: "Earth is our home", Points: 20},
		{Text: "Unity in diversity", Points: 15},
	}

	tests := []struct {
		name       string
		submission string
		revealed   map[int]bool
		wantIndex  int
		wantMatch  bool
	}{
		{name: "exact", submission: "The world is one family", wantIndex: 0, wantMatch: true},
		{name: "case folded", submission: "UNITY IN DIVERSITY", wantIndex: 2, wantMatch: true},
		{name: "submission inside answer", submission: "one family", wantIndex: 0, wantMatch: true},
		{name: "answer inside submission", submission: "i think it is earth is our home right", wantIndex: 1, wantMatch: true},
		{name: "whitespace trimmed", submission: "  unity in diversity  ", wantIndex: 2, wantMatch: true},
		{name: "no match", submission: "something else entirely", wantMatch: false},
		{name: "empty", submission: "", wantMatch: false},
		{name: "whitespace only", submission: "   ", wantMatch: false},
		{
			name:       "revealed index skipped",
			submission: "one family",
			revealed:   map[int]bool{0: true},
			wantMatch:  false,
		},
		{
			name:       "highest rank wins",
			submission: "i", // contained in every answer
			wantIndex:  0,
			wantMatch:  true,
		},
		{
			name:       "rank order respects revealed set",
			submission: "i",
			revealed:   map[int]bool{0: true},
			wantIndex:  1,
			wantMatch:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := MatchAnswer(tt.submission, answers, tt.revealed)
			require.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantIndex, idx)
			}
		})
	}
}

func TestMatchAnswerTransliteration(t *testing.T) {
	answers := []Answer{
		{Text: "ज्ञान (Gyana)", Points: 25},
		{Text: "विद्या (Vidya)", Points: 20},
		{Text: "गुरुदेवो भव", Points: 5},
	}

	idx, ok := MatchAnswer("vidya", answers, nil)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = MatchAnswer("gyan", answers, nil)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	// Pure Devanagari answer, romanized submission: only the hint table
	// can bridge this one.
	idx, ok = MatchAnswer("gurudevo bhava", answers, nil)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestMatchAnswerRevealedNeverRematches(t *testing.T) {
	answers := []Answer{{Text: "विद्या (Vidya)", Points: 20}}

	idx, ok := MatchAnswer("vidya", answers, nil)
	require.True(t, ok)
	require.Equal(t, 0, idx)

	_, ok = MatchAnswer("vidya", answers, map[int]bool{0: true})
	assert.False(t, ok)
}
