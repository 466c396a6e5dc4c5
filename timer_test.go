package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerCountdownAndExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.questionDuration = 3

	h := newHub(cfg, testBank())
	host := loginHost(t, h)
	pa := loginParticipant(t, h, "Asha", teamA)
	pb := loginParticipant(t, h, "Bea", teamB)
	startActiveGame(t, h, host, pa, pb)

	require.NotNil(t, h.timer)
	gen := h.timer.gen

	h.handleTick(timerTick{gen: gen})
	h.handleTick(timerTick{gen: gen})

	msgs := drain(pa)
	updates := msgsOf[TimerUpdateMessage](msgs)
	require.Len(t, updates, 2)
	assert.Equal(t, 2, updates[0].Timer)
	assert.Equal(t, 1, updates[1].Timer)
	assert.Empty(t, msgsOf[TimerExpiredMessage](msgs))

	// The tick that reaches zero broadcasts the final value and then the
	// expiry, exactly once, and closes the question.
	h.handleTick(timerTick{gen: gen})

	for _, c := range []*Client{host, pa, pb} {
		msgs = drain(c)
		updates = msgsOf[TimerUpdateMessage](msgs)
		require.NotEmpty(t, updates)
		assert.Equal(t, 0, updates[len(updates)-1].Timer)
		require.Len(t, msgsOf[TimerExpiredMessage](msgs), 1)
	}
	assert.Equal(t, phaseQuestionClosed, h.game.Phase)
	assert.Nil(t, h.timer)

	// A straggler tick after expiry is dropped.
	h.handleTick(timerTick{gen: gen})
	assert.Empty(t, drain(pa))
}

func TestTimerStaleGenerationIgnored(t *testing.T) {
	h := newHub(testConfig(), testBank())
	host := loginHost(t, h)
	pa := loginParticipant(t, h, "Asha", teamA)
	pb := loginParticipant(t, h, "Bea", teamB)
	startActiveGame(t, h, host, pa, pb)

	h.handleTick(timerTick{gen: h.timer.gen - 1})

	assert.Equal(t, 40, h.game.Timer)
	assert.Empty(t, drain(pa))
}

func TestNextQuestionReplacesTimer(t *testing.T) {
	h := newHub(testConfig(), testBank())
	host := loginHost(t, h)
	pa := loginParticipant(t, h, "Asha", teamA)
	pb := loginParticipant(t, h, "Bea", teamB)
	startActiveGame(t, h, host, pa, pb)

	oldGen := h.timer.gen
	h.handleTick(timerTick{gen: oldGen})
	require.Equal(t, 39, h.game.Timer)

	h.handleNextQuestion(host)

	require.NotNil(t, h.timer)
	assert.Greater(t, h.timer.gen, oldGen)
	assert.Equal(t, 40, h.game.Timer)

	// The displaced round's ticks no longer count.
	h.handleTick(timerTick{gen: oldGen})
	assert.Equal(t, 40, h.game.Timer)
}

func TestClosedQuestionAcceptsRevealsNotAnswers(t *testing.T) {
	cfg := testConfig()
	cfg.questionDuration = 1

	h := newHub(cfg, testBank())
	host := loginHost(t, h)
	pa := loginParticipant(t, h, "Asha", teamA)
	pb := loginParticipant(t, h, "Bea", teamB)
	startActiveGame(t, h, host, pa, pb)

	h.handleTick(timerTick{gen: h.timer.gen})
	require.Equal(t, phaseQuestionClosed, h.game.Phase)
	drain(pa)
	drain(pb)
	drain(host)

	h.handleSubmitAnswer(pa, ClientMessage{Type: "submit-answer", Answer: "alpha"})
	assert.Equal(t, 0, h.game.Teams[teamA].Score)
	assert.Empty(t, drain(pa))

	// The host still runs the board after the clock runs out.
	idx := 0
	h.handleManualReveal(host, ClientMessage{Type: "manual-reveal", AnswerIndex: &idx})
	require.Len(t, msgsOf[AnswerRevealedAllMessage](drain(pa)), 1)

	h.handleNextQuestion(host)
	assert.Equal(t, 1, h.game.Current)
	assert.Equal(t, phaseQuestionActive, h.game.Phase)
}
