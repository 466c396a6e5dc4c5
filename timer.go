package main

import (
	"time"
)

// timerTick is enqueued once per second by the active round timer. The
// generation number lets the hub loop discard ticks from a timer that has
// since been replaced, so a stale tick can never corrupt a new round.
type timerTick struct {
	gen int
}

type roundTimer struct {
	gen  int
	stop chan struct{}
}

// startTimer replaces any running timer with a fresh one. Stopping the old
// timer first is an invariant of every round transition, not cleanup.
func (h *Hub) startTimer() {
	h.stopTimer()

	h.timerGen++
	t := &roundTimer{
		gen:  h.timerGen,
		stop: make(chan struct{}),
	}
	h.timer = t

	go t.tick(h.ticks)
}

func (h *Hub) stopTimer() {
	if h.timer != nil {
		close(h.timer.stop)
		h.timer = nil
	}
}

// tick delivers one event per second into the hub queue until stopped.
// Ticks are ordinary loop events, so they observe the same non-interleaving
// guarantee as every other transition.
func (t *roundTimer) tick(ticks chan<- timerTick) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			select {
			case ticks <- timerTick{gen: t.gen}:
			case <-t.stop:
				return
			}
		}
	}
}

// handleTick decrements the countdown and broadcasts it. Reaching zero
// closes the question: answers stop scoring, but advancing remains a host
// decision.
func (h *Hub) handleTick(t timerTick) {
	if h.timer == nil || t.gen != h.timer.gen {
		return
	}

	g := h.game
	if g.Phase != phaseQuestionActive {
		return
	}

	g.Timer--
	h.broadcast(toEveryone, "", TimerUpdateMessage{
		Type:  "timer-update",
		Timer: g.Timer,
	})

	if g.Timer <= 0 {
		h.stopTimer()
		g.Phase = phaseQuestionClosed
		h.broadcast(toEveryone, "", TimerExpiredMessage{Type: "timer-expired"})
		logf(h.cfg, "GAMES: Timer expired on question %d", g.Current+1)
	}
}
