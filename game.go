package main

import (
	"time"
)

const (
	teamA      = "Team A"
	teamB      = "Team B"
	maxStrikes = 3
)

var teamNames = []string{teamA, teamB}

type phase int

const (
	phaseIdle phase = iota
	phaseCountdown
	phaseQuestionActive
	phaseQuestionClosed
	phaseEnded
)

// Team owns one side of the board: an insertion-ordered roster, the running
// score, the strike count, and the set of answer indices already awarded to
// this team for the current question.
type Team struct {
	Name       string
	Members    []*Client
	Score      int
	Strikes    int
	Revealed   map[int]bool
	Eliminated bool
}

// Game is the aggregate session state. Exactly one exists per process; it is
// reinitialized, never recreated, on each start-game. Only the hub loop may
// touch it.
type Game struct {
	Phase     phase
	Current   int
	Timer     int
	Questions []Question
	Teams     map[string]*Team
	History   []AnswerRecord
	Chat      []ChatMessage
}

func newGame(questions []Question) *Game {
	g := &Game{
		Phase:     phaseIdle,
		Questions: questions,
		Teams:     make(map[string]*Team, len(teamNames)),
	}
	for _, name := range teamNames {
		g.Teams[name] = &Team{
			Name:     name,
			Revealed: make(map[int]bool),
		}
	}
	return g
}

// reset clears all per-match state while keeping rosters intact.
func (g *Game) reset(duration int) {
	g.Phase = phaseCountdown
	g.Current = 0
	g.Timer = duration
	g.History = nil
	g.Chat = nil
	for _, t := range g.Teams {
		t.Score = 0
		t.Strikes = 0
		t.Eliminated = false
		t.Revealed = make(map[int]bool)
	}
}

func (g *Game) Active() bool {
	switch g.Phase {
	case phaseCountdown, phaseQuestionActive, phaseQuestionClosed:
		return true
	}
	return false
}

func (g *Game) question() Question {
	return g.Questions[g.Current]
}

func (g *Game) scores() map[string]int {
	scores := make(map[string]int, len(g.Teams))
	for name, t := range g.Teams {
		scores[name] = t.Score
	}
	return scores
}

func (g *Game) strikes() map[string]int {
	strikes := make(map[string]int, len(g.Teams))
	for name, t := range g.Teams {
		strikes[name] = t.Strikes
	}
	return strikes
}

func (g *Game) rosters() map[string][]string {
	rosters := make(map[string][]string, len(g.Teams))
	for name, t := range g.Teams {
		rosters[name] = t.memberNames()
	}
	return rosters
}

func (t *Team) memberNames() []string {
	names := make([]string, 0, len(t.Members))
	for _, c := range t.Members {
		names = append(names, c.name)
	}
	return names
}

func (t *Team) removeMember(c *Client) bool {
	dst := t.Members[:0]
	removed := false
	for _, m := range t.Members {
		if m == c {
			removed = true
			continue
		}
		dst = append(dst, m)
	}
	t.Members = dst
	return removed
}

func (h *Hub) isHost(c *Client) bool {
	return h.host != nil && h.host == c
}

// handleHostLogin authenticates the host connection. A stale host seat (the
// previous host connection is gone) is silently displaced; a login while a
// different host is still connected is rejected.
func (h *Hub) handleHostLogin(c *Client, msg ClientMessage) {
	if c.role == roleParticipant {
		return
	}

	if msg.Username != h.cfg.hostUsername || msg.Password != h.cfg.hostPassword {
		h.sendTo(c, HostAuthenticatedMessage{
			Type:    "host-authenticated",
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	if h.host != nil && h.host != c {
		h.sendTo(c, HostAuthenticatedMessage{
			Type:    "host-authenticated",
			Success: false,
			Message: "Another host is already connected",
		})
		return
	}

	c.role = roleHost
	h.host = c

	h.sendTo(c, HostAuthenticatedMessage{
		Type:    "host-authenticated",
		Success: true,
		GameState: &GameSnapshot{
			Participants: h.game.rosters(),
			Scores:       h.game.scores(),
			Strikes:      h.game.strikes(),
			Active:       h.game.Active(),
		},
	})

	logf(h.cfg, "GAMES: Host authenticated on connection %s", c.id)
}

// handleParticipantLogin registers a connection onto a team. Display names
// must be unique across both rosters.
func (h *Hub) handleParticipantLogin(c *Client, msg ClientMessage) {
	if c.role != roleNone {
		return
	}

	team, knownTeam := h.game.Teams[msg.TeamName]
	if msg.Password != h.cfg.teamPassword || !knownTeam || msg.ParticipantName == "" {
		h.sendTo(c, ParticipantAuthenticatedMessage{
			Type:    "participant-authenticated",
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	for _, t := range h.game.Teams {
		for _, m := range t.Members {
			if m.name == msg.ParticipantName {
				h.sendTo(c, ParticipantAuthenticatedMessage{
					Type:    "participant-authenticated",
					Success: false,
					Message: "Name already taken",
				})
				return
			}
		}
	}

	c.role = roleParticipant
	c.name = msg.ParticipantName
	c.team = team.Name
	team.Members = append(team.Members, c)

	h.sendTo(c, ParticipantAuthenticatedMessage{
		Type:    "participant-authenticated",
		Success: true,
		Participant: &ParticipantInfo{
			Name: c.name,
			Team: c.team,
		},
		TeamMembers:     team.memberNames(),
		Active:          h.game.Active(),
		CurrentQuestion: h.game.Current,
	})

	h.broadcast(toHost, "", ParticipantsUpdatedMessage{
		Type:         "participants-updated",
		Participants: h.game.rosters(),
	})

	logf(h.cfg, "GAMES: Participant %q joined %s", c.name, c.team)
}

// handleStartGame resets the session and schedules entry into the first
// question after the countdown delay. Restarting mid-game abandons the
// current round.
func (h *Hub) handleStartGame(c *Client) {
	if !h.isHost(c) {
		return
	}

	g := h.game
	if h.cfg.requireBothTeams {
		for _, t := range g.Teams {
			if len(t.Members) == 0 {
				h.sendTo(c, GameStartFailedMessage{
					Type:    "game-start-failed",
					Message: "Need at least one participant from each team",
				})
				return
			}
		}
	}

	h.stopTimer()
	g.reset(h.cfg.questionDuration)

	h.broadcast(toAllParticipants, "", CountdownStartMessage{
		Type:    "countdown-start",
		Seconds: int(h.cfg.countdownDelay / time.Second),
	})

	h.timerGen++
	gen := h.timerGen
	time.AfterFunc(h.cfg.countdownDelay, func() {
		h.begins <- beginRound{gen: gen}
	})

	logf(h.cfg, "GAMES: Game started with %d questions", len(g.Questions))
}

// handleBeginRound fires when the countdown elapses. A stale generation
// means the session was restarted or torn down in the meantime.
func (h *Hub) handleBeginRound(b beginRound) {
	if b.gen != h.timerGen || h.game.Phase != phaseCountdown {
		return
	}
	h.startQuestion()
}

// startQuestion opens the current question for answers. Participants see the
// prompt and point values only; the host additionally receives the answers.
func (h *Hub) startQuestion() {
	g := h.game
	g.Phase = phaseQuestionActive
	g.Timer = h.cfg.questionDuration

	q := g.question()
	points := make([]int, len(q.Answers))
	for i, a := range q.Answers {
		points[i] = a.Points
	}

	msg := QuestionStartedMessage{
		Type:           "question-started",
		QuestionNumber: g.Current + 1,
		Question:       q.Prompt,
		Points:         points,
		Timer:          g.Timer,
	}
	h.broadcast(toAllParticipants, "", msg)

	hostMsg := msg
	hostMsg.Answers = q.Answers
	h.broadcast(toHost, "", hostMsg)

	h.startTimer()

	logf(h.cfg, "GAMES: Question %d started", g.Current+1)
}

// handleSubmitAnswer arbitrates a participant submission against the
// submitting team's revealed set for the current question.
func (h *Hub) handleSubmitAnswer(c *Client, msg ClientMessage) {
	if c.role != roleParticipant {
		return
	}

	g := h.game
	if g.Phase != phaseQuestionActive {
		return
	}

	team := g.Teams[c.team]
	q := g.question()

	idx, ok := h.match(msg.Answer, q.Answers, team.Revealed)
	if ok {
		a := q.Answers[idx]
		team.Revealed[idx] = true
		team.Score += a.Points
		g.History = append(g.History, AnswerRecord{
			Team:        team.Name,
			Participant: c.name,
			Submission:  msg.Answer,
			Correct:     true,
			AnswerIndex: idx,
			Points:      a.Points,
			At:          time.Now(),
		})

		h.broadcast(toTeam, team.Name, AnswerCorrectMessage{
			Type:        "answer-correct",
			AnswerIndex: idx,
			Answer:      a,
			Points:      a.Points,
			TeamScore:   team.Score,
			SubmittedBy: c.name,
		})

		h.broadcast(toHost, "", AnswerRevealedMessage{
			Type:        "answer-revealed",
			Team:        team.Name,
			AnswerIndex: idx,
			Answer:      a,
			Points:      a.Points,
			Scores:      g.scores(),
			SubmittedBy: c.name,
		})

		logf(h.cfg, "GAMES: %q scored %d for %s with %q", c.name, a.Points, team.Name, msg.Answer)
		return
	}

	if team.Strikes < maxStrikes {
		team.Strikes++
	}
	g.History = append(g.History, AnswerRecord{
		Team:        team.Name,
		Participant: c.name,
		Submission:  msg.Answer,
		Correct:     false,
		AnswerIndex: -1,
		At:          time.Now(),
	})

	h.broadcast(toTeam, team.Name, AnswerIncorrectMessage{
		Type:        "answer-incorrect",
		Strikes:     team.Strikes,
		SubmittedBy: c.name,
	})

	h.broadcast(toHost, "", StrikeUpdatedMessage{
		Type:    "strike-updated",
		Team:    team.Name,
		Strikes: team.Strikes,
	})

	// Elimination is announced exactly once per round and is informational:
	// the host keeps manual control of the round.
	if team.Strikes >= maxStrikes && !team.Eliminated {
		team.Eliminated = true
		elim := TeamEliminatedMessage{
			Type:    "team-eliminated",
			Team:    team.Name,
			Strikes: maxStrikes,
		}
		h.broadcast(toTeam, team.Name, elim)
		h.broadcast(toHost, "", elim)
		logf(h.cfg, "GAMES: %s eliminated on question %d", team.Name, g.Current+1)
	}
}

// handleManualReveal marks a single answer revealed for both teams,
// regardless of match state. Replays on an index already held by both
// teams are no-ops.
func (h *Hub) handleManualReveal(c *Client, msg ClientMessage) {
	if !h.isHost(c) || msg.AnswerIndex == nil {
		return
	}

	g := h.game
	if g.Phase != phaseQuestionActive && g.Phase != phaseQuestionClosed {
		return
	}

	idx := *msg.AnswerIndex
	q := g.question()
	if idx < 0 || idx >= len(q.Answers) {
		return
	}

	already := true
	for _, t := range g.Teams {
		if !t.Revealed[idx] {
			already = false
		}
	}
	if already {
		return
	}

	for _, t := range g.Teams {
		t.Revealed[idx] = true
	}

	h.broadcast(toEveryone, "", AnswerRevealedAllMessage{
		Type:        "answer-revealed-all",
		AnswerIndex: idx,
		Answer:      q.Answers[idx],
		Scores:      g.scores(),
	})
}

// handleRevealAll shows the full board to everyone without touching
// revealed sets or scores.
func (h *Hub) handleRevealAll(c *Client) {
	if !h.isHost(c) {
		return
	}

	g := h.game
	if !g.Active() {
		return
	}

	h.broadcast(toEveryone, "", AllAnswersRevealedMessage{
		Type:    "all-answers-revealed",
		Answers: g.question().Answers,
	})
}

// handleNextQuestion advances the board, resetting per-round team state,
// or ends the game when the bank is exhausted.
func (h *Hub) handleNextQuestion(c *Client) {
	if !h.isHost(c) {
		return
	}

	g := h.game
	if !g.Active() {
		return
	}

	if g.Current+1 >= len(g.Questions) {
		h.endGame()
		return
	}

	h.stopTimer()
	g.Current++
	for _, t := range g.Teams {
		t.Strikes = 0
		t.Eliminated = false
		t.Revealed = make(map[int]bool)
	}
	h.startQuestion()
}

func (h *Hub) handleEndGame(c *Client) {
	if !h.isHost(c) {
		return
	}
	if !h.game.Active() {
		return
	}
	h.endGame()
}

// endGame freezes the session, computes the winner by strict score
// comparison, and publishes the final standings with the full submission
// history.
func (h *Hub) endGame() {
	h.stopTimer()

	g := h.game
	g.Phase = phaseEnded

	winner := "Tie"
	a, b := g.Teams[teamA].Score, g.Teams[teamB].Score
	switch {
	case a > b:
		winner = teamA
	case b > a:
		winner = teamB
	}

	h.broadcast(toEveryone, "", GameEndedMessage{
		Type:    "game-ended",
		Winner:  winner,
		Scores:  g.scores(),
		History: g.History,
	})

	logf(h.cfg, "GAMES: Game ended, winner: %s", winner)
}

// handleChat fans a chat line out to the sender's team and the host; host
// chat reaches everyone. Unauthenticated connections are ignored.
func (h *Hub) handleChat(c *Client, msg ClientMessage) {
	if msg.Message == "" {
		return
	}

	switch c.role {
	case roleParticipant:
		cm := ChatMessage{
			Type:    "chat-message",
			Team:    c.team,
			From:    c.name,
			Message: msg.Message,
		}
		h.game.Chat = append(h.game.Chat, cm)
		h.broadcast(toTeam, c.team, cm)
		h.broadcast(toHost, "", cm)

	case roleHost:
		if !h.isHost(c) {
			return
		}
		cm := ChatMessage{
			Type:    "chat-message",
			From:    "Host",
			Message: msg.Message,
		}
		h.game.Chat = append(h.game.Chat, cm)
		h.broadcast(toEveryone, "", cm)
	}
}

// handleDisconnect tears down a connection's session bindings. Losing the
// host abandons any in-progress round; losing a participant only updates
// the rosters.
func (h *Hub) handleDisconnect(c *Client) {
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}

	switch c.role {
	case roleParticipant:
		team := h.game.Teams[c.team]
		if team == nil || !team.removeMember(c) {
			break
		}

		h.broadcast(toHost, "", ParticipantsUpdatedMessage{
			Type:         "participants-updated",
			Participants: h.game.rosters(),
		})
		h.broadcast(toTeam, team.Name, TeamUpdatedMessage{
			Type:    "team-updated",
			Team:    team.Name,
			Members: team.memberNames(),
		})

		logf(h.cfg, "GAMES: Participant %q left %s", c.name, c.team)

	case roleHost:
		if h.host != c {
			break
		}
		h.host = nil
		h.stopTimer()
		h.timerGen++ // cancels any pending countdown
		h.game.Phase = phaseIdle

		h.broadcast(toEveryone, "", HostDisconnectedMessage{Type: "host-disconnected"})

		logf(h.cfg, "GAMES: Host disconnected, session abandoned")
	}

	c.role = roleNone
}
