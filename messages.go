package main

import "time"

// Messages coming from clients
type ClientMessage struct {
	Type            string `json:"type"`                       // "host-login", "participant-login", "start-game", "submit-answer", "manual-reveal", "reveal-all", "next-question", "end-game", "send-chat"
	Username        string `json:"username,omitempty"`         // host-login
	Password        string `json:"password,omitempty"`         // host-login / participant-login
	TeamName        string `json:"team_name,omitempty"`        // participant-login
	ParticipantName string `json:"participant_name,omitempty"` // participant-login
	Answer          string `json:"answer,omitempty"`           // submit-answer
	AnswerIndex     *int   `json:"answer_index,omitempty"`     // manual-reveal
	Message         string `json:"message,omitempty"`          // send-chat
}

// GameSnapshot is the host's view of the session, sent on authentication.
type GameSnapshot struct {
	Participants map[string][]string `json:"participants"`
	Scores       map[string]int      `json:"scores"`
	Strikes      map[string]int      `json:"strikes"`
	Active       bool                `json:"active"`
}

// Sent to the host connection after a host-login attempt.
type HostAuthenticatedMessage struct {
	Type      string        `json:"type"` // "host-authenticated"
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	GameState *GameSnapshot `json:"game_state,omitempty"`
}

// ParticipantInfo identifies a registered participant.
type ParticipantInfo struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// Sent to a participant connection after a participant-login attempt.
type ParticipantAuthenticatedMessage struct {
	Type            string           `json:"type"` // "participant-authenticated"
	Success         bool             `json:"success"`
	Message         string           `json:"message,omitempty"`
	Participant     *ParticipantInfo `json:"participant,omitempty"`
	TeamMembers     []string         `json:"team_members,omitempty"`
	Active          bool             `json:"active"`
	CurrentQuestion int              `json:"current_question"`
}

// Sent to the host whenever a roster changes.
type ParticipantsUpdatedMessage struct {
	Type         string              `json:"type"` // "participants-updated"
	Participants map[string][]string `json:"participants"`
}

// Sent to a team whenever its own roster changes.
type TeamUpdatedMessage struct {
	Type    string   `json:"type"` // "team-updated"
	Team    string   `json:"team"`
	Members []string `json:"members"`
}

// Sent only to the host when a start-game precondition fails.
type GameStartFailedMessage struct {
	Type    string `json:"type"` // "game-start-failed"
	Message string `json:"message"`
}

// Sent to all participants when the pre-question countdown begins.
type CountdownStartMessage struct {
	Type    string `json:"type"` // "countdown-start"
	Seconds int    `json:"seconds"`
}

// QuestionStartedMessage announces a new round. Participants receive only
// the per-answer point values; the host's copy carries the full answers.
type QuestionStartedMessage struct {
	Type           string   `json:"type"` // "question-started"
	QuestionNumber int      `json:"question_number"`
	Question       string   `json:"question"`
	Points         []int    `json:"points"`
	Answers        []Answer `json:"answers,omitempty"` // host only
	Timer          int      `json:"timer"`
}

type TimerUpdateMessage struct {
	Type  string `json:"type"` // "timer-update"
	Timer int    `json:"timer"`
}

type TimerExpiredMessage struct {
	Type string `json:"type"` // "timer-expired"
}

// Sent to the scoring team after a correct submission.
type AnswerCorrectMessage struct {
	Type        string `json:"type"` // "answer-correct"
	AnswerIndex int    `json:"answer_index"`
	Answer      Answer `json:"answer"`
	Points      int    `json:"points"`
	TeamScore   int    `json:"team_score"`
	SubmittedBy string `json:"submitted_by"`
}

// Sent to the host after a correct submission, with full context.
type AnswerRevealedMessage struct {
	Type        string         `json:"type"` // "answer-revealed"
	Team        string         `json:"team"`
	AnswerIndex int            `json:"answer_index"`
	Answer      Answer         `json:"answer"`
	Points      int            `json:"points"`
	Scores      map[string]int `json:"scores"`
	SubmittedBy string         `json:"submitted_by"`
}

// Sent to the submitting team after an incorrect submission.
type AnswerIncorrectMessage struct {
	Type        string `json:"type"` // "answer-incorrect"
	Strikes     int    `json:"strikes"`
	SubmittedBy string `json:"submitted_by"`
}

// Sent to the host after an incorrect submission.
type StrikeUpdatedMessage struct {
	Type    string `json:"type"` // "strike-updated"
	Team    string `json:"team"`
	Strikes int    `json:"strikes"`
}

// Sent to the struck-out team and the host, exactly once per round.
type TeamEliminatedMessage struct {
	Type    string `json:"type"` // "team-eliminated"
	Team    string `json:"team"`
	Strikes int    `json:"strikes"`
}

// Sent to everyone when the host manually reveals a single answer.
type AnswerRevealedAllMessage struct {
	Type        string         `json:"type"` // "answer-revealed-all"
	AnswerIndex int            `json:"answer_index"`
	Answer      Answer         `json:"answer"`
	Scores      map[string]int `json:"scores"`
}

// Sent to everyone when the host reveals the entire board.
type AllAnswersRevealedMessage struct {
	Type    string   `json:"type"` // "all-answers-revealed"
	Answers []Answer `json:"answers"`
}

type ChatMessage struct {
	Type    string `json:"type"` // "chat-message"
	Team    string `json:"team,omitempty"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// AnswerRecord is one entry in the session's submission history.
type AnswerRecord struct {
	Team        string    `json:"team"`
	Participant string    `json:"participant"`
	Submission  string    `json:"submission"`
	Correct     bool      `json:"correct"`
	AnswerIndex int       `json:"answer_index"` // -1 for incorrect submissions
	Points      int       `json:"points"`
	At          time.Time `json:"at"`
}

// Sent to everyone when the game ends, with the final standings.
type GameEndedMessage struct {
	Type    string         `json:"type"` // "game-ended"
	Winner  string         `json:"winner"`
	Scores  map[string]int `json:"scores"`
	History []AnswerRecord `json:"history"`
}

type HostDisconnectedMessage struct {
	Type string `json:"type"` // "host-disconnected"
}
