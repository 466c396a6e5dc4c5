// Feud game server core.
//
// One Hub exists per process and owns the entire session: the connection
// registry, the authoritative game state, and the broadcast fanout. Every
// state transition — logins, host commands, answer submissions, timer ticks,
// disconnects — is delivered as an event on one of the hub's channels and
// drained by a single run() goroutine, so no two handlers ever interleave
// mid-mutation. Handlers must not block; slow clients are dropped rather
// than waited on.

package main

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

type role int

const (
	roleNone role = iota
	roleHost
	roleParticipant
)

// Client is one live WebSocket connection and its session binding.
type Client struct {
	conn *websocket.Conn
	send chan any
	id   string

	role role
	name string
	team string
}

type inboundEvent struct {
	client *Client
	msg    ClientMessage
}

// beginRound is the deferred entry into the first question after the
// start-game countdown.
type beginRound struct {
	gen int
}

type Hub struct {
	cfg   *Config
	match Matcher

	clients map[*Client]bool
	host    *Client
	game    *Game

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent
	begins     chan beginRound
	ticks      chan timerTick

	timer    *roundTimer
	timerGen int
}

func newHub(cfg *Config, questions []Question) *Hub {
	return &Hub{
		cfg:        cfg,
		match:      MatchAnswer,
		clients:    make(map[*Client]bool),
		game:       newGame(questions),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundEvent),
		begins:     make(chan beginRound, 1),
		ticks:      make(chan timerTick),
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			logf(h.cfg, "GAMES: Connection %s opened", c.id)

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case ev := <-h.inbound:
			h.dispatch(ev.client, ev.msg)

		case b := <-h.begins:
			h.handleBeginRound(b)

		case t := <-h.ticks:
			h.handleTick(t)
		}
	}
}

func (h *Hub) dispatch(c *Client, msg ClientMessage) {
	switch msg.Type {
	case "host-login":
		h.handleHostLogin(c, msg)
	case "participant-login":
		h.handleParticipantLogin(c, msg)
	case "start-game":
		h.handleStartGame(c)
	case "submit-answer":
		h.handleSubmitAnswer(c, msg)
	case "manual-reveal":
		h.handleManualReveal(c, msg)
	case "reveal-all":
		h.handleRevealAll(c)
	case "next-question":
		h.handleNextQuestion(c)
	case "end-game":
		h.handleEndGame(c)
	case "send-chat":
		h.handleChat(c, msg)
	default:
		// ignore unknown types
	}
}

// Audience selectors for broadcast fanout.
type audience int

const (
	toEveryone audience = iota
	toAllParticipants
	toHost
	toTeam
)

// broadcast delivers msg to every currently-connected member of the
// audience, at most once each, fire-and-forget. team is only consulted
// for the toTeam selector.
func (h *Hub) broadcast(aud audience, team string, msg any) {
	switch aud {
	case toHost:
		if h.host != nil {
			h.sendTo(h.host, msg)
		}
	case toTeam:
		t, ok := h.game.Teams[team]
		if !ok {
			return
		}
		for _, c := range t.Members {
			h.sendTo(c, msg)
		}
	case toAllParticipants:
		for _, name := range teamNames {
			for _, c := range h.game.Teams[name].Members {
				h.sendTo(c, msg)
			}
		}
	case toEveryone:
		h.broadcast(toAllParticipants, "", msg)
		h.broadcast(toHost, "", msg)
	}
}

// sendTo queues msg for one client. A client whose send buffer is full is
// evicted immediately rather than allowed to stall the loop; its read pump
// will deliver the roster cascade when the connection dies.
func (h *Hub) sendTo(c *Client, msg any) {
	if !h.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
		logf(h.cfg, "GAMES: Dropped unresponsive connection %s", c.id)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWS upgrades the connection and runs the read pump until the client
// goes away.
func serveWS(cfg *Config, h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 16),
			id:   uuid.NewString(),
		}

		h.register <- client

		go client.writePump()
		client.readPump(h)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.inbound <- inboundEvent{
			client: c,
			msg:    msg,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
