// Package chat serves the conversational front-end over WebSocket. Each
// connection gets its own agent, so a browser tab is a conversation.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/spear-lab/spearchat/pkg/agent"
)

const welcomeText = "Hello! I can help you explore GFDL SPEAR climate projections: " +
	"browse the archive, look up variables, and query or plot model output. " +
	"What would you like to look at?"

// Server accepts WebSocket connections and runs one agent per connection.
type Server struct {
	// NewAgent builds a fresh agent for each connection.
	NewAgent func() *agent.Agent

	// TurnTimeout bounds a single turn. Zero means no limit.
	TurnTimeout time.Duration
}

// ServeHTTP upgrades the request and runs the session loop until the client
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("chat: websocket accept: %v", err)
		return
	}

	sess := &session{
		conn:  conn,
		agent: s.NewAgent(),
	}
	defer conn.Close(websocket.StatusInternalError, "session ended")

	sess.run(r.Context(), s.TurnTimeout)
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// session is one WebSocket connection and its conversation.
type session struct {
	conn  *websocket.Conn
	agent *agent.Agent

	writeMu sync.Mutex
}

func (s *session) run(ctx context.Context, turnTimeout time.Duration) {
	if err := s.write(ctx, WireMessage{
		Type:      MsgWelcome,
		Text:      welcomeText,
		SessionID: s.agent.SessionID(),
	}); err != nil {
		return
	}

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure &&
				status != websocket.StatusGoingAway &&
				!errors.Is(err, context.Canceled) {
				log.Printf("chat: session %s read: %v", s.agent.SessionID(), err)
			}
			return
		}

		var msg WireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = s.write(ctx, WireMessage{Type: MsgError, Text: "malformed message: " + err.Error()})
			continue
		}

		if msg.Type != MsgUserMessage {
			_ = s.write(ctx, WireMessage{Type: MsgError, Text: fmt.Sprintf("unexpected message type %q", msg.Type)})
			continue
		}
		if msg.Text == "" {
			_ = s.write(ctx, WireMessage{Type: MsgError, Text: "empty message"})
			continue
		}

		s.runTurn(ctx, msg.Text, turnTimeout)
	}
}

func (s *session) runTurn(ctx context.Context, text string, timeout time.Duration) {
	turnCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	_, err := s.agent.RunTurn(turnCtx, text, func(ev agent.Event) {
		// Write errors surface on the next read, so drop them here.
		_ = s.write(ctx, fromEvent(ev))
	})
	if err != nil {
		log.Printf("chat: session %s turn: %v", s.agent.SessionID(), err)
		_ = s.write(ctx, WireMessage{Type: MsgError, Text: "Something went wrong processing that request. Please try again."})
		_ = s.write(ctx, WireMessage{Type: MsgTurnDone})
	}
}

func (s *session) write(ctx context.Context, msg WireMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.Write(ctx, websocket.MessageText, data)
}
