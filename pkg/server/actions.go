package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/electa-dev/electa/pkg/action"
)

// socketWriteTimeout bounds writing one response frame.
const socketWriteTimeout = 10 * time.Second

// dispatch runs one action message for v and renders the response. Client
// events from consent changes follow the router's own events.
func (s *Server) dispatch(ctx context.Context, v *visitor, msg action.Message) (action.Response, error) {
	if s.config.Tracer == nil {
		return s.runAction(ctx, v, msg)
	}
	ctx, end := s.config.Tracer.StartAction(ctx, msg.Action)
	resp, err := s.runAction(ctx, v, msg)
	end(len(resp.Patches), err)
	return resp, err
}

func (s *Server) runAction(ctx context.Context, v *visitor, msg action.Message) (action.Response, error) {
	cfg := action.Config{
		Votes:     v.votes,
		Cart:      v.cart,
		Consent:   v.consent,
		Directory: s.config.Catalog.LoadDirectory(ctx),
		Products:  s.config.Catalog.LoadShop(ctx),
		Logger:    s.logger.With("visitor", v.id),
	}
	if s.config.Metrics != nil {
		cfg.Observer = s.config.Metrics
	}

	res := action.NewRouter(cfg).Handle(ctx, msg)
	res.Events = append(res.Events, v.scripts.drain()...)

	resp, err := res.Render(s.renderer)
	if err != nil {
		return action.Response{}, err
	}
	if s.config.Metrics != nil {
		s.config.Metrics.RecordPatches(len(resp.Patches))
	}
	return resp, nil
}

// handleAction serves POST /actions: one JSON action message in, one JSON
// response of patches and events out.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)

	msg, err := decodeMessage(http.MaxBytesReader(w, r.Body, s.config.MaxActionBytes))
	if err != nil {
		s.logger.Debug("action body rejected", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp, err := s.dispatch(r.Context(), v, msg)
	if err != nil {
		s.logger.Error("action failed", "action", msg.Action, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("write action response failed", "error", err)
	}
}

func decodeMessage(r io.Reader) (action.Message, error) {
	var msg action.Message
	if err := json.NewDecoder(r).Decode(&msg); err != nil {
		return action.Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Action == "" {
		return action.Message{}, fmt.Errorf("%w: no action", ErrInvalidMessage)
	}
	return msg, nil
}

// handleWebSocket serves /ws. Each text frame carries one action message
// and is answered by one response frame, in order. A visitor without a
// cookie gets it on the upgrade response.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, cookie := s.visitorID(r)
	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
	}

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		if s.config.Metrics != nil {
			s.config.Metrics.RecordWebSocketError(err)
		}
		return
	}
	defer conn.Close()

	if s.config.Metrics != nil {
		s.config.Metrics.RecordWebSocketOpen()
		defer s.config.Metrics.RecordWebSocketClose()
	}

	ctx := context.WithoutCancel(r.Context())
	s.serveSocket(ctx, conn, s.newVisitor(id))
}

func (s *Server) serveSocket(ctx context.Context, conn *websocket.Conn, v *visitor) {
	conn.SetReadLimit(s.config.MaxActionBytes)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.config.SocketIdleTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err)
				if s.config.Metrics != nil {
					s.config.Metrics.RecordWebSocketError(err)
				}
			}
			return
		}

		msg, err := decodeMessage(bytes.NewReader(data))
		if err != nil {
			s.logger.Debug("websocket message rejected", "error", err)
			if s.config.Metrics != nil {
				s.config.Metrics.RecordWebSocketError(err)
			}
			continue
		}

		resp, err := s.dispatch(ctx, v, msg)
		if err != nil {
			s.logger.Error("action failed", "action", msg.Action, "error", err)
			resp = action.Response{}
		}

		_ = conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) {
				s.logger.Warn("websocket write error", "error", err)
			}
			return
		}
	}
}
