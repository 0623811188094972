package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"devops-quiz/internal/app"
	"devops-quiz/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectTopicPayload struct {
	Topic string `json:"topic"`
}

type selectOptionPayload struct {
	Index *int `json:"index"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and plays one quiz session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	log := h.log.With(zap.String("session", sessionID))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	engine, err := h.service.Open(r.Context(), sessionID)
	if err != nil {
		log.Error("open session failed", zap.Error(err))
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	defer h.service.Close(r.Context(), sessionID)

	updates, cancel := engine.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer: gorilla connections do not support concurrent writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{SessionID: sessionID}}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case view, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: view}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.dispatch(engine, inbound) {
			select {
			case send <- msg:
			case <-writerDone:
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
	log.Debug("ws session closed", zap.String("state", string(engine.State())))
}

// dispatch applies one command and returns the direct replies. State changes
// reach the client through the engine subscription.
func (h *WSHandler) dispatch(engine *app.Engine, inbound inboundMessage) []outboundMessage[any] {
	switch inbound.Type {
	case "selectTopic":
		var payload selectTopicPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return []outboundMessage[any]{invalidPayload()}
		}
		if err := engine.StartQuiz(payload.Topic); err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
	case "selectOption":
		var payload selectOptionPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Index == nil {
			return []outboundMessage[any]{invalidPayload()}
		}
		if err := engine.SelectAnswer(*payload.Index); err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
	case "submit":
		result, err := engine.SubmitAnswer()
		if err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
		return []outboundMessage[any]{{Type: "result", Payload: result}}
	case "next":
		if err := engine.NextQuestion(); err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
		if summary, err := engine.Summary(); err == nil {
			return []outboundMessage[any]{{Type: "summary", Payload: summary}}
		}
	case "backToTopics":
		engine.Reset()
	default:
		return []outboundMessage[any]{{Type: "error", Payload: errorPayload{Code: "unsupported", Message: "unsupported message type"}}}
	}
	return nil
}

func invalidPayload() outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "invalid_payload", Message: "invalid payload"}}
}

func errorMessage(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: errorCode(err), Message: err.Error()}}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInvalidData, "invalid_data"},
	{domain.ErrNotLoaded, "not_loaded"},
	{domain.ErrEmptyTopic, "empty_topic"},
	{domain.ErrNoActiveQuestion, "no_active_question"},
	{domain.ErrOptionOutOfRange, "option_out_of_range"},
	{domain.ErrNoSelection, "no_selection"},
	{domain.ErrAlreadyAnswered, "already_answered"},
	{domain.ErrNotAnswered, "not_answered"},
	{domain.ErrNotComplete, "not_complete"},
	{domain.ErrSessionNotFound, "session_not_found"},
}

func errorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}
