// Package mockserver provides a mock Telegram Bot API server for testing.
// It implements the getMe and sendMessage methods used by the notifier.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// SentMessage is a message accepted by sendMessage.
type SentMessage struct {
	MessageID int
	ChatID    int64
	Text      string
	// DisableWebPagePreview mirrors the disable_web_page_preview form field.
	DisableWebPagePreview bool
}

// Failure makes the next sendMessage calls fail with a Bot API error.
type Failure struct {
	Code        int
	Description string
	RetryAfter  int
	// Delay holds the response back, to exercise client timeouts.
	Delay time.Duration
}

// MockTelegramServer is an in-process Bot API. Only Token is authorized.
type MockTelegramServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	token    string
	messages []SentMessage
	failures []Failure
	nextID   int
}

// NewMockTelegramServer returns a server that accepts token.
func NewMockTelegramServer(token string) *MockTelegramServer {
	return &MockTelegramServer{
		mu:         sync.RWMutex{},
		httpServer: nil,
		listener:   nil,
		token:      token,
		messages:   make([]SentMessage, 0),
		failures:   make([]Failure, 0),
		nextID:     1,
	}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockTelegramServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	router := mux.NewRouter()
	router.HandleFunc("/bot{token}/getMe", s.authorized(s.handleGetMe)).Methods("POST")
	router.HandleFunc("/bot{token}/sendMessage", s.authorized(s.handleSendMessage)).Methods("POST")
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found: method not found", 0)
	})

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockTelegramServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// BaseURL returns the base URL for the server.
func (s *MockTelegramServer) BaseURL() string {
	if s.listener == nil {
		return ""
	}

	return "http://" + s.listener.Addr().String()
}

// Endpoint returns the Bot API URL template for this server.
func (s *MockTelegramServer) Endpoint() string {
	return s.BaseURL() + "/bot%s/%s"
}

// Messages returns the accepted messages in arrival order.
func (s *MockTelegramServer) Messages() []SentMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SentMessage, len(s.messages))
	copy(out, s.messages)

	return out
}

// FailNext queues failures consumed one per sendMessage call.
func (s *MockTelegramServer) FailNext(failures ...Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, failures...)
}

func (s *MockTelegramServer) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["token"] != s.token {
			writeError(w, http.StatusUnauthorized, "Unauthorized", 0)

			return
		}

		next(w, r)
	}
}

// handleGetMe handles POST /bot{token}/getMe
func (s *MockTelegramServer) handleGetMe(w http.ResponseWriter, _ *http.Request) {
	writeResult(w, map[string]any{
		"id":         1,
		"is_bot":     true,
		"first_name": "tradelog",
		"username":   "tradelog_bot",
	})
}

// handleSendMessage handles POST /bot{token}/sendMessage
func (s *MockTelegramServer) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request: invalid form", 0)

		return
	}

	chatID, err := strconv.ParseInt(r.PostForm.Get("chat_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request: chat not found", 0)

		return
	}

	text := r.PostForm.Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "Bad Request: message text is empty", 0)

		return
	}

	s.mu.Lock()
	var failure *Failure
	if len(s.failures) > 0 {
		failure = &s.failures[0]
		s.failures = s.failures[1:]
	}
	s.mu.Unlock()

	if failure != nil {
		if failure.Delay > 0 {
			select {
			case <-time.After(failure.Delay):
			case <-r.Context().Done():
				return
			}
		}

		if failure.Code != 0 {
			writeError(w, failure.Code, failure.Description, failure.RetryAfter)

			return
		}
	}

	s.mu.Lock()
	msg := SentMessage{
		MessageID:             s.nextID,
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: r.PostForm.Get("disable_web_page_preview") == "true",
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	writeResult(w, map[string]any{
		"message_id": msg.MessageID,
		"date":       time.Now().Unix(),
		"chat":       map[string]any{"id": chatID, "type": "private"},
		"text":       text,
	})
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":     true,
		"result": result,
	})
}

func writeError(w http.ResponseWriter, code int, description string, retryAfter int) {
	body := map[string]any{
		"ok":          false,
		"error_code":  code,
		"description": description,
	}

	if retryAfter > 0 {
		body["parameters"] = map[string]any{"retry_after": retryAfter}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
