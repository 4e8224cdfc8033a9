package flash

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const sessionName = "storefront_flash"

// Level is the severity of a flash message.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Message is a one-shot notice shown on the next rendered page.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func init() {
	gob.Register(Message{})
}

// Store keeps flash messages in a signed cookie session.
type Store struct {
	sessions sessions.Store
	logger   *slog.Logger
}

// NewStore builds a cookie backed flash store signed with secret.
func NewStore(secret string, logger *slog.Logger) *Store {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{sessions: cookies, logger: logger}
}

// Add queues a message for the next page. It must run before the response body is written.
func (s *Store) Add(c *gin.Context, level Level, text string) {
	session := s.session(c)
	session.AddFlash(Message{Level: level, Text: text})
	if err := session.Save(c.Request, c.Writer); err != nil {
		s.logger.Warn("save flash failed", slog.String("error", err.Error()))
	}
}

// Pop returns and clears queued messages. The result is never nil.
func (s *Store) Pop(c *gin.Context) []Message {
	session := s.session(c)
	flashes := session.Flashes()
	messages := make([]Message, 0, len(flashes))
	for _, f := range flashes {
		if m, ok := f.(Message); ok {
			messages = append(messages, m)
		}
	}
	if len(flashes) > 0 {
		if err := session.Save(c.Request, c.Writer); err != nil {
			s.logger.Warn("clear flash failed", slog.String("error", err.Error()))
		}
	}
	return messages
}

func (s *Store) session(c *gin.Context) *sessions.Session {
	session, err := s.sessions.Get(c.Request, sessionName)
	if err != nil {
		// A tampered or stale cookie yields a fresh session.
		s.logger.Debug("discarding flash session", slog.String("error", err.Error()))
	}
	return session
}
