package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	sessionName  = "fashion_digest_session"
	csrfTokenKey = "csrf_token"
)

// sessionManager signs the session cookie with the application secret key
type sessionManager struct {
	store *sessions.CookieStore
	log   zerolog.Logger
}

func newSessionManager(secretKey string, log zerolog.Logger) *sessionManager {
	store := sessions.NewCookieStore([]byte(secretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionManager{
		store: store,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// requestSession is the session of a single request. Load it once per
// handler; gorilla decodes a fresh copy on every store.Get.
type requestSession struct {
	*sessions.Session
	manager *sessionManager
}

func (m *sessionManager) load(c *gin.Context) *requestSession {
	sess, err := m.store.Get(c.Request, sessionName)
	if err != nil {
		// a tampered or stale cookie still yields a usable empty session
		m.log.Debug().Err(err).Msg("Discarding invalid session cookie")
	}
	return &requestSession{Session: sess, manager: m}
}

// csrfToken returns the session's form token, creating one if needed
func (s *requestSession) csrfToken() string {
	if token, ok := s.Values[csrfTokenKey].(string); ok && token != "" {
		return token
	}
	token := uuid.New().String()
	s.Values[csrfTokenKey] = token
	return token
}

func (s *requestSession) validCSRF(submitted string) bool {
	expected, ok := s.Values[csrfTokenKey].(string)
	if !ok || expected == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}

func (s *requestSession) addFlash(msg string) {
	s.AddFlash(msg)
}

// flashes pops every pending flash message
func (s *requestSession) flashes() []string {
	var msgs []string
	for _, f := range s.Flashes() {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// save writes the cookie; it must run before the response body
func (s *requestSession) save(c *gin.Context) {
	if err := s.Save(c.Request, c.Writer); err != nil {
		s.manager.log.Warn().Err(err).Msg("Failed to save session")
	}
}
