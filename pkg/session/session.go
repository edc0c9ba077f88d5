package session

import "time"

// Session is the authenticated state for one (endpoint, identity,
// environment) triple. Timestamps are unix epoch seconds to keep the cache
// file format portable across tooling.
type Session struct {
	SessionID     string  `json:"sessionId"`
	CSRFToken     string  `json:"csrfToken"`
	RouteCookie   string  `json:"routeAffinityCookie,omitempty"`
	Environment   string  `json:"environment"`
	Endpoint      string  `json:"endpoint"`
	Identity      string  `json:"identity"`
	CreatedAt     float64 `json:"createdAt"`
	LastUsedAt    float64 `json:"lastUsedAt"`
	Authenticated bool    `json:"authenticated"`
}

// New creates an empty session shell for the given triple with creation and
// last-used timestamps set to now. The negotiator fills in the server-issued
// fields on successful login.
func New(endpoint, identity, environment string) *Session {
	ts := now()
	return &Session{
		Environment: environment,
		Endpoint:    endpoint,
		Identity:    identity,
		CreatedAt:   ts,
		LastUsedAt:  ts,
	}
}

// Complete reports whether the session carries both server-issued tokens.
// Incomplete sessions must never be persisted or reused.
func (s *Session) Complete() bool {
	return s != nil && s.SessionID != "" && s.CSRFToken != ""
}

// Touch advances the last-used timestamp.
func (s *Session) Touch() {
	if s == nil {
		return
	}
	s.LastUsedAt = now()
}

// Key returns the storage key for this session's triple.
func (s *Session) Key() Key {
	return NewKey(s.Endpoint, s.Identity, s.Environment)
}

// Clone returns a copy so callers can hand sessions out without sharing
// mutable state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
