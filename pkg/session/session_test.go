package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/hacauth/pkg/session"
)

func TestSession_Complete(t *testing.T) {
	t.Run("fully populated", func(t *testing.T) {
		sess := session.New("https://localhost:9002", "admin", "local")
		sess.SessionID = "S1"
		sess.CSRFToken = "T1"
		assert.True(t, sess.Complete())
	})

	t.Run("missing session id", func(t *testing.T) {
		sess := session.New("https://localhost:9002", "admin", "local")
		sess.CSRFToken = "T1"
		assert.False(t, sess.Complete())
	})

	t.Run("missing csrf token", func(t *testing.T) {
		sess := session.New("https://localhost:9002", "admin", "local")
		sess.SessionID = "S1"
		assert.False(t, sess.Complete())
	})

	t.Run("nil session", func(t *testing.T) {
		var sess *session.Session
		assert.False(t, sess.Complete())
	})
}

func TestSession_Touch(t *testing.T) {
	sess := session.New("https://localhost:9002", "admin", "local")
	before := sess.LastUsedAt

	sess.Touch()
	assert.GreaterOrEqual(t, sess.LastUsedAt, before)
	assert.Equal(t, sess.CreatedAt, before, "touch must not move creation time")
}

func TestSession_Clone(t *testing.T) {
	sess := session.New("https://localhost:9002", "admin", "local")
	sess.SessionID = "S1"
	sess.CSRFToken = "T1"

	cp := sess.Clone()
	cp.CSRFToken = "rotated"

	assert.Equal(t, "T1", sess.CSRFToken)
	assert.Equal(t, "S1", cp.SessionID)

	var nilSess *session.Session
	assert.Nil(t, nilSess.Clone())
}

func TestSession_Key(t *testing.T) {
	sess := session.New("https://localhost:9002", "admin", "local")
	assert.Equal(t, session.NewKey("https://localhost:9002", "admin", "local"), sess.Key())
}
