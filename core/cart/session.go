package cart

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// SessionSlot stores the cart snapshot in the visitor's server-held session,
// which is what makes the cart survive page reloads from the same browser.
type SessionSlot struct {
	sessions *scs.SessionManager
}

func NewSessionSlot(sessions *scs.SessionManager) *SessionSlot {
	return &SessionSlot{sessions: sessions}
}

// Load reads the snapshot from the session. scs panics when the request never
// passed through its LoadAndSave middleware; that is reported as a failed
// read instead.
func (s *SessionSlot) Load(ctx context.Context) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data, err = nil, fmt.Errorf("session not loaded: %v", rec)
		}
	}()

	return s.sessions.GetBytes(ctx, SlotKey), nil
}

// Save writes the snapshot to the session; the session middleware flushes it
// to the session store when the response is written.
func (s *SessionSlot) Save(ctx context.Context, data []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("session not loaded: %v", rec)
		}
	}()

	s.sessions.Put(ctx, SlotKey, data)
	return nil
}
