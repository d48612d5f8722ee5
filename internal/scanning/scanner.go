package scanning

import (
	"fmt"
	"sync"
)

// Scanner defines the interface for a QR capture source. Start wires the
// caller's callbacks to the source; decoded text is delivered untouched.
// onError receives continuous-scan chatter ("no symbol in frame") and must
// not be treated as failure by callers.
type Scanner interface {
	// Start begins a capture session and returns a handle controlling it.
	Start(onDecoded func(text string), onError func(message string)) (Handle, error)
	// Close releases the capture source and any running session.
	Close() error
}

// Handle controls one running capture session.
type Handle interface {
	// Stop ends the session. Idempotent, safe to call when not running.
	Stop()
}

// Relay implements Scanner for capture sources that push decoded text into
// the process, such as the browser front-end posting html5-qrcode results or
// the image-upload endpoint. At most one session is active at a time;
// starting a new session stops the previous one.
type Relay struct {
	mu     sync.Mutex
	active *relaySession
}

// NewRelay creates a new Relay instance.
func NewRelay() *Relay {
	return &Relay{}
}

// Start begins a capture session fed by Emit and EmitError.
func (r *Relay) Start(onDecoded func(text string), onError func(message string)) (Handle, error) {
	if onDecoded == nil {
		return nil, fmt.Errorf("onDecoded callback is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.stopped = true
	}
	session := &relaySession{
		relay:     r,
		onDecoded: onDecoded,
		onError:   onError,
	}
	r.active = session
	return session, nil
}

// Emit delivers decoded QR text to the active session. It reports whether a
// session was running to receive it.
func (r *Relay) Emit(text string) bool {
	r.mu.Lock()
	session := r.active
	r.mu.Unlock()

	if session == nil {
		return false
	}
	// The callback runs outside the relay lock so it may stop the session.
	session.onDecoded(text)
	return true
}

// EmitError forwards a capture failure message to the active session.
func (r *Relay) EmitError(message string) bool {
	r.mu.Lock()
	session := r.active
	r.mu.Unlock()

	if session == nil {
		return false
	}
	if session.onError != nil {
		session.onError(message)
	}
	return true
}

// Running reports whether a capture session is active.
func (r *Relay) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// Close stops any active session.
func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.stopped = true
		r.active = nil
	}
	return nil
}

type relaySession struct {
	relay     *Relay
	onDecoded func(string)
	onError   func(string)
	stopped   bool
}

func (s *relaySession) Stop() {
	s.relay.mu.Lock()
	defer s.relay.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if s.relay.active == s {
		s.relay.active = nil
	}
}
