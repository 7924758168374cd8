package mssn

import (
	"crypto/sha1"

	"github.com/lalawue/mssn/internal/rng"
	"github.com/rs/zerolog"
)

// Session is the root handle of this engine. It is not safe for
// concurrent use by multiple goroutines; a single goroutine must drive
// each Session's Process/Build/Reclaim calls.
type Session struct {
	role   Role
	regime Regime
	state  State

	Method  string
	Path    string
	Status  int
	Upgrade bool
	Headers []Header
	Frames  []*Frame

	err error

	rng    rng.Source
	logger *zerolog.Logger

	hp httpParser
	ws wsDecoder

	closed bool
}

// Create allocates a new Session for the given role. The Session starts
// in RegimeInit and transitions to RegimeHTTP on the first call to
// Process.
func Create(role Role, opts ...Option) *Session {
	s := &Session{
		role:   role,
		regime: RegimeInit,
		state:  StateInit,
		rng:    rng.NewFastRand(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hp.init(s)
	return s
}

// Close releases the Session. Process and Build return ErrClosed after
// Close; Close itself is idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.Frames = nil
	s.Headers = nil
}

// LastError returns the error that most recently put the Session into
// StateError, or nil.
func (s *Session) LastError() error {
	return s.err
}

// Reclaim releases resources after the caller is done with either a
// Session's parsed Frames/Headers, or a Chunk list returned by Build.
//
// Pass a non-nil built chunk list to release Build output; the Session
// itself is untouched. Pass nil to release the Session's own parsed
// state: while in RegimeWS, Method/Path/Headers are preserved (the
// upgrade handshake metadata stays valid for the life of the WebSocket
// connection) and only Frames and the last error are cleared; in any
// other regime, Method/Path/Status/Headers/Frames/error are all reset
// so the Session is ready to parse the next HTTP message.
func (s *Session) Reclaim(built *Chunk) {
	if built != nil {
		return
	}

	s.Frames = nil
	s.err = nil

	if s.regime == RegimeWS {
		return
	}

	s.Method = ""
	s.Path = ""
	s.Status = 0
	s.Headers = nil
	s.state = StateInit
}

func (s *Session) fail(err error) (int, error) {
	s.state = StateError
	s.err = err
	s.debug("fatal: " + err.Error())
	return 0, err
}

func (s *Session) debug(msg string) {
	if s.logger != nil {
		s.logger.Debug().
			Str("regime", []string{"init", "http", "ws"}[s.regime]).
			Msg(msg)
	}
}

// SHA1 computes the digest RFC 6455's handshake accept-key derivation
// requires. The primitive itself is an opaque collaborator: this engine
// treats it as RFC-mandated, non-negotiable infrastructure, not a
// protocol detail of its own.
func SHA1(data []byte) [20]byte {
	return sha1.Sum(data)
}
