package dfu

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Session is bound to exactly one connected peripheral via its Transport.
// At any moment a Session has at most one outstanding command; callers
// must await completion of one operation before issuing the next. A
// Session carries no internal locking to enforce that beyond documenting
// it, matching the protocol's single-in-flight invariant.
type Session struct {
	transport Transport
	log       *logrus.Entry
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithLogger attaches a logger to a Session. If omitted, a Session logs to
// logrus's standard logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Session) {
		s.log = logrus.NewEntry(log)
	}
}

// NewSession wraps a Transport in a Session. The Transport is assumed to
// already be connected, discovered, and subscribed; NewSession sends no
// traffic of its own.
func NewSession(t Transport, opts ...Option) *Session {
	s := &Session{transport: t, log: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) send(ctx context.Context, op string, frame []byte) error {
	s.log.WithFields(logrus.Fields{"op": op, "bytes": len(frame)}).Debug("dfu: sending frame")
	return s.transport.WriteTransfer(ctx, frame)
}

// recvFixed waits for the next notification and interprets its first
// headerSize+bodySize bytes as a fixed-size response, asserting command
// and status. Used by write_file, delete_file, create_dir, move_file.
func (s *Session) recvFixed(ctx context.Context, op string, wantCmd byte, bodySize int) (header, []byte, error) {
	notif, err := s.transport.NextNotification(ctx)
	if err != nil {
		return header{}, nil, err
	}
	return s.parseFixed(op, wantCmd, bodySize, notif)
}

func (s *Session) parseFixed(op string, wantCmd byte, bodySize int, notif []byte) (header, []byte, error) {
	if len(notif) < headerSize+bodySize {
		return header{}, nil, errShortFrame(op, fmt.Sprintf("frame of %d bytes too short for header+body of %d", len(notif), headerSize+bodySize))
	}
	hdr, err := decodeHeader(notif)
	if err != nil {
		return header{}, nil, err
	}
	if err := s.checkHeader(op, wantCmd, hdr); err != nil {
		return header{}, nil, err
	}
	return hdr, notif[headerSize : headerSize+bodySize], nil
}

// recvPayload is like recvFixed but additionally splits off and returns
// the variable-length payload bytes following the fixed body. Used by
// list_dir and read_file.
func (s *Session) recvPayload(ctx context.Context, op string, wantCmd byte, bodySize int) (header, []byte, []byte, error) {
	notif, err := s.transport.NextNotification(ctx)
	if err != nil {
		return header{}, nil, nil, err
	}
	hdr, body, err := s.parseFixed(op, wantCmd, bodySize, notif)
	if err != nil {
		return header{}, nil, nil, err
	}
	return hdr, body, notif[headerSize+bodySize:], nil
}

func (s *Session) checkHeader(op string, wantCmd byte, hdr header) error {
	if hdr.command != wantCmd {
		return errBadCommand(op, wantCmd, hdr.command)
	}
	if hdr.status != statusOK {
		return errBadStatus(op, hdr.command, hdr.status)
	}
	return nil
}

// Version reads the version characteristic and interprets it as a
// little-endian unsigned 32-bit number. The value is right-padded with
// zero bytes, or truncated, to exactly 4 bytes first. No transfer-channel
// traffic is generated.
func (s *Session) Version(ctx context.Context) (uint32, error) {
	raw, err := s.transport.ReadVersion(ctx)
	if err != nil {
		return 0, err
	}
	var buf [4]byte
	copy(buf[:], raw)
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}
