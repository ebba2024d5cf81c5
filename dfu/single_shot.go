package dfu

import "context"

// DeleteFile removes a file from the watch's filesystem. A single request
// frame is sent and a single receipt is awaited; any non-success status is
// a protocol error.
func (s *Session) DeleteFile(ctx context.Context, path string) error {
	const op = "delete_file"
	if err := validatePathLen(path); err != nil {
		return err
	}
	if err := s.send(ctx, op, encodeDeleteFile(path)); err != nil {
		return err
	}
	_, _, err := s.recvFixed(ctx, op, cmdRmReceipt, rmReceiptBodySize)
	return err
}

// CreateDir creates a directory on the watch's filesystem at the given
// path and timestamp.
func (s *Session) CreateDir(ctx context.Context, path string, ts Timestamp) error {
	const op = "create_dir"
	if err := validatePathLen(path); err != nil {
		return err
	}
	if err := s.send(ctx, op, encodeCreateDir(path, uint64(ts))); err != nil {
		return err
	}
	_, _, err := s.recvFixed(ctx, op, cmdMkdirReceipt, mkdirReceiptBodySize)
	return err
}

// MoveFile renames or moves a file or directory from one path to another.
func (s *Session) MoveFile(ctx context.Context, from, to string) error {
	const op = "move_file"
	if err := validatePathLen(from); err != nil {
		return err
	}
	if err := validatePathLen(to); err != nil {
		return err
	}
	if err := s.send(ctx, op, encodeMoveFile(from, to)); err != nil {
		return err
	}
	_, _, err := s.recvFixed(ctx, op, cmdMvReceipt, mvReceiptBodySize)
	return err
}

// validatePathLen rejects paths that would overflow the wire format's
// 16-bit path_len field, and paths containing a NUL byte (which move_file
// uses as a field separator on the wire).
func validatePathLen(path string) error {
	if len(path) > 0xFFFF {
		return ErrArgument
	}
	for i := 0; i < len(path); i++ {
		if path[i] == 0 {
			return ErrArgument
		}
	}
	return nil
}
