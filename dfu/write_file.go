package dfu

import (
	"context"
	"math"
)

// WriteFile writes data to path on the watch's filesystem, streaming it in
// MaxPayload-sized chunks. The device's write receipts carry a remaining
// field describing its own buffering capacity, but the client never sends
// more than MaxPayload bytes per chunk regardless. The offset echoed in a
// receipt is not validated against the client's own offset: it is known to
// differ from it under normal operation (see the design notes on
// write-receipt offsets).
func (s *Session) WriteFile(ctx context.Context, path string, data []byte, ts Timestamp) error {
	const op = "write_file"
	if err := validatePathLen(path); err != nil {
		return err
	}
	if len(data) > math.MaxUint32 {
		return ErrArgument
	}

	if err := s.send(ctx, op, encodeWriteFileStart(path, uint64(ts), uint32(len(data)))); err != nil {
		return err
	}

	var offset uint32
	for {
		if _, _, err := s.recvFixed(ctx, op, cmdWriteReceipt, writeReceiptBodySize); err != nil {
			return err
		}

		end := offset + MaxPayload
		if end > uint32(len(data)) {
			end = uint32(len(data))
		}
		chunk := data[offset:end]
		if len(chunk) == 0 {
			return nil
		}

		if err := s.send(ctx, op, encodeWriteFileChunk(offset, chunk)); err != nil {
			return err
		}
		offset += uint32(len(chunk))
	}
}
