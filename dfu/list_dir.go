package dfu

import (
	"context"
	"strings"
)

// ListDir enumerates the entries of a directory on the watch. Entries
// arrive from the device one frame per entry, in strictly increasing
// entry_number order starting at 0, and the call returns once the final
// frame (entry_number == entry_count) has been consumed. entry_count is
// therefore the index of the last entry, not a total count: a directory
// with a single entry reports entry_count == 0, not 1.
func (s *Session) ListDir(ctx context.Context, path string) ([]DirEntry, error) {
	const op = "list_dir"
	if err := validatePathLen(path); err != nil {
		return nil, err
	}

	if err := s.send(ctx, op, encodeListDir(path)); err != nil {
		return nil, err
	}

	var entries []DirEntry
	for {
		_, body, payload, err := s.recvPayload(ctx, op, cmdDirEntry, rawDirEntryBodySize)
		if err != nil {
			return nil, err
		}
		entry, err := decodeRawDirEntryBody(body)
		if err != nil {
			return nil, err
		}

		if int(entry.entryNumber) != len(entries) {
			return nil, &ProtocolError{
				Op:     op,
				Status: statusOK,
				Detail: "entry_number out of order",
			}
		}
		if int(entry.pathLen) != len(payload) {
			return nil, &ProtocolError{
				Op:     op,
				Status: statusOK,
				Detail: "path_len does not match payload length",
			}
		}

		// The device signals an empty directory with a single sentinel
		// frame: entry_number == entry_count == 0 and no path bytes.
		if entry.entryNumber == 0 && entry.entryCount == 0 && entry.pathLen == 0 {
			break
		}

		entries = append(entries, DirEntry{
			Flags:     entry.flags,
			Timestamp: entry.timestamp,
			Size:      entry.size,
			Path:      strings.ToValidUTF8(string(payload), "�"),
		})

		if entry.entryNumber == entry.entryCount {
			break
		}
	}
	return entries, nil
}
