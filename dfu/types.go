package dfu

import "time"

// DirEntry is the host-side representation of one entry returned by
// ListDir.
type DirEntry struct {
	// Flags holds filesystem attribute bits (directory/file, permissions).
	// They are opaque to the client.
	Flags uint32

	// Timestamp is nanoseconds since the Unix epoch, as reported by the
	// device.
	Timestamp uint64

	// Size is the file size in bytes.
	Size uint32

	// Path is the entry name as returned by the device.
	Path string
}

// Timestamp is a point in time expressed as the watch's wire format:
// nanoseconds since the Unix epoch, truncated to 64 bits.
type Timestamp uint64

// Now returns the current wall-clock time as a Timestamp.
func Now() Timestamp {
	return TimestampFromTime(time.Now())
}

// TimestampFromTime converts a wall-clock instant to a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}
