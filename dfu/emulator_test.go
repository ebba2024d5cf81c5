package dfu

import (
	"context"
	"encoding/binary"
)

// emulator is a scripted, in-memory stand-in for an InfiniTime watch. It
// implements Transport directly (no real BLE), in the spirit of
// comm/comm_test.go's loopback TCP server: a fake peer good enough to
// exercise the full state machine of each operation.
type emulator struct {
	files         map[string]*emulatedFile
	notifications chan []byte
	writes        [][]byte
	version       []byte
	lastReadPath  string
	lastWritePath string
}

type emulatedFile struct {
	data      []byte
	isDir     bool
	flags     uint32
	timestamp uint64
}

func newEmulator() *emulator {
	return &emulator{
		files:         map[string]*emulatedFile{},
		notifications: make(chan []byte, 64),
		version:       []byte{1, 0, 0, 0},
	}
}

func (e *emulator) ReadVersion(ctx context.Context) ([]byte, error) {
	return e.version, nil
}

func (e *emulator) WriteTransfer(ctx context.Context, b []byte) error {
	frame := append([]byte(nil), b...)
	e.writes = append(e.writes, frame)
	e.handle(frame)
	return nil
}

func (e *emulator) NextNotification(ctx context.Context) ([]byte, error) {
	select {
	case n := <-e.notifications:
		return n, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *emulator) reply(frame []byte) { e.notifications <- frame }

func (e *emulator) handle(b []byte) {
	switch b[0] {
	case opListDir:
		e.handleListDir(b)
	case opReadFileStart:
		e.handleReadStart(b)
	case opReadFileContinue:
		e.handleReadContinue(b)
	case opWriteFileStart:
		e.handleWriteStart(b)
	case opWriteFileChunk:
		e.handleWriteChunk(b)
	case opDeleteFile:
		e.handleDeleteFile(b)
	case opCreateDir:
		e.handleCreateDir(b)
	case opMoveFile:
		e.handleMoveFile(b)
	}
}

func (e *emulator) handleListDir(b []byte) {
	pathLen := binary.LittleEndian.Uint16(b[2:4])
	path := string(b[4 : 4+pathLen])

	var names []string
	for name := range e.files {
		names = append(names, name)
		_ = path // directory filtering is not modeled; every test uses a flat namespace
	}

	if len(names) == 0 {
		e.reply(buildDirEntryFrame(0, 0, 0, 0, 0, ""))
		return
	}
	for i, name := range names {
		f := e.files[name]
		e.reply(buildDirEntryFrame(uint32(i), uint32(len(names)-1), f.flags, f.timestamp, uint32(len(f.data)), name))
	}
}

func (e *emulator) handleReadStart(b []byte) {
	pathLen := binary.LittleEndian.Uint16(b[2:4])
	chunkSize := binary.LittleEndian.Uint32(b[8:12])
	path := string(b[12 : 12+pathLen])
	e.sendReadChunk(path, 0, chunkSize)
}

func (e *emulator) handleReadContinue(b []byte) {
	offset := binary.LittleEndian.Uint32(b[4:8])
	chunkSize := binary.LittleEndian.Uint32(b[8:12])
	e.sendReadChunk(e.lastReadPath, offset, chunkSize)
}

func (e *emulator) sendReadChunk(path string, offset, chunkSize uint32) {
	e.lastReadPath = path
	f := e.files[path]
	data := f.data
	end := offset + chunkSize
	if end > uint32(len(data)) {
		end = uint32(len(data))
	}
	chunk := data[offset:end]
	e.reply(buildFileChunkFrame(offset, uint32(len(data)), chunk))
}

func (e *emulator) handleWriteStart(b []byte) {
	pathLen := binary.LittleEndian.Uint16(b[2:4])
	timestamp := binary.LittleEndian.Uint64(b[8:16])
	totalLen := binary.LittleEndian.Uint32(b[16:20])
	path := string(b[20 : 20+pathLen])
	e.files[path] = &emulatedFile{data: make([]byte, 0, totalLen), timestamp: timestamp}
	e.lastWritePath = path
	e.reply(buildWriteReceiptFrame(0, timestamp, MaxPayload))
}

func (e *emulator) handleWriteChunk(b []byte) {
	offset := binary.LittleEndian.Uint32(b[4:8])
	currentLen := binary.LittleEndian.Uint32(b[8:12])
	data := b[12 : 12+currentLen]
	f := e.files[e.lastWritePath]
	if int(offset) > len(f.data) {
		padded := make([]byte, offset)
		copy(padded, f.data)
		f.data = padded
	}
	f.data = append(f.data[:offset], data...)
	e.reply(buildWriteReceiptFrame(offset+currentLen, f.timestamp, MaxPayload))
}

func (e *emulator) handleDeleteFile(b []byte) {
	pathLen := binary.LittleEndian.Uint16(b[2:4])
	path := string(b[4 : 4+pathLen])
	delete(e.files, path)
	e.reply([]byte{cmdRmReceipt, 1})
}

func (e *emulator) handleCreateDir(b []byte) {
	pathLen := binary.LittleEndian.Uint16(b[2:4])
	timestamp := binary.LittleEndian.Uint64(b[8:16])
	path := string(b[16 : 16+pathLen])
	e.files[path] = &emulatedFile{isDir: true, flags: 2, timestamp: timestamp}
	frame := []byte{cmdMkdirReceipt, 1, 0, 0, 0, 0, 0, 0}
	frame = appendUint64(frame, timestamp)
	e.reply(frame)
}

func (e *emulator) handleMoveFile(b []byte) {
	fromLen := binary.LittleEndian.Uint16(b[2:4])
	toLen := binary.LittleEndian.Uint16(b[4:6])
	from := string(b[6 : 6+fromLen])
	to := string(b[6+fromLen+1 : 6+fromLen+1+toLen])
	if f, ok := e.files[from]; ok {
		e.files[to] = f
		delete(e.files, from)
	}
	e.reply([]byte{cmdMvReceipt, 1})
}

func buildDirEntryFrame(entryNumber, entryCount, flags uint32, timestamp uint64, size uint32, path string) []byte {
	frame := []byte{cmdDirEntry, 1}
	frame = appendUint16(frame, uint16(len(path)))
	frame = appendUint32(frame, entryNumber)
	frame = appendUint32(frame, entryCount)
	frame = appendUint32(frame, flags)
	frame = appendUint64(frame, timestamp)
	frame = appendUint32(frame, size)
	frame = append(frame, path...)
	return frame
}

func buildFileChunkFrame(offset, totalLen uint32, payload []byte) []byte {
	frame := []byte{cmdFileChunk, 1}
	frame = appendUint16(frame, 0)
	frame = appendUint32(frame, offset)
	frame = appendUint32(frame, totalLen)
	frame = appendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	return frame
}

func buildWriteReceiptFrame(offset uint32, timestamp uint64, remaining uint32) []byte {
	frame := []byte{cmdWriteReceipt, 1}
	frame = appendUint16(frame, 0)
	frame = appendUint32(frame, offset)
	frame = appendUint64(frame, timestamp)
	frame = appendUint32(frame, remaining)
	return frame
}
