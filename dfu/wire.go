package dfu

import "encoding/binary"

// Request opcodes, client -> watch.
const (
	opReadFileStart    byte = 0x10
	opReadFileContinue byte = 0x12
	opWriteFileStart   byte = 0x20
	opWriteFileChunk   byte = 0x22
	opDeleteFile       byte = 0x30
	opCreateDir        byte = 0x40
	opListDir          byte = 0x50
	opMoveFile         byte = 0x60
)

// Response command bytes, watch -> client. Each equals its request opcode
// plus one.
const (
	cmdFileChunk    byte = 0x11
	cmdWriteReceipt byte = 0x21
	cmdRmReceipt    byte = 0x31
	cmdMkdirReceipt byte = 0x41
	cmdDirEntry     byte = 0x51
	cmdMvReceipt    byte = 0x61
)

// The second byte of every request frame is a status byte reserved for
// future use. It is 0x00 on an initial frame and 0x01 on a continuation
// frame (read-file continue, write-file chunk).
const (
	frameStart    byte = 0x00
	frameContinue byte = 0x01
)

// statusOK is the only response status byte that indicates success.
const statusOK int8 = 1

const headerSize = 2 // command, status

// header is the two bytes that begin every response frame.
type header struct {
	command byte
	status  int8
}

func decodeHeader(b []byte) (header, error) {
	if len(b) < headerSize {
		return header{}, &ProtocolError{Detail: "frame shorter than a response header"}
	}
	return header{command: b[0], status: int8(b[1])}, nil
}

func encodeReadFileStart(path string, chunkSize uint32) []byte {
	buf := make([]byte, 0, 2+2+4+4+len(path))
	buf = append(buf, opReadFileStart, frameStart)
	buf = appendUint16(buf, uint16(len(path)))
	buf = appendUint32(buf, 0) // offset
	buf = appendUint32(buf, chunkSize)
	buf = append(buf, path...)
	return buf
}

func encodeReadFileContinue(offset, chunkSize uint32) []byte {
	buf := make([]byte, 0, 2+2+4+4)
	buf = append(buf, opReadFileContinue, frameContinue)
	buf = appendUint16(buf, 0)
	buf = appendUint32(buf, offset)
	buf = appendUint32(buf, chunkSize)
	return buf
}

func encodeWriteFileStart(path string, timestamp uint64, totalLen uint32) []byte {
	buf := make([]byte, 0, 2+2+4+8+4+len(path))
	buf = append(buf, opWriteFileStart, frameStart)
	buf = appendUint16(buf, uint16(len(path)))
	buf = appendUint32(buf, 0) // offset
	buf = appendUint64(buf, timestamp)
	buf = appendUint32(buf, totalLen)
	buf = append(buf, path...)
	return buf
}

func encodeWriteFileChunk(offset uint32, data []byte) []byte {
	buf := make([]byte, 0, 2+2+4+4+len(data))
	buf = append(buf, opWriteFileChunk, frameContinue)
	buf = appendUint16(buf, 0)
	buf = appendUint32(buf, offset)
	buf = appendUint32(buf, uint32(len(data)))
	buf = append(buf, data...)
	return buf
}

func encodeDeleteFile(path string) []byte {
	buf := make([]byte, 0, 2+2+len(path))
	buf = append(buf, opDeleteFile, frameStart)
	buf = appendUint16(buf, uint16(len(path)))
	buf = append(buf, path...)
	return buf
}

func encodeCreateDir(path string, timestamp uint64) []byte {
	buf := make([]byte, 0, 2+2+4+8+len(path))
	buf = append(buf, opCreateDir, frameStart)
	buf = appendUint16(buf, uint16(len(path)))
	buf = append(buf, 0, 0, 0, 0)
	buf = appendUint64(buf, timestamp)
	buf = append(buf, path...)
	return buf
}

func encodeListDir(path string) []byte {
	buf := make([]byte, 0, 2+2+len(path))
	buf = append(buf, opListDir, frameStart)
	buf = appendUint16(buf, uint16(len(path)))
	buf = append(buf, path...)
	return buf
}

func encodeMoveFile(from, to string) []byte {
	buf := make([]byte, 0, 2+2+2+len(from)+1+len(to))
	buf = append(buf, opMoveFile, frameStart)
	buf = appendUint16(buf, uint16(len(from)))
	buf = appendUint16(buf, uint16(len(to)))
	buf = append(buf, from...)
	buf = append(buf, 0)
	buf = append(buf, to...)
	return buf
}

// fileChunkBody is the body of a 0x11 response: read-file chunk.
type fileChunkBody struct {
	offset     uint32
	totalLen   uint32
	currentLen uint32
}

const fileChunkBodySize = 2 + 4 + 4 + 4 // padding, offset, total_len, current_len

func decodeFileChunkBody(b []byte) (fileChunkBody, error) {
	if len(b) < fileChunkBodySize {
		return fileChunkBody{}, &ProtocolError{Detail: "file chunk body truncated"}
	}
	return fileChunkBody{
		offset:     binary.LittleEndian.Uint32(b[2:6]),
		totalLen:   binary.LittleEndian.Uint32(b[6:10]),
		currentLen: binary.LittleEndian.Uint32(b[10:14]),
	}, nil
}

// writeReceiptBody is the body of a 0x21 response: write-file receipt.
type writeReceiptBody struct {
	offset    uint32
	timestamp uint64
	remaining uint32
}

const writeReceiptBodySize = 2 + 4 + 8 + 4 // padding, offset, timestamp, remaining

func decodeWriteReceiptBody(b []byte) (writeReceiptBody, error) {
	if len(b) < writeReceiptBodySize {
		return writeReceiptBody{}, &ProtocolError{Detail: "write receipt body truncated"}
	}
	return writeReceiptBody{
		offset:    binary.LittleEndian.Uint32(b[2:6]),
		timestamp: binary.LittleEndian.Uint64(b[6:14]),
		remaining: binary.LittleEndian.Uint32(b[14:18]),
	}, nil
}

// mkdirReceiptBody is the body of a 0x41 response: create-dir receipt.
type mkdirReceiptBody struct {
	timestamp uint64
}

const mkdirReceiptBodySize = 6 + 8 // padding, timestamp

func decodeMkdirReceiptBody(b []byte) (mkdirReceiptBody, error) {
	if len(b) < mkdirReceiptBodySize {
		return mkdirReceiptBody{}, &ProtocolError{Detail: "create-dir receipt body truncated"}
	}
	return mkdirReceiptBody{
		timestamp: binary.LittleEndian.Uint64(b[6:14]),
	}, nil
}

// rawDirEntryBody is the body of a 0x51 response: one list-dir entry.
type rawDirEntryBody struct {
	pathLen     uint16
	entryNumber uint32
	entryCount  uint32
	flags       uint32
	timestamp   uint64
	size        uint32
}

const rawDirEntryBodySize = 2 + 4 + 4 + 4 + 8 + 4 // path_len, entry_number, entry_count, flags, timestamp, size

func decodeRawDirEntryBody(b []byte) (rawDirEntryBody, error) {
	if len(b) < rawDirEntryBodySize {
		return rawDirEntryBody{}, &ProtocolError{Detail: "dir entry body truncated"}
	}
	return rawDirEntryBody{
		pathLen:     binary.LittleEndian.Uint16(b[0:2]),
		entryNumber: binary.LittleEndian.Uint32(b[2:6]),
		entryCount:  binary.LittleEndian.Uint32(b[6:10]),
		flags:       binary.LittleEndian.Uint32(b[10:14]),
		timestamp:   binary.LittleEndian.Uint64(b[14:22]),
		size:        binary.LittleEndian.Uint32(b[22:26]),
	}, nil
}

// rmReceiptBodySize, mvReceiptBodySize: delete-file and move-file receipts
// carry no body at all.
const (
	rmReceiptBodySize = 0
	mvReceiptBodySize = 0
)

func appendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}
