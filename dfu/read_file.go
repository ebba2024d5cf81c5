package dfu

import "context"

// ReadFile reads an entire file off the watch's filesystem, streaming it in
// MaxPayload-sized chunks and reassembling it in memory. The device echoes
// the same total_len in every chunk; the read is complete once the
// accumulated payload reaches that length.
func (s *Session) ReadFile(ctx context.Context, path string) ([]byte, error) {
	const op = "read_file"
	if err := validatePathLen(path); err != nil {
		return nil, err
	}

	if err := s.send(ctx, op, encodeReadFileStart(path, MaxPayload)); err != nil {
		return nil, err
	}

	var offset uint32
	var contents []byte
	for {
		_, body, payload, err := s.recvPayload(ctx, op, cmdFileChunk, fileChunkBodySize)
		if err != nil {
			return nil, err
		}
		chunk, err := decodeFileChunkBody(body)
		if err != nil {
			return nil, err
		}

		if chunk.offset != offset {
			return nil, &ProtocolError{
				Op:     op,
				Status: statusOK,
				Detail: "chunk offset does not match the requested offset",
			}
		}
		if int(chunk.currentLen) != len(payload) {
			return nil, &ProtocolError{
				Op:     op,
				Status: statusOK,
				Detail: "current_len does not match payload length",
			}
		}

		contents = append(contents, payload...)
		if len(contents) == int(chunk.totalLen) {
			return contents, nil
		}

		offset += chunk.currentLen
		if err := s.send(ctx, op, encodeReadFileContinue(offset, MaxPayload)); err != nil {
			return nil, err
		}
	}
}
