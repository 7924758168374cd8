package mssn

import (
	"encoding/binary"

	"github.com/lalawue/mssn/internal/wire"
)

// maxWSPayloadLen is the RFC 6455 64-bit length field ceiling: 2^63 - 1.
// The reference implementation's build() instead rejects at 2^63, one
// bit short of the wire format's actual range; this is corrected here
// (see DESIGN.md, Open Question 4).
const maxWSPayloadLen = 1<<63 - 1

// Build encodes payload as one or more WebSocket frames of at most
// maxFrameSize bytes each (header included), fragmenting data frames
// across as many frames as needed. Control frames (ping, pong, close)
// are never fragmented and must fit within 125 bytes of payload; a
// control frame is always emitted as a single frame, even when it is
// larger than maxFrameSize.
//
// rsv carries any RSV1-3 bits the caller wants set on every fragment;
// this engine negotiates no extensions itself but will happily build a
// frame on behalf of a caller that does.
//
// The returned Chunk list is owned by the caller until passed to
// Reclaim.
func (s *Session) Build(ftype FrameType, rsv byte, maxFrameSize int, payload []byte) (*Chunk, error) {
	if s.closed {
		return nil, ErrClosed
	}

	opcode, ok := opcodeForFrameType(ftype)
	if !ok {
		return nil, ErrInvalidFrameType
	}
	isControl := wire.IsControl(opcode)

	if !isControl && len(payload) == 0 {
		return nil, ErrInvalidParams
	}
	if isControl && len(payload) > wire.MaxControlPayload {
		return nil, ErrControlFrameTooLarge
	}
	if uint64(len(payload)) > maxWSPayloadLen {
		return nil, ErrInvalidPayloadLength
	}

	if maxFrameSize <= 0 {
		return nil, ErrInvalidParams
	}

	masking := s.role == RoleClient

	// hlen is a header-size budget picked once, up front, from the
	// smaller of the payload size and the room a frame leaves for data;
	// it only sizes the fragments. Each fragment's header is then encoded
	// by buildFrameBytes from that fragment's own length, so a shorter
	// fragment (typically the last) may carry a smaller header, never a
	// larger one.
	hlen := 2
	if masking {
		hlen += 4
	}
	switch {
	case min(len(payload), maxFrameSize-hlen) <= wire.MaxControlPayload:
		// 7-bit length, hlen unchanged.
	case min(len(payload), maxFrameSize-hlen-2) <= 0xFFFF:
		hlen += 2
	case min(len(payload), maxFrameSize-hlen-8) <= maxWSPayloadLen:
		hlen += 8
	default:
		return nil, ErrInvalidPayloadLength
	}
	if maxFrameSize <= hlen {
		return nil, ErrInvalidParams
	}

	var list chunkList
	remaining := payload
	first := true

	for first || len(remaining) > 0 {
		avail := maxFrameSize - hlen
		n := len(remaining)
		if n > avail && !isControl {
			n = avail
		}
		if isControl && n > wire.MaxControlPayload {
			n = wire.MaxControlPayload
		}
		chunkPayload := remaining[:n]
		remaining = remaining[n:]

		fin := len(remaining) == 0
		frameOpcode := wire.OpContinuation
		if first || isControl {
			frameOpcode = opcode
		}
		if isControl {
			fin = true
		}

		frameBuf := s.buildFrameBytes(frameOpcode, fin, rsv, masking, chunkPayload)
		list.writeFrame(frameBuf)
		first = false
	}

	return list.head, nil
}

func (s *Session) buildFrameBytes(opcode byte, fin bool, rsv byte, masking bool, payload []byte) []byte {
	n := len(payload)

	var lenFieldBytes int
	var lenMarker byte
	switch {
	case n < int(wire.PayloadLen16Marker):
		lenMarker = byte(n)
	case n <= 0xFFFF:
		lenMarker = wire.PayloadLen16Marker
		lenFieldBytes = 2
	default:
		lenMarker = wire.PayloadLen64Marker
		lenFieldBytes = 8
	}

	hlen := 2 + lenFieldBytes
	if masking {
		hlen += 4
	}

	buf := make([]byte, hlen+n)

	b0 := opcode & 0x0f
	if fin {
		b0 |= 0x80
	}
	b0 |= rsv & 0x70
	buf[0] = b0

	b1 := lenMarker
	if masking {
		b1 |= 0x80
	}
	buf[1] = b1

	pos := 2
	switch lenFieldBytes {
	case 2:
		binary.BigEndian.PutUint16(buf[pos:], uint16(n))
		pos += 2
	case 8:
		binary.BigEndian.PutUint64(buf[pos:], uint64(n))
		pos += 8
	}

	if masking {
		var key [4]byte
		genMask(s.rng, &key)
		copy(buf[pos:pos+4], key[:])
		pos += 4
		copy(buf[pos:], payload)
		unmask(buf[pos:pos+n], key, 0)
	} else {
		copy(buf[pos:], payload)
	}

	return buf
}
