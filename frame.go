package mssn

import "github.com/lalawue/mssn/internal/wire"

// Frame is a fully reassembled HTTP body chunk or a fully reassembled
// WebSocket message (control or data), surfaced to the caller after a
// Process call completes it. Its payload is a Chunk list the caller may
// read but must return via Reclaim before the Session is used again.
type Frame struct {
	Type FrameType
	list chunkList
}

// Chunks returns the head of this frame's payload chunk list. It may be
// nil for a zero-length message (e.g. an empty ping).
func (f *Frame) Chunks() *Chunk {
	return f.list.head
}

// Len returns the total payload length across all chunks.
func (f *Frame) Len() int {
	return f.list.totalLen()
}

func frameTypeForOpcode(opcode byte) (FrameType, bool) {
	switch opcode {
	case wire.OpPing:
		return FrameWSPing, true
	case wire.OpPong:
		return FrameWSPong, true
	case wire.OpClose:
		return FrameWSClose, true
	case wire.OpText:
		return FrameWSText, true
	case wire.OpBinary:
		return FrameWSBinary, true
	default:
		return 0, false
	}
}

func opcodeForFrameType(t FrameType) (byte, bool) {
	switch t {
	case FrameWSPing:
		return wire.OpPing, true
	case FrameWSPong:
		return wire.OpPong, true
	case FrameWSClose:
		return wire.OpClose, true
	case FrameWSText:
		return wire.OpText, true
	case FrameWSBinary:
		return wire.OpBinary, true
	default:
		return 0, false
	}
}
