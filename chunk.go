package mssn

// ChunkCapacity is the fixed payload capacity of every Chunk allocated
// by a Session. Frame payloads are split across as many chunks as
// needed; the engine never allocates a variable-size buffer.
const ChunkCapacity = 4096

// Chunk is a fixed-capacity node in a singly linked list of bytes. It
// is the only payload-carrying type the engine allocates: HTTP bodies,
// WebSocket frame payloads, and Build's encoded output are all chunk
// lists. A Chunk is owned by the Session until the enclosing Frame is
// surfaced to the caller and then Reclaim is called, or, for Build
// output, until the caller passes it back to Reclaim directly.
type Chunk struct {
	buf    [ChunkCapacity]byte
	length int
	next   *Chunk
}

// Bytes returns the portion of the chunk's backing array currently in
// use. The returned slice aliases the Chunk and is invalid after
// Reclaim.
func (c *Chunk) Bytes() []byte {
	return c.buf[:c.length]
}

// Len returns the number of valid bytes in this chunk.
func (c *Chunk) Len() int {
	return c.length
}

// Next returns the following chunk in the list, or nil at the tail.
func (c *Chunk) Next() *Chunk {
	return c.next
}

// chunkList accumulates bytes across a forward-linked list of Chunks,
// appending in O(1) via a retained tail pointer.
type chunkList struct {
	head, tail *Chunk
}

func (l *chunkList) write(b []byte) {
	for len(b) > 0 {
		if l.tail == nil || l.tail.length == ChunkCapacity {
			c := &Chunk{}
			if l.tail == nil {
				l.head = c
			} else {
				l.tail.next = c
			}
			l.tail = c
		}
		n := copy(l.tail.buf[l.tail.length:], b)
		l.tail.length += n
		b = b[n:]
	}
}

// writeFrame appends b as a fresh run of chunks, never packing it into
// a chunk left over from a previous call. Build relies on this so each
// wire fragment lands in its own chunk (or, if a fragment's encoded
// size exceeds ChunkCapacity, its own run of chunks) rather than being
// silently merged with a neighboring fragment's bytes.
func (l *chunkList) writeFrame(b []byte) {
	for len(b) > 0 {
		c := &Chunk{}
		n := copy(c.buf[:], b)
		c.length = n
		if l.tail == nil {
			l.head = c
		} else {
			l.tail.next = c
		}
		l.tail = c
		b = b[n:]
	}
}

// totalLen returns the number of bytes written across the whole list.
func (l *chunkList) totalLen() int {
	n := 0
	for c := l.head; c != nil; c = c.next {
		n += c.length
	}
	return n
}
