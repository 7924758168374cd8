package mssn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// clientFrame builds a raw, pre-masked WebSocket frame byte-for-byte,
// independent of this engine's own encoder, so decoder tests don't
// depend on Build being correct.
func clientFrame(t *testing.T, fin bool, opcode byte, payload []byte) []byte {
	t.Helper()

	b0 := opcode
	if fin {
		b0 |= 0x80
	}

	n := len(payload)
	var lenByte byte
	var ext []byte
	switch {
	case n < 126:
		lenByte = byte(n)
	case n <= 0xFFFF:
		lenByte = 126
		ext = []byte{byte(n >> 8), byte(n)}
	default:
		t.Fatalf("test helper does not support 64-bit lengths")
	}

	key := [4]byte{0x11, 0x22, 0x33, 0x44}
	masked := make([]byte, n)
	copy(masked, payload)
	for i := range masked {
		masked[i] ^= key[i%4]
	}

	out := []byte{b0, lenByte | 0x80}
	out = append(out, ext...)
	out = append(out, key[:]...)
	out = append(out, masked...)
	return out
}

func wsUpgradedSession(t *testing.T) *Session {
	t.Helper()
	s := Create(RoleServer)
	req := "GET /chat HTTP/1.1\r\nHost: example.com\r\nUpgrade: websocket\r\n" +
		"Connection: Upgrade\r\nSec-WebSocket-Version: 13\r\n\r\n"
	_, err := s.Process([]byte(req))
	require.NoError(t, err)
	require.Equal(t, RegimeWS, s.regime)
	return s
}

func TestDecodeSingleTextFrame(t *testing.T) {
	s := wsUpgradedSession(t)
	frame := clientFrame(t, true, 0x1, []byte("hello"))

	n, err := s.Process(frame)
	require.NoError(t, err)
	require.Equal(t, len(frame), n)
	require.Len(t, s.Frames, 1)
	require.Equal(t, FrameWSText, s.Frames[0].Type)
	require.Equal(t, "hello", string(s.Frames[0].Chunks().Bytes()))
}

func TestDecodeFragmentedMessage(t *testing.T) {
	s := wsUpgradedSession(t)

	first := clientFrame(t, false, 0x1, []byte("hel"))
	second := clientFrame(t, true, 0x0, []byte("lo"))

	n, err := s.Process(first)
	require.NoError(t, err)
	require.Equal(t, len(first), n)
	require.Empty(t, s.Frames)

	n, err = s.Process(second)
	require.NoError(t, err)
	require.Equal(t, len(second), n)
	require.Len(t, s.Frames, 1)
	require.Equal(t, "hello", string(s.Frames[0].Chunks().Bytes()))
}

func TestDecodeAcrossArbitraryByteSplits(t *testing.T) {
	s := wsUpgradedSession(t)
	frame := clientFrame(t, true, 0x2, []byte("the quick brown fox"))

	var buf []byte
	for i := 0; i < len(frame); i++ {
		buf = append(buf, frame[i])
		for {
			n, err := s.Process(buf)
			require.NoError(t, err)
			if n == 0 {
				break
			}
			buf = buf[n:]
		}
	}

	require.Len(t, s.Frames, 1)
	require.Equal(t, FrameWSBinary, s.Frames[0].Type)
	require.Equal(t, "the quick brown fox", string(s.Frames[0].Chunks().Bytes()))
}

func TestDecodeRejectsMaskingParityMismatch(t *testing.T) {
	s := wsUpgradedSession(t)
	// An unmasked frame sent to a server is a masking-key mismatch.
	unmasked := []byte{0x81, 0x02, 'h', 'i'}

	_, err := s.Process(unmasked)
	require.ErrorIs(t, err, ErrMaskingKeyMismatch)
}

func TestDecodeRejectsFragmentedControlFrame(t *testing.T) {
	s := wsUpgradedSession(t)
	badPing := clientFrame(t, false, 0x9, []byte("x"))

	_, err := s.Process(badPing)
	require.ErrorIs(t, err, ErrControlFrameFragmented)
}

func TestDecodeRejectsUnknownOpcode(t *testing.T) {
	s := wsUpgradedSession(t)
	bad := clientFrame(t, true, 0x3, []byte("x"))

	_, err := s.Process(bad)
	require.ErrorIs(t, err, ErrInvalidOpcode)
}

func TestBuildThenDecodeRoundTrip(t *testing.T) {
	client := Create(RoleClient)
	built, err := client.Build(FrameWSText, 0, 4096, []byte("round trip payload"))
	require.NoError(t, err)
	require.NotNil(t, built)

	var wire []byte
	for c := built; c != nil; c = c.Next() {
		wire = append(wire, c.Bytes()...)
	}
	client.Reclaim(built)

	server := wsUpgradedSession(t)
	n, err := server.Process(wire)
	require.NoError(t, err)
	require.Equal(t, len(wire), n)
	require.Len(t, server.Frames, 1)
	require.Equal(t, "round trip payload", string(server.Frames[0].Chunks().Bytes()))
}

func TestBuildFragmentsAcrossMaxFrameSize(t *testing.T) {
	client := Create(RoleClient)
	payload := make([]byte, 500)
	for i := range payload {
		payload[i] = byte(i)
	}

	built, err := client.Build(FrameWSBinary, 0, 64, payload)
	require.NoError(t, err)

	var wire []byte
	for c := built; c != nil; c = c.Next() {
		wire = append(wire, c.Bytes()...)
	}
	// With a 64-byte frame ceiling and a 500-byte payload, more than one
	// WebSocket frame must have been produced on the wire.
	require.Greater(t, len(wire), 500+2*7)

	server := wsUpgradedSession(t)
	n, err := server.Process(wire)
	require.NoError(t, err)
	require.Equal(t, len(wire), n)
	require.Len(t, server.Frames, 1)
	require.Equal(t, payload, server.Frames[0].Chunks().Bytes())
}

func TestBuildFragmentsAtMaxFrameSizeTen(t *testing.T) {
	client := Create(RoleClient)
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte('a' + i)
	}

	built, err := client.Build(FrameWSBinary, 0, 10, payload)
	require.NoError(t, err)
	require.NotNil(t, built)

	var wire []byte
	fragments := 0
	for c := built; c != nil; c = c.Next() {
		wire = append(wire, c.Bytes()...)
		fragments++
	}
	require.GreaterOrEqual(t, fragments, 2, "max_frame_size=10 must force at least two fragments")

	require.Equal(t, byte(0x02), wire[0]&0x0f, "first fragment must carry the BINARY opcode")
	require.Equal(t, byte(0), wire[0]&0x80, "first fragment must not carry FIN")

	server := wsUpgradedSession(t)
	n, err := server.Process(wire)
	require.NoError(t, err)
	require.Equal(t, len(wire), n)
	require.Len(t, server.Frames, 1)
	require.Equal(t, payload, server.Frames[0].Chunks().Bytes())
}

func TestBuildProducesOneChunkPerFragment(t *testing.T) {
	client := Create(RoleClient)
	payload := make([]byte, 500)
	for i := range payload {
		payload[i] = byte(i)
	}

	built, err := client.Build(FrameWSBinary, 0, 64, payload)
	require.NoError(t, err)

	// hlen = 2 (header) + 4 (client mask) = 6, so each fragment but the
	// last carries 64-6 = 58 bytes of payload: 500 = 8*58 + 36.
	wantLens := []int{64, 64, 64, 64, 64, 64, 64, 64, 6 + 36}
	var gotLens []int
	for c := built; c != nil; c = c.Next() {
		gotLens = append(gotLens, c.Len())
	}
	require.Equal(t, wantLens, gotLens, "Build must emit exactly one chunk per wire fragment")
}

func TestBuildRejectsEmptyTextPayload(t *testing.T) {
	client := Create(RoleClient)
	_, err := client.Build(FrameWSText, 0, 4096, nil)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestBuildRejectsOversizedControlPayload(t *testing.T) {
	client := Create(RoleClient)
	_, err := client.Build(FrameWSPing, 0, 4096, make([]byte, 200))
	require.ErrorIs(t, err, ErrControlFrameTooLarge)
}
