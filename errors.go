package mssn

import "errors"

// Protocol and usage errors returned by Session.Process and
// Session.Build. Each corresponds to an error_msg string set by the
// reference implementation this engine is grounded on.
var (
	// ErrInvalidWebSocketVersion indicates an HTTP Upgrade request did
	// not carry a Sec-WebSocket-Version header whose value begins with
	// "13".
	ErrInvalidWebSocketVersion = errors.New("mssn: invalid websocket version")

	// ErrMaskingKeyMismatch indicates an incoming WebSocket frame's MASK
	// bit did not match what this Session's role requires: servers must
	// receive masked frames, clients must receive unmasked frames.
	ErrMaskingKeyMismatch = errors.New("mssn: masking-key not match")

	// ErrControlFrameFragmented indicates a control frame (ping, pong,
	// or close) was received with FIN=0. RFC 6455 Section 5.5 forbids
	// fragmenting control frames.
	ErrControlFrameFragmented = errors.New("mssn: control frame must not be fragmented")

	// ErrControlFrameTooLarge indicates a control frame payload
	// exceeded 125 bytes (RFC 6455 Section 5.5).
	ErrControlFrameTooLarge = errors.New("mssn: control frame require buf_len<=125")

	// ErrInvalidOpcode indicates a WebSocket frame used an opcode RFC
	// 6455 does not define.
	ErrInvalidOpcode = errors.New("mssn: invalid opcode")

	// ErrReservedBitsSet indicates RSV1/RSV2/RSV3 was set on a frame.
	// This engine negotiates no extensions, so the reserved bits must
	// always be zero (RFC 6455 Section 5.2).
	ErrReservedBitsSet = errors.New("mssn: reserved bits must be zero")

	// ErrUnexpectedContinuation indicates a continuation frame arrived
	// with no data frame in progress to continue.
	ErrUnexpectedContinuation = errors.New("mssn: unexpected continuation frame")

	// ErrInvalidFrameType is returned by Build for a FrameType outside
	// [FrameWSPing, FrameWSBinary].
	ErrInvalidFrameType = errors.New("mssn: invalid frame type")

	// ErrInvalidParams is returned by Build when a text/binary frame is
	// requested with an empty payload, or when maxFrameSize leaves no
	// room for payload after the frame header.
	ErrInvalidParams = errors.New("mssn: invalid params")

	// ErrInvalidPayloadLength is returned by Build when the requested
	// payload exceeds the RFC 6455 64-bit length field's range
	// (2^63 - 1 bytes).
	ErrInvalidPayloadLength = errors.New("mssn: invalid payload length")

	// ErrClosed is returned by Process and Build once the Session has
	// been closed.
	ErrClosed = errors.New("mssn: session closed")

	// ErrHTTPParse is wrapped (via %w) by every fatal HTTP/1.x parse
	// error; the parser's own message follows it in the error text.
	ErrHTTPParse = errors.New("mssn: http parse error")
)
