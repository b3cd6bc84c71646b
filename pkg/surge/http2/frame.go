package http2

import "encoding/binary"

// Frame-level types needed to carry header blocks (RFC 7540 §4, §6.2,
// §6.10). Only the pieces the header codec consumes live here; stream
// state and flow control belong to the connection layer.

type FrameType uint8

const (
	FrameTypeData         FrameType = 0x0
	FrameTypeHeaders      FrameType = 0x1
	FrameTypePriority     FrameType = 0x2
	FrameTypeRstStream    FrameType = 0x3
	FrameTypeSettings     FrameType = 0x4
	FrameTypePushPromise  FrameType = 0x5
	FrameTypePing         FrameType = 0x6
	FrameTypeGoAway       FrameType = 0x7
	FrameTypeWindowUpdate FrameType = 0x8
	FrameTypeContinuation FrameType = 0x9
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeData:
		return "DATA"
	case FrameTypeHeaders:
		return "HEADERS"
	case FrameTypePriority:
		return "PRIORITY"
	case FrameTypeRstStream:
		return "RST_STREAM"
	case FrameTypeSettings:
		return "SETTINGS"
	case FrameTypePushPromise:
		return "PUSH_PROMISE"
	case FrameTypePing:
		return "PING"
	case FrameTypeGoAway:
		return "GOAWAY"
	case FrameTypeWindowUpdate:
		return "WINDOW_UPDATE"
	case FrameTypeContinuation:
		return "CONTINUATION"
	default:
		return "UNKNOWN"
	}
}

type Flags uint8

const (
	FlagHeadersEndStream  Flags = 0x1
	FlagHeadersEndHeaders Flags = 0x4
	FlagHeadersPadded     Flags = 0x8
	FlagHeadersPriority   Flags = 0x20

	FlagContinuationEndHeaders Flags = 0x4
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// FrameHeader is the fixed 9-byte prefix of every HTTP/2 frame.
type FrameHeader struct {
	Length   uint32 // 24-bit payload length
	Type     FrameType
	Flags    Flags
	StreamID uint32 // 31-bit, high bit reserved
}

// ParseFrameHeader decodes the 9-byte wire form.
func ParseFrameHeader(b [FrameHeaderLen]byte) FrameHeader {
	return FrameHeader{
		Length:   uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]),
		Type:     FrameType(b[3]),
		Flags:    Flags(b[4]),
		StreamID: binary.BigEndian.Uint32(b[5:9]) & 0x7fffffff,
	}
}

// WriteFrameHeader encodes the 9-byte wire form.
func (h FrameHeader) WriteFrameHeader() [FrameHeaderLen]byte {
	var b [FrameHeaderLen]byte
	b[0] = byte(h.Length >> 16)
	b[1] = byte(h.Length >> 8)
	b[2] = byte(h.Length)
	b[3] = byte(h.Type)
	b[4] = byte(h.Flags)
	binary.BigEndian.PutUint32(b[5:9], h.StreamID&0x7fffffff)
	return b
}

// FrameData is one received frame: its header and payload cursor.
type FrameData struct {
	Header FrameHeader
	Data   *BufferData
}

// Priority is the priority sub-block of a HEADERS frame or the
// payload of a PRIORITY frame (RFC 7540 §6.3).
type Priority struct {
	Exclusive        bool
	StreamDependency uint32
	Weight           uint8
}

// readPriority consumes the 5-byte priority block.
func readPriority(data *BufferData) (Priority, error) {
	raw, err := data.ReadBytes(5)
	if err != nil {
		return Priority{}, protocolError("headers frame too short for priority block")
	}
	dep := binary.BigEndian.Uint32(raw[0:4])
	return Priority{
		Exclusive:        dep&0x80000000 != 0,
		StreamDependency: dep & 0x7fffffff,
		Weight:           raw[4],
	}, nil
}

// Stream receives per-stream signals decoded from header frames.
type Stream interface {
	SetPriority(Priority)
}
