package http2

import "testing"

func TestFrameHeaderWire(t *testing.T) {
	h := FrameHeader{
		Length:   0x4523,
		Type:     FrameTypeHeaders,
		Flags:    FlagHeadersEndHeaders | FlagHeadersEndStream,
		StreamID: 7,
	}

	wire := h.WriteFrameHeader()
	want := [FrameHeaderLen]byte{0x00, 0x45, 0x23, 0x01, 0x05, 0x00, 0x00, 0x00, 0x07}
	if wire != want {
		t.Fatalf("WriteFrameHeader = %x, want %x", wire, want)
	}

	if got := ParseFrameHeader(wire); got != h {
		t.Errorf("ParseFrameHeader = %+v, want %+v", got, h)
	}
}

func TestFrameHeaderReservedBit(t *testing.T) {
	wire := [FrameHeaderLen]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}
	got := ParseFrameHeader(wire)
	if got.StreamID != 0x7fffffff {
		t.Errorf("StreamID = %#x, reserved bit must be masked", got.StreamID)
	}
}

func TestFlagsHas(t *testing.T) {
	f := FlagHeadersEndHeaders | FlagHeadersPadded
	if !f.Has(FlagHeadersEndHeaders) || !f.Has(FlagHeadersPadded) {
		t.Error("Has must report set flags")
	}
	if f.Has(FlagHeadersPriority) {
		t.Error("Has must not report unset flags")
	}
}

func TestReadPriority(t *testing.T) {
	data := NewBufferData([]byte{0x80, 0x00, 0x00, 0x0b, 0x0f})
	got, err := readPriority(data)
	if err != nil {
		t.Fatalf("readPriority: %v", err)
	}
	want := Priority{Exclusive: true, StreamDependency: 11, Weight: 15}
	if got != want {
		t.Errorf("readPriority = %+v, want %+v", got, want)
	}

	_, err = readPriority(NewBufferData([]byte{0x00, 0x00}))
	wantCodecError(t, err, ErrCodeProtocol)
}

func TestFrameTypeString(t *testing.T) {
	if FrameTypeHeaders.String() != "HEADERS" {
		t.Errorf("FrameTypeHeaders.String() = %q", FrameTypeHeaders.String())
	}
	if FrameTypeContinuation.String() != "CONTINUATION" {
		t.Errorf("FrameTypeContinuation.String() = %q", FrameTypeContinuation.String())
	}
	if FrameType(0xf).String() != "UNKNOWN" {
		t.Errorf("unknown type String() = %q", FrameType(0xf).String())
	}
}
