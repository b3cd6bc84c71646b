package http2

// HTTP/2 connection settings relevant to header processing
// (RFC 7540 §6.5.2).

type SettingID uint16

const (
	SettingHeaderTableSize      SettingID = 0x1
	SettingEnablePush           SettingID = 0x2
	SettingMaxConcurrentStreams SettingID = 0x3
	SettingInitialWindowSize    SettingID = 0x4
	SettingMaxFrameSize         SettingID = 0x5
	SettingMaxHeaderListSize    SettingID = 0x6
)

func (s SettingID) String() string {
	switch s {
	case SettingHeaderTableSize:
		return "SETTINGS_HEADER_TABLE_SIZE"
	case SettingEnablePush:
		return "SETTINGS_ENABLE_PUSH"
	case SettingMaxConcurrentStreams:
		return "SETTINGS_MAX_CONCURRENT_STREAMS"
	case SettingInitialWindowSize:
		return "SETTINGS_INITIAL_WINDOW_SIZE"
	case SettingMaxFrameSize:
		return "SETTINGS_MAX_FRAME_SIZE"
	case SettingMaxHeaderListSize:
		return "SETTINGS_MAX_HEADER_LIST_SIZE"
	default:
		return "SETTINGS_UNKNOWN"
	}
}

const (
	// DefaultHeaderTableSize is the initial dynamic table size before
	// any SETTINGS exchange (RFC 7540 §6.5.2).
	DefaultHeaderTableSize = 4096

	// DefaultMaxFrameSize is the initial maximum frame payload size.
	DefaultMaxFrameSize = 16384

	// FrameHeaderLen is the fixed size of an HTTP/2 frame header.
	FrameHeaderLen = 9

	// MaxPadding is the largest pad length expressible in the one-byte
	// Pad Length field.
	MaxPadding = 255
)

// Settings holds the negotiated connection parameters the codec needs.
type Settings struct {
	HeaderTableSize   uint32
	MaxFrameSize      uint32
	MaxHeaderListSize uint32
}

// DefaultSettings returns the RFC 7540 initial values. A zero
// MaxHeaderListSize means unlimited.
func DefaultSettings() Settings {
	return Settings{
		HeaderTableSize: DefaultHeaderTableSize,
		MaxFrameSize:    DefaultMaxFrameSize,
	}
}
