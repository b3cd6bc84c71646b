package http2

// Config carries the codec tunables that are local policy rather than
// negotiated protocol state.
type Config struct {
	// HuffmanThreshold is the string length above which the encoder
	// switches to Huffman coding. Very short strings usually grow
	// once the length prefix is accounted for.
	HuffmanThreshold int

	// MaxStringLength bounds a single decoded header name or value.
	// Blocks claiming longer strings are rejected before allocation.
	MaxStringLength int
}

// DefaultConfig returns the codec defaults.
func DefaultConfig() Config {
	return Config{
		HuffmanThreshold: 3,
		MaxStringLength:  16 * 1024 * 1024,
	}
}
