package http2

import "errors"

// Huffman coding for HPACK string literals (RFC 7541 §5.2 and
// Appendix B). The code table is shared with every other HPACK
// implementation on the wire, so the bit layout must match exactly.

var errInvalidHuffman = errors.New("http2: invalid huffman code or padding")

// huffmanNode is one node of the decoding tree
type huffmanNode struct {
	children [2]*huffmanNode // [0] for 0 bit, [1] for 1 bit
	symbol   int             // -1 for internal nodes
}

var huffmanRoot = buildHuffmanTree()

// buildHuffmanTree constructs the decoding tree from the code table
func buildHuffmanTree() *huffmanNode {
	root := &huffmanNode{symbol: -1}

	for sym := 0; sym <= huffmanEOS; sym++ {
		hc := huffmanTable[sym]

		node := root
		for i := int(hc.nbits) - 1; i >= 0; i-- {
			bit := (hc.code >> uint(i)) & 1
			if node.children[bit] == nil {
				node.children[bit] = &huffmanNode{symbol: -1}
			}
			node = node.children[bit]
		}
		node.symbol = sym
	}

	return root
}

// huffmanDecode decodes a complete Huffman-coded string. Decoding
// fails on the EOS symbol, on an impossible code, and on padding that
// is not a short prefix of EOS (RFC 7541 §5.2 requires padding of
// fewer than 8 bits, all ones).
func huffmanDecode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	out := make([]byte, 0, len(data)*2)
	node := huffmanRoot
	codeBits := 0 // bits consumed by the current partial code
	onlyOnes := true

	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bit := (b >> uint(i)) & 1

			next := node.children[bit]
			if next == nil {
				return "", errInvalidHuffman
			}
			node = next
			codeBits++
			if bit == 0 {
				onlyOnes = false
			}

			if node.symbol >= 0 {
				if node.symbol == huffmanEOS {
					return "", errInvalidHuffman
				}
				out = append(out, byte(node.symbol))
				node = huffmanRoot
				codeBits = 0
				onlyOnes = true
			}
		}
	}

	if node != huffmanRoot {
		// mid-code at end of data: valid only as EOS-prefix padding
		if codeBits > 7 || !onlyOnes {
			return "", errInvalidHuffman
		}
	}

	return bytesToString(out), nil
}

// huffmanEncode appends the Huffman coding of s to dst, padding the
// final partial byte with ones (the most significant bits of EOS).
func huffmanEncode(dst []byte, s string) []byte {
	var bits uint64
	var nbits uint

	for i := 0; i < len(s); i++ {
		hc := huffmanTable[s[i]]
		bits = bits<<hc.nbits | uint64(hc.code)
		nbits += uint(hc.nbits)

		for nbits >= 8 {
			nbits -= 8
			dst = append(dst, byte(bits>>nbits))
			bits &= (1 << nbits) - 1
		}
	}

	if nbits > 0 {
		pad := 8 - nbits
		dst = append(dst, byte(bits<<pad|((1<<pad)-1)))
	}

	return dst
}

// huffmanEncodedLen returns the exact coded length of s in bytes.
func huffmanEncodedLen(s string) int {
	bits := 0
	for i := 0; i < len(s); i++ {
		bits += int(huffmanTable[s[i]].nbits)
	}
	return (bits + 7) / 8
}

// HuffmanDecoder decodes HPACK string literals. One instance per
// connection direction; it is not safe for concurrent use.
type HuffmanDecoder struct {
	maxStringLength int
}

// NewHuffmanDecoder creates a decoder with the configured per-string
// length limit.
func NewHuffmanDecoder(cfg Config) *HuffmanDecoder {
	return &HuffmanDecoder{maxStringLength: cfg.MaxStringLength}
}

// DecodeString consumes length coded bytes from data and returns the
// decoded string.
func (d *HuffmanDecoder) DecodeString(data *BufferData, length int) (string, error) {
	raw, err := data.ReadBytes(length)
	if err != nil {
		return "", protocolError("expecting more header bytes")
	}
	s, err := huffmanDecode(raw)
	if err != nil {
		return "", compressionError("malformed huffman string: %v", err)
	}
	return s, nil
}

// HuffmanEncoder writes HPACK string literals, choosing Huffman
// coding for strings longer than the configured threshold.
type HuffmanEncoder struct {
	threshold int
}

// NewHuffmanEncoder creates an encoder with the configured Huffman
// threshold.
func NewHuffmanEncoder(cfg Config) *HuffmanEncoder {
	return &HuffmanEncoder{threshold: cfg.HuffmanThreshold}
}

// shouldEncode reports whether s is long enough to benefit from
// Huffman coding.
func (e *HuffmanEncoder) shouldEncode(s string) bool {
	return len(s) > e.threshold
}

// Encode writes s as a Huffman-coded string literal: H bit, coded
// length, coded bytes.
func (e *HuffmanEncoder) Encode(buf *BufferData, s string) {
	coded := huffmanEncode(make([]byte, 0, huffmanEncodedLen(s)), s)
	buf.WriteHpackInt(len(coded), 0x80, 7)
	buf.Write(coded)
}
