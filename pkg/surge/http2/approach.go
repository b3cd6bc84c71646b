package http2

// A header field representation (RFC 7541 §6). The first byte of each
// field selects among six encodings:
//
//	1xxxxxxx  indexed header field
//	01xxxxxx  literal with incremental indexing
//	001xxxxx  dynamic table size update
//	0001xxxx  literal never indexed
//	0000xxxx  literal without indexing
//
// The literal forms carry either an index into the tables (name only)
// or a literal name, distinguished by a zero index.
type headerApproach struct {
	addToIndex      bool
	neverIndex      bool
	hasName         bool // name is a literal string, not an index
	hasValue        bool // value is a literal string
	tableSizeUpdate bool
	number          int // table index, 0 when hasName
}

// resolveApproach consumes the first byte(s) of a field and classifies
// the representation. The exact bytes 0x00, 0x40 and 0x10 are the
// literal-name forms of their patterns (index bits all zero).
func resolveApproach(data *BufferData) (headerApproach, error) {
	first, err := data.ReadByte()
	if err != nil {
		return headerApproach{}, compressionError("no bytes to read in header field")
	}

	switch first {
	case 0x00: // 0000 0000 - literal without indexing, literal name
		return headerApproach{hasName: true, hasValue: true}, nil
	case 0x40: // 0100 0000 - incremental indexing, literal name
		return headerApproach{addToIndex: true, hasName: true, hasValue: true}, nil
	case 0x10: // 0001 0000 - never indexed, literal name
		return headerApproach{neverIndex: true, hasName: true, hasValue: true}, nil
	}

	switch {
	case first&0x80 == 0x80: // 1xxx xxxx - indexed
		number, err := data.ReadHpackInt(first, 7)
		if err != nil {
			return headerApproach{}, compressionError("malformed header index: %v", err)
		}
		return headerApproach{number: number}, nil

	case first&0xc0 == 0x40: // 01xx xxxx - incremental indexing, indexed name
		number, err := data.ReadHpackInt(first, 6)
		if err != nil {
			return headerApproach{}, compressionError("malformed header index: %v", err)
		}
		return headerApproach{addToIndex: true, hasValue: true, number: number}, nil

	case first&0xe0 == 0x20: // 001x xxxx - dynamic table size update
		number, err := data.ReadHpackInt(first, 5)
		if err != nil {
			return headerApproach{}, compressionError("malformed table size update: %v", err)
		}
		return headerApproach{tableSizeUpdate: true, number: number}, nil

	case first&0xf0 == 0x10: // 0001 xxxx - never indexed, indexed name
		number, err := data.ReadHpackInt(first, 4)
		if err != nil {
			return headerApproach{}, compressionError("malformed header index: %v", err)
		}
		return headerApproach{neverIndex: true, hasValue: true, number: number}, nil

	default: // 0000 xxxx - without indexing, indexed name
		number, err := data.ReadHpackInt(first, 4)
		if err != nil {
			return headerApproach{}, compressionError("malformed header index: %v", err)
		}
		return headerApproach{hasValue: true, number: number}, nil
	}
}

// write emits the field in this representation. number and the
// has-flags must describe a consistent combination, as produced by the
// encode path in writeField.
func (a headerApproach) write(enc *HuffmanEncoder, buf *BufferData, name, value string) {
	switch {
	case a.neverIndex:
		if a.hasName {
			buf.WriteByte(0x10)
			writeString(enc, buf, name)
		} else {
			buf.WriteHpackInt(a.number, 0x10, 4)
		}
		writeString(enc, buf, value)

	case a.addToIndex:
		if a.hasName {
			buf.WriteByte(0x40)
			writeString(enc, buf, name)
		} else {
			buf.WriteHpackInt(a.number, 0x40, 6)
		}
		writeString(enc, buf, value)

	case a.hasValue:
		if a.hasName {
			buf.WriteByte(0x00)
			writeString(enc, buf, name)
		} else {
			buf.WriteHpackInt(a.number, 0x00, 4)
		}
		writeString(enc, buf, value)

	default:
		a.writeIndexed(buf)
	}
}

// writeIndexed emits a fully indexed field reference.
func (a headerApproach) writeIndexed(buf *BufferData) {
	buf.WriteHpackInt(a.number, 0x80, 7)
}

// writeString emits one string literal, Huffman-coded when the encoder
// judges it worthwhile.
func writeString(enc *HuffmanEncoder, buf *BufferData, s string) {
	if enc.shouldEncode(s) {
		enc.Encode(buf, s)
		return
	}
	buf.WriteHpackInt(len(s), 0x00, 7)
	buf.WriteString(s)
}
