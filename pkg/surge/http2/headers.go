package http2

import (
	"net/http"
	"strings"
)

// HTTP/2 header semantics on top of the HPACK codec: pseudo-header
// handling, request/response validation, and encoding/decoding of
// whole header blocks (RFC 7540 §8.1.2, RFC 7541 §3).

const (
	pseudoAuthority = ":authority"
	pseudoMethod    = ":method"
	pseudoPath      = ":path"
	pseudoScheme    = ":scheme"
	pseudoStatus    = ":status"
)

// HeaderField is one decoded or to-be-encoded header field.
// Changing marks values not worth caching in the dynamic table;
// Sensitive marks values that must use the never-indexed form so
// intermediaries do not cache them either.
type HeaderField struct {
	Name      string
	Value     string
	Changing  bool
	Sensitive bool
}

// HeaderList is an ordered multimap of regular (non-pseudo) header
// fields. Names are kept lowercase, as HTTP/2 requires on the wire.
type HeaderList struct {
	fields []HeaderField
}

// NewHeaderList creates a list from name/value pairs.
func NewHeaderList(pairs ...string) *HeaderList {
	l := &HeaderList{}
	for i := 0; i+1 < len(pairs); i += 2 {
		l.Add(pairs[i], pairs[i+1])
	}
	return l
}

// Add appends a field, lowercasing the name.
func (l *HeaderList) Add(name, value string) {
	l.fields = append(l.fields, HeaderField{Name: strings.ToLower(name), Value: value})
}

// AddField appends a field as-is. The name must already be lowercase.
func (l *HeaderList) AddField(f HeaderField) {
	l.fields = append(l.fields, f)
}

// Contains reports whether any field has the given lowercase name.
func (l *HeaderList) Contains(name string) bool {
	for i := range l.fields {
		if l.fields[i].Name == name {
			return true
		}
	}
	return false
}

// Get returns the first value for name and whether one exists.
func (l *HeaderList) Get(name string) (string, bool) {
	for i := range l.fields {
		if l.fields[i].Name == name {
			return l.fields[i].Value, true
		}
	}
	return "", false
}

// Values returns all values for name in order.
func (l *HeaderList) Values(name string) []string {
	var values []string
	for i := range l.fields {
		if l.fields[i].Name == name {
			values = append(values, l.fields[i].Value)
		}
	}
	return values
}

// Len returns the number of fields.
func (l *HeaderList) Len() int {
	return len(l.fields)
}

// Fields returns the underlying fields in order. The slice must not
// be modified.
func (l *HeaderList) Fields() []HeaderField {
	return l.fields
}

// extract removes every field with the given name and returns the
// first removed value.
func (l *HeaderList) extract(name string) (string, bool) {
	value := ""
	found := false
	kept := l.fields[:0]
	for _, f := range l.fields {
		if f.Name == name {
			if !found {
				value = f.Value
				found = true
			}
			continue
		}
		kept = append(kept, f)
	}
	l.fields = kept
	return value, found
}

// PseudoHeaders holds the five defined pseudo-header fields. Presence
// is tracked separately from value, since an empty value and an
// absent field are different on the wire.
type PseudoHeaders struct {
	authority string
	method    string
	path      string
	scheme    string
	status    string

	hasAuthority bool
	hasMethod    bool
	hasPath      bool
	hasScheme    bool
	hasStatus    bool
}

func (p *PseudoHeaders) setAuthority(v string) { p.authority = v; p.hasAuthority = true }
func (p *PseudoHeaders) setMethod(v string)    { p.method = v; p.hasMethod = true }
func (p *PseudoHeaders) setPath(v string)      { p.path = v; p.hasPath = true }
func (p *PseudoHeaders) setScheme(v string)    { p.scheme = v; p.hasScheme = true }
func (p *PseudoHeaders) setStatus(v string)    { p.status = v; p.hasStatus = true }

func (p *PseudoHeaders) count() int {
	n := 0
	for _, has := range [...]bool{p.hasAuthority, p.hasMethod, p.hasPath, p.hasScheme, p.hasStatus} {
		if has {
			n++
		}
	}
	return n
}

// Headers is a complete header block: pseudo-headers plus regular
// fields.
type Headers struct {
	fields *HeaderList
	pseudo PseudoHeaders
}

// NewHeaders builds a block from a field list, hoisting pseudo-header
// fields out of the list. A host field is removed and, when no
// :authority is present, mapped to it.
func NewHeaders(fields *HeaderList) *Headers {
	h := &Headers{fields: &HeaderList{}}

	for _, f := range fields.Fields() {
		if len(f.Name) > 0 && f.Name[0] == ':' {
			switch f.Name {
			case pseudoAuthority:
				h.pseudo.setAuthority(f.Value)
			case pseudoMethod:
				h.pseudo.setMethod(f.Value)
			case pseudoPath:
				h.pseudo.setPath(f.Value)
			case pseudoScheme:
				h.pseudo.setScheme(f.Value)
			case pseudoStatus:
				h.pseudo.setStatus(f.Value)
			}
			continue
		}
		h.fields.AddField(f)
	}

	if host, ok := h.fields.extract("host"); ok && !h.pseudo.hasAuthority {
		h.pseudo.setAuthority(host)
	}

	return h
}

// EmptyHeaders returns a block with no fields.
func EmptyHeaders() *Headers {
	return &Headers{fields: &HeaderList{}}
}

// ParseHeaders decodes the header blocks of the given frames into one
// Headers value. The frames must be the HEADERS frame and any
// CONTINUATION frames of a single block, in order. Padding and the
// priority sub-block are consumed from the first frame per its flags.
func ParseHeaders(stream Stream, table *DynamicTable, huffman *HuffmanDecoder, frames ...FrameData) (*Headers, error) {
	if len(frames) == 0 {
		return EmptyHeaders(), nil
	}

	first := frames[0]
	padLength := 0
	if first.Header.Flags.Has(FlagHeadersPadded) {
		pad, err := first.Data.ReadByte()
		if err != nil {
			return nil, protocolError("headers frame too short for pad length")
		}
		padLength = int(pad)
	}
	if first.Header.Flags.Has(FlagHeadersPriority) {
		priority, err := readPriority(first.Data)
		if err != nil {
			return nil, err
		}
		if stream != nil {
			stream.SetPriority(priority)
		}
	}

	buffers := make([]*BufferData, 0, len(frames))
	for _, f := range frames {
		buffers = append(buffers, f.Data)
	}
	data := JoinBuffers(buffers...)

	headers := EmptyHeaders()
	lastIsPseudo := true
	for {
		if data.Available() == padLength {
			data.Skip(padLength)
			return headers, nil
		}
		if data.Available() < padLength {
			return nil, protocolError("padding exceeds header block")
		}
		isPseudo, err := readHeaderField(headers.fields, &headers.pseudo, table, huffman, data, lastIsPseudo)
		if err != nil {
			return nil, err
		}
		lastIsPseudo = isPseudo
	}
}

// readHeaderField decodes one field. lastIsPseudo carries the
// ordering state: pseudo-headers must all precede regular fields.
func readHeaderField(fields *HeaderList, pseudo *PseudoHeaders, table *DynamicTable,
	huffman *HuffmanDecoder, data *BufferData, lastIsPseudo bool) (bool, error) {

	approach, err := resolveApproach(data)
	if err != nil {
		return lastIsPseudo, err
	}

	if approach.tableSizeUpdate {
		if fields.Len() > 0 || pseudo.count() > 0 {
			return lastIsPseudo, compressionError("table size update is after headers")
		}
		if err := table.SetMaxTableSize(uint32(approach.number)); err != nil {
			return lastIsPseudo, err
		}
		return lastIsPseudo, nil
	}

	var record HeaderField
	if approach.number != 0 {
		record, err = table.Get(approach.number)
		if err != nil {
			return lastIsPseudo, err
		}
	}

	name := record.Name
	if approach.hasName {
		name, err = readString(huffman, data)
		if err != nil {
			return lastIsPseudo, err
		}
		if err := validateName(name); err != nil {
			return lastIsPseudo, err
		}
	}

	isPseudo := len(name) > 0 && name[0] == ':'
	if isPseudo && !lastIsPseudo {
		return lastIsPseudo, protocolError("pseudo header %s after regular headers", name)
	}

	value := record.Value
	if approach.hasValue {
		value, err = readString(huffman, data)
		if err != nil {
			return lastIsPseudo, err
		}
	}

	if approach.addToIndex {
		if err := table.Add(name, value); err != nil {
			return lastIsPseudo, err
		}
	}

	if isPseudo {
		if err := setPseudo(pseudo, name, value); err != nil {
			return lastIsPseudo, err
		}
		return true, nil
	}

	if name == "" {
		return lastIsPseudo, compressionError("failed to resolve header name")
	}
	fields.AddField(HeaderField{
		Name:      name,
		Value:     value,
		Changing:  !approach.addToIndex,
		Sensitive: approach.neverIndex,
	})
	return false, nil
}

// validateName checks a literal header name against the HTTP/2 wire
// rules: lowercase ASCII, non-empty, and no literal pseudo-header
// names (those must come from the tables or be set explicitly).
func validateName(name string) error {
	if name == "" {
		return protocolError("empty header name")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c > 0x7f {
			return protocolError("header name with non-ASCII character: %q", name)
		}
		if c >= 'A' && c <= 'Z' {
			return protocolError("header name with uppercase character: %q", name)
		}
	}
	if name[0] == ':' {
		return protocolError("received literal pseudo header name: %q", name)
	}
	return nil
}

// setPseudo dispatches one pseudo-header field. Duplicates are a
// protocol error; unknown pseudo-header names are ignored.
func setPseudo(pseudo *PseudoHeaders, name, value string) error {
	switch name {
	case pseudoAuthority:
		if pseudo.hasAuthority {
			return protocolError("duplicated pseudo header: %s", name)
		}
		pseudo.setAuthority(value)
	case pseudoMethod:
		if pseudo.hasMethod {
			return protocolError("duplicated pseudo header: %s", name)
		}
		pseudo.setMethod(value)
	case pseudoPath:
		if pseudo.hasPath {
			return protocolError("duplicated pseudo header: %s", name)
		}
		if value == "" {
			return protocolError("empty :path pseudo header")
		}
		pseudo.setPath(value)
	case pseudoScheme:
		if pseudo.hasScheme {
			return protocolError("duplicated pseudo header: %s", name)
		}
		pseudo.setScheme(value)
	case pseudoStatus:
		if pseudo.hasStatus {
			return protocolError("duplicated pseudo header: %s", name)
		}
		pseudo.setStatus(value)
	}
	return nil
}

// readString decodes one HPACK string literal.
func readString(huffman *HuffmanDecoder, data *BufferData) (string, error) {
	first, err := data.ReadByte()
	if err != nil {
		return "", compressionError("no bytes to read in string literal")
	}
	length, err := data.ReadHpackInt(first, 7)
	if err != nil {
		return "", compressionError("malformed string length: %v", err)
	}
	if length > huffman.maxStringLength {
		return "", protocolError("header string of %d bytes exceeds limit of %d", length, huffman.maxStringLength)
	}

	if first&0x80 == 0x80 {
		return huffman.DecodeString(data, length)
	}
	s, err := data.ReadString(length)
	if err != nil {
		return "", protocolError("expecting more header bytes")
	}
	return s, nil
}

// Write encodes the block into buf: pseudo-headers first in a fixed
// order, then the regular fields.
func (h *Headers) Write(table *DynamicTable, huffman *HuffmanEncoder, buf *BufferData) error {
	pseudo := [...]struct {
		has   bool
		name  string
		value string
	}{
		{h.pseudo.hasStatus, pseudoStatus, h.pseudo.status},
		{h.pseudo.hasMethod, pseudoMethod, h.pseudo.method},
		{h.pseudo.hasScheme, pseudoScheme, h.pseudo.scheme},
		{h.pseudo.hasPath, pseudoPath, h.pseudo.path},
		{h.pseudo.hasAuthority, pseudoAuthority, h.pseudo.authority},
	}
	for _, p := range pseudo {
		if !p.has {
			continue
		}
		if idx, exact := staticFind(p.name, p.value); exact {
			headerApproach{number: idx}.writeIndexed(buf)
			continue
		}
		if err := writeField(table, huffman, buf, p.name, p.value, true, false); err != nil {
			return err
		}
	}

	for _, f := range h.fields.Fields() {
		if err := writeField(table, huffman, buf, f.Name, f.Value, !f.Changing, f.Sensitive); err != nil {
			return err
		}
	}
	return nil
}

// writeField picks the representation for one field based on what the
// tables already hold and whether the value is worth indexing.
func writeField(table *DynamicTable, huffman *HuffmanEncoder, buf *BufferData,
	name, value string, shouldIndex, neverIndex bool) error {

	if neverIndex {
		idx, _ := table.Find(name, value)
		headerApproach{neverIndex: true, hasName: idx == 0, hasValue: true, number: idx}.
			write(huffman, buf, name, value)
		return nil
	}

	idx, exact := table.Find(name, value)
	switch {
	case idx == 0:
		if shouldIndex {
			if err := table.Add(name, value); err != nil {
				return err
			}
		}
		headerApproach{addToIndex: shouldIndex, hasName: true, hasValue: true}.
			write(huffman, buf, name, value)
	case exact:
		headerApproach{number: idx}.write(huffman, buf, name, value)
	default:
		if shouldIndex {
			if err := table.Add(name, value); err != nil {
				return err
			}
		}
		headerApproach{addToIndex: shouldIndex, hasValue: true, number: idx}.
			write(huffman, buf, name, value)
	}
	return nil
}

// Split breaks an encoded block into chunks of at most size bytes, for
// a HEADERS frame followed by CONTINUATION frames. A block that fits
// is returned unchanged as a single chunk.
func Split(data *BufferData, size int) []*BufferData {
	if data.Available() <= size {
		return []*BufferData{data}
	}
	var chunks []*BufferData
	for data.Available() > 0 {
		n := size
		if avail := data.Available(); avail < n {
			n = avail
		}
		raw, _ := data.ReadBytes(n)
		chunk := make([]byte, n)
		copy(chunk, raw)
		chunks = append(chunks, NewBufferData(chunk))
	}
	return chunks
}

// ValidateRequest checks the block against the rules for requests
// (RFC 7540 §8.1.2).
func (h *Headers) ValidateRequest() error {
	if h.pseudo.hasStatus {
		return protocolError("request contains :status pseudo header")
	}
	if h.fields.Contains("connection") {
		return protocolError("request contains connection header")
	}
	if te := h.fields.Values("te"); len(te) > 0 {
		if len(te) != 1 || te[0] != "trailers" {
			return protocolError("request te header must be 'trailers'")
		}
	}
	if !h.pseudo.hasScheme {
		return protocolError("request is missing :scheme pseudo header")
	}
	if !h.pseudo.hasPath {
		return protocolError("request is missing :path pseudo header")
	}
	if !h.pseudo.hasMethod {
		return protocolError("request is missing :method pseudo header")
	}
	return nil
}

// ValidateResponse checks the block against the rules for responses.
func (h *Headers) ValidateResponse() error {
	if !h.pseudo.hasStatus {
		return protocolError("response is missing :status pseudo header")
	}
	if h.fields.Contains("connection") {
		return protocolError("response contains connection header")
	}
	if h.pseudo.hasScheme {
		return protocolError("response contains :scheme pseudo header")
	}
	if h.pseudo.hasPath {
		return protocolError("response contains :path pseudo header")
	}
	if h.pseudo.hasMethod {
		return protocolError("response contains :method pseudo header")
	}
	return nil
}

// Fields returns the regular (non-pseudo) fields.
func (h *Headers) Fields() *HeaderList {
	return h.fields
}

func (h *Headers) Authority() string { return h.pseudo.authority }
func (h *Headers) Method() string    { return h.pseudo.method }
func (h *Headers) Path() string      { return h.pseudo.path }
func (h *Headers) Scheme() string    { return h.pseudo.scheme }
func (h *Headers) Status() string    { return h.pseudo.status }

func (h *Headers) HasAuthority() bool { return h.pseudo.hasAuthority }
func (h *Headers) HasMethod() bool    { return h.pseudo.hasMethod }
func (h *Headers) HasPath() bool      { return h.pseudo.hasPath }
func (h *Headers) HasScheme() bool    { return h.pseudo.hasScheme }
func (h *Headers) HasStatus() bool    { return h.pseudo.hasStatus }

func (h *Headers) SetAuthority(v string) *Headers { h.pseudo.setAuthority(v); return h }
func (h *Headers) SetMethod(v string) *Headers    { h.pseudo.setMethod(v); return h }
func (h *Headers) SetPath(v string) *Headers      { h.pseudo.setPath(v); return h }
func (h *Headers) SetScheme(v string) *Headers    { h.pseudo.setScheme(v); return h }
func (h *Headers) SetStatus(v string) *Headers    { h.pseudo.setStatus(v); return h }

// HTTPHeaders converts the regular fields to a net/http header map.
func (h *Headers) HTTPHeaders() http.Header {
	out := make(http.Header, h.fields.Len())
	for _, f := range h.fields.Fields() {
		out[http.CanonicalHeaderKey(f.Name)] = append(out[http.CanonicalHeaderKey(f.Name)], f.Value)
	}
	return out
}

// String renders the block for logging, pseudo-headers first.
func (h *Headers) String() string {
	var sb strings.Builder
	for _, p := range [...]struct {
		has   bool
		name  string
		value string
	}{
		{h.pseudo.hasStatus, pseudoStatus, h.pseudo.status},
		{h.pseudo.hasMethod, pseudoMethod, h.pseudo.method},
		{h.pseudo.hasScheme, pseudoScheme, h.pseudo.scheme},
		{h.pseudo.hasPath, pseudoPath, h.pseudo.path},
		{h.pseudo.hasAuthority, pseudoAuthority, h.pseudo.authority},
	} {
		if p.has {
			sb.WriteString(p.name)
			sb.WriteString(": ")
			sb.WriteString(p.value)
			sb.WriteByte('\n')
		}
	}
	for _, f := range h.fields.Fields() {
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}
