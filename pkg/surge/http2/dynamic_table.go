package http2

// HPACK dynamic table (RFC 7541 §2.3, §4). There is one dynamic table
// for inbound headers and one for outbound headers on each
// connection; it caches header fields so later blocks can reference
// them by index. A table is affinitized to the single goroutine
// processing its connection direction and performs no locking.

// entryOverhead is the per-entry size overhead defined by
// RFC 7541 §4.1.
const entryOverhead = 32

type dynamicEntry struct {
	name  string
	value string
	size  uint32
}

func entrySize(name, value string) uint32 {
	return uint32(len(name)+len(value)) + entryOverhead
}

// DynamicTable is a size-bounded table of recently seen header
// fields, newest first. Entries are addressed on the wire by
// StaticTableMaxIndex plus their 1-based position from the front.
type DynamicTable struct {
	entries         []dynamicEntry // newest first
	protocolMaxSize uint32
	maxSize         uint32
	size            uint32
}

// NewDynamicTable creates a table whose protocol ceiling and active
// limit both start at maxTableSize (the negotiated
// SETTINGS_HEADER_TABLE_SIZE).
func NewDynamicTable(maxTableSize uint32) *DynamicTable {
	return &DynamicTable{
		protocolMaxSize: maxTableSize,
		maxSize:         maxTableSize,
	}
}

// NewDynamicTableFromSettings creates a table sized from connection
// settings.
func NewDynamicTableFromSettings(settings Settings) *DynamicTable {
	return NewDynamicTable(settings.HeaderTableSize)
}

// SetProtocolMaxTableSize updates the ceiling negotiated through a
// SETTINGS frame.
func (t *DynamicTable) SetProtocolMaxTableSize(n uint32) {
	t.protocolMaxSize = n
}

// SetMaxTableSize applies a dynamic table size update. Shrinking the
// limit evicts oldest entries until the table fits; a limit above the
// protocol ceiling is a compression error.
func (t *DynamicTable) SetMaxTableSize(n uint32) error {
	if n > t.protocolMaxSize {
		return compressionError("table size update %d exceeds protocol maximum %d", n, t.protocolMaxSize)
	}
	t.maxSize = n
	if n == 0 {
		t.entries = t.entries[:0]
		t.size = 0
		return nil
	}
	for t.size > t.maxSize {
		t.evict()
	}
	return nil
}

// Add inserts a field at the front of the table, evicting oldest
// entries until it fits. A field too large to fit even an empty table
// leaves the table empty and fails with a compression error.
func (t *DynamicTable) Add(name, value string) error {
	size := entrySize(name, value)

	for t.size+size > t.maxSize {
		if len(t.entries) == 0 {
			return compressionError(
				"cannot add header record, max table size too low: max size %d, header size %d",
				t.maxSize, size)
		}
		t.evict()
	}

	t.entries = append(t.entries, dynamicEntry{})
	copy(t.entries[1:], t.entries)
	t.entries[0] = dynamicEntry{name: name, value: value, size: size}
	t.size += size
	return nil
}

// Get resolves a wire index against the static table (1-61) or the
// dynamic table (62 and above). Indices outside both ranges are a
// protocol error.
func (t *DynamicTable) Get(index int) (HeaderField, error) {
	if index <= StaticTableMaxIndex {
		entry, ok := staticGet(index)
		if !ok {
			return HeaderField{}, protocolError("invalid header index %d", index)
		}
		return HeaderField{Name: entry.name, Value: entry.value}, nil
	}

	pos := index - StaticTableMaxIndex // 1-based from the front
	if pos > len(t.entries) {
		return HeaderField{}, protocolError("dynamic table does not contain required header at index %d", index)
	}
	entry := t.entries[pos-1]
	return HeaderField{Name: entry.name, Value: entry.value}, nil
}

// Find searches the static table then the dynamic table. It returns
// the index of an exact name+value match when one exists, preferring
// static entries, else the first name-only candidate, else 0.
func (t *DynamicTable) Find(name, value string) (index int, exact bool) {
	staticIdx, staticExact := staticFind(name, value)
	if staticExact {
		return staticIdx, true
	}

	candidate := staticIdx
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.name != name {
			continue
		}
		if entry.value == value {
			return StaticTableMaxIndex + i + 1, true
		}
		if candidate == 0 {
			candidate = StaticTableMaxIndex + i + 1
		}
	}
	return candidate, false
}

// Len returns the number of dynamic entries.
func (t *DynamicTable) Len() int {
	return len(t.entries)
}

// Size returns the summed wire size of all dynamic entries.
func (t *DynamicTable) Size() uint32 {
	return t.size
}

// MaxTableSize returns the currently active limit.
func (t *DynamicTable) MaxTableSize() uint32 {
	return t.maxSize
}

// ProtocolMaxTableSize returns the negotiated ceiling.
func (t *DynamicTable) ProtocolMaxTableSize() uint32 {
	return t.protocolMaxSize
}

// evict removes the oldest entry.
func (t *DynamicTable) evict() {
	last := len(t.entries) - 1
	t.size -= t.entries[last].size
	t.entries[last] = dynamicEntry{}
	t.entries = t.entries[:last]
}
