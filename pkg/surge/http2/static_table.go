package http2

// HPACK static table (RFC 7541 Appendix A). The indices and bindings
// are part of the wire protocol; entry order must match the RFC
// exactly, including index 50 mapping to "range".

// StaticTableMaxIndex is the highest static table index. Dynamic
// table entries start one above it.
const StaticTableMaxIndex = 61

type staticHeader struct {
	name     string
	value    string
	hasValue bool
}

// Index 0 is unused; valid indices are 1-61.
var staticTable = [StaticTableMaxIndex + 1]staticHeader{
	1:  {name: ":authority"},
	2:  {name: ":method", value: "GET", hasValue: true},
	3:  {name: ":method", value: "POST", hasValue: true},
	4:  {name: ":path", value: "/", hasValue: true},
	5:  {name: ":path", value: "/index.html", hasValue: true},
	6:  {name: ":scheme", value: "http", hasValue: true},
	7:  {name: ":scheme", value: "https", hasValue: true},
	8:  {name: ":status", value: "200", hasValue: true},
	9:  {name: ":status", value: "204", hasValue: true},
	10: {name: ":status", value: "206", hasValue: true},
	11: {name: ":status", value: "304", hasValue: true},
	12: {name: ":status", value: "400", hasValue: true},
	13: {name: ":status", value: "404", hasValue: true},
	14: {name: ":status", value: "500", hasValue: true},
	15: {name: "accept-charset"},
	16: {name: "accept-encoding", value: "gzip, deflate", hasValue: true},
	17: {name: "accept-language"},
	18: {name: "accept-ranges"},
	19: {name: "accept"},
	20: {name: "access-control-allow-origin"},
	21: {name: "age"},
	22: {name: "allow"},
	23: {name: "authorization"},
	24: {name: "cache-control"},
	25: {name: "content-disposition"},
	26: {name: "content-encoding"},
	27: {name: "content-language"},
	28: {name: "content-length"},
	29: {name: "content-location"},
	30: {name: "content-range"},
	31: {name: "content-type"},
	32: {name: "cookie"},
	33: {name: "date"},
	34: {name: "etag"},
	35: {name: "expect"},
	36: {name: "expires"},
	37: {name: "from"},
	38: {name: "host"},
	39: {name: "if-match"},
	40: {name: "if-modified-since"},
	41: {name: "if-none-match"},
	42: {name: "if-range"},
	43: {name: "if-unmodified-since"},
	44: {name: "last-modified"},
	45: {name: "link"},
	46: {name: "location"},
	47: {name: "max-forwards"},
	48: {name: "proxy-authenticate"},
	49: {name: "proxy-authorization"},
	50: {name: "range"},
	51: {name: "referer"},
	52: {name: "refresh"},
	53: {name: "retry-after"},
	54: {name: "server"},
	55: {name: "set-cookie"},
	56: {name: "strict-transport-security"},
	57: {name: "transfer-encoding"},
	58: {name: "user-agent"},
	59: {name: "vary"},
	60: {name: "via"},
	61: {name: "www-authenticate"},
}

// Pre-computed lookup maps for static table searches. Entries with a
// fixed value are stored under both the name key and a name+value key,
// since they may be referenced either way.
var (
	staticByName      map[string]int
	staticByNameValue map[string]int
)

func init() {
	staticByName = make(map[string]int, StaticTableMaxIndex)
	staticByNameValue = make(map[string]int, StaticTableMaxIndex)

	for i := 1; i <= StaticTableMaxIndex; i++ {
		entry := staticTable[i]
		if _, ok := staticByName[entry.name]; !ok {
			staticByName[entry.name] = i
		}
		if entry.hasValue {
			staticByNameValue[entry.name+"\x00"+entry.value] = i
		}
	}
}

// staticGet returns the static table entry at index 1-61.
func staticGet(index int) (staticHeader, bool) {
	if index < 1 || index > StaticTableMaxIndex {
		return staticHeader{}, false
	}
	return staticTable[index], true
}

// staticFind searches the static table. It returns an exact match if
// one of the fixed-value entries matches both name and value, else
// the first entry with a matching name, else index 0.
func staticFind(name, value string) (index int, exact bool) {
	if idx, ok := staticByNameValue[name+"\x00"+value]; ok {
		return idx, true
	}
	if idx, ok := staticByName[name]; ok {
		return idx, false
	}
	return 0, false
}
