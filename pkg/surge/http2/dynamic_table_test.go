package http2

import (
	"errors"
	"testing"
)

func wantCodecError(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var cerr *CodecError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *CodecError with %s", err, code)
	}
	if cerr.Code != code {
		t.Fatalf("error code = %s, want %s (%v)", cerr.Code, code, err)
	}
}

func TestDynamicTableAdd(t *testing.T) {
	table := NewDynamicTable(DefaultHeaderTableSize)

	if err := table.Add("custom-key", "custom-value"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// 10 + 12 + 32
	if table.Size() != 54 {
		t.Errorf("Size = %d, want 54", table.Size())
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}

	got, err := table.Get(StaticTableMaxIndex + 1)
	if err != nil {
		t.Fatalf("Get(62): %v", err)
	}
	if got.Name != "custom-key" || got.Value != "custom-value" {
		t.Errorf("Get(62) = %q=%q", got.Name, got.Value)
	}
}

func TestDynamicTableIndexing(t *testing.T) {
	table := NewDynamicTable(DefaultHeaderTableSize)
	table.Add("first", "1")
	table.Add("second", "2")
	table.Add("third", "3")

	// newest entry sits at the lowest dynamic index
	for i, want := range []string{"third", "second", "first"} {
		got, err := table.Get(StaticTableMaxIndex + 1 + i)
		if err != nil {
			t.Fatalf("Get(%d): %v", StaticTableMaxIndex+1+i, err)
		}
		if got.Name != want {
			t.Errorf("Get(%d) = %q, want %q", StaticTableMaxIndex+1+i, got.Name, want)
		}
	}

	// static range still resolves through the same lookup
	got, err := table.Get(2)
	if err != nil || got.Name != ":method" || got.Value != "GET" {
		t.Errorf("Get(2) = %+v, %v", got, err)
	}

	_, err = table.Get(0)
	wantCodecError(t, err, ErrCodeProtocol)

	_, err = table.Get(StaticTableMaxIndex + 4)
	wantCodecError(t, err, ErrCodeProtocol)
}

func TestDynamicTableEviction(t *testing.T) {
	// each "namex"="value" entry is 5 + 5 + 32 = 42 bytes
	table := NewDynamicTable(100)

	table.Add("name1", "value")
	table.Add("name2", "value")
	if table.Len() != 2 || table.Size() != 84 {
		t.Fatalf("Len = %d, Size = %d, want 2, 84", table.Len(), table.Size())
	}

	// third entry exceeds 100, oldest must go
	table.Add("name3", "value")
	if table.Len() != 2 || table.Size() != 84 {
		t.Fatalf("after eviction Len = %d, Size = %d, want 2, 84", table.Len(), table.Size())
	}
	got, _ := table.Get(StaticTableMaxIndex + 2)
	if got.Name != "name2" {
		t.Errorf("oldest surviving entry = %q, want name2", got.Name)
	}
}

func TestDynamicTableOversizedEntry(t *testing.T) {
	table := NewDynamicTable(40)
	table.Add("a", "b") // 34 bytes, fits

	// 10 + 12 + 32 = 54 bytes cannot fit even an empty table
	err := table.Add("custom-key", "custom-value")
	wantCodecError(t, err, ErrCodeCompression)
	if table.Len() != 0 || table.Size() != 0 {
		t.Errorf("table after oversized add: Len = %d, Size = %d, want empty", table.Len(), table.Size())
	}
}

func TestDynamicTableMaxSizeZero(t *testing.T) {
	table := NewDynamicTable(DefaultHeaderTableSize)
	table.Add("a", "b")

	if err := table.SetMaxTableSize(0); err != nil {
		t.Fatalf("SetMaxTableSize(0): %v", err)
	}
	if table.Len() != 0 || table.Size() != 0 {
		t.Errorf("table after size 0 update: Len = %d, Size = %d", table.Len(), table.Size())
	}

	for _, name := range []string{"x-one", "x-two", "x-three"} {
		err := table.Add(name, "value")
		wantCodecError(t, err, ErrCodeCompression)
		if table.Len() != 0 || table.Size() != 0 {
			t.Fatalf("table must stay empty, Len = %d, Size = %d", table.Len(), table.Size())
		}
	}

	_, err := table.Get(StaticTableMaxIndex + 1)
	wantCodecError(t, err, ErrCodeProtocol)
}

func TestDynamicTableSizeUpdate(t *testing.T) {
	table := NewDynamicTable(200)
	table.Add("name1", "value") // 42 bytes each
	table.Add("name2", "value")
	table.Add("name3", "value")

	// shrinking evicts oldest entries until the table fits
	if err := table.SetMaxTableSize(100); err != nil {
		t.Fatalf("SetMaxTableSize(100): %v", err)
	}
	if table.Len() != 2 || table.Size() != 84 {
		t.Errorf("after shrink Len = %d, Size = %d, want 2, 84", table.Len(), table.Size())
	}
	if table.MaxTableSize() != 100 {
		t.Errorf("MaxTableSize = %d, want 100", table.MaxTableSize())
	}

	// growing above the protocol ceiling is a compression error
	err := table.SetMaxTableSize(201)
	wantCodecError(t, err, ErrCodeCompression)

	table.SetProtocolMaxTableSize(400)
	if err := table.SetMaxTableSize(300); err != nil {
		t.Errorf("SetMaxTableSize(300) after ceiling raise: %v", err)
	}
}

func TestDynamicTableFind(t *testing.T) {
	table := NewDynamicTable(DefaultHeaderTableSize)
	table.Add("custom-key", "custom-value")
	table.Add("cache-control", "no-store")

	tests := []struct {
		name      string
		value     string
		wantIndex int
		wantExact bool
	}{
		// static exact match wins over everything
		{":method", "GET", 2, true},
		// dynamic exact match
		{"custom-key", "custom-value", 63, true},
		{"cache-control", "no-store", 62, true},
		// static name candidate preferred over dynamic name match
		{"cache-control", "private", 24, false},
		// dynamic name-only candidate
		{"custom-key", "other", 63, false},
		{"nothing", "here", 0, false},
	}

	for _, tt := range tests {
		gotIndex, gotExact := table.Find(tt.name, tt.value)
		if gotIndex != tt.wantIndex || gotExact != tt.wantExact {
			t.Errorf("Find(%q, %q) = (%d, %v), want (%d, %v)",
				tt.name, tt.value, gotIndex, gotExact, tt.wantIndex, tt.wantExact)
		}
	}
}

func TestDynamicTableFromSettings(t *testing.T) {
	table := NewDynamicTableFromSettings(Settings{HeaderTableSize: 8192})
	if table.MaxTableSize() != 8192 || table.ProtocolMaxTableSize() != 8192 {
		t.Errorf("sizes = %d/%d, want 8192/8192", table.MaxTableSize(), table.ProtocolMaxTableSize())
	}
}
