// Package symtab implements the name to address tables used during assembly.
package symtab

import (
	"errors"
	"fmt"
	"io"

	"github.com/ChainSafe/mipsasm/diag"
)

var (
	ErrDuplicate = errors.New("duplicate symbol")
	ErrUnaligned = errors.New("address is not word aligned")
	ErrReleased  = errors.New("table released")
)

// Mode selects the uniqueness policy applied on insert.
type Mode int

const (
	UniqueName Mode = iota // names may appear once
	NonUnique              // names may repeat, e.g. several reference sites of one symbol
)

func (m Mode) String() string {
	switch m {
	case UniqueName:
		return "unique"
	case NonUnique:
		return "non-unique"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Entry is a single name/address pair.
type Entry struct {
	Name    string `json:"name"`
	Address uint32 `json:"address"`
}

// Table is an insertion-ordered list of entries with a fixed mode.
type Table struct {
	mode     Mode
	log      diag.Logger
	entries  []Entry
	index    map[string]int // first entry for each name
	released bool
}

// New creates an empty table. A nil logger discards diagnostics.
func New(mode Mode, log diag.Logger) *Table {
	if log == nil {
		log = diag.Discard
	}
	return &Table{
		mode:  mode,
		log:   log,
		index: make(map[string]int),
	}
}

// Insert appends name at addr. addr must be a multiple of 4 and, in
// UniqueName mode, name must not already be present.
func (t *Table) Insert(name string, addr uint32) error {
	if t.released {
		return ErrReleased
	}
	if addr%4 != 0 {
		t.log.Errorf("address is not a multiple of 4.")
		return fmt.Errorf("%w: %s at 0x%x", ErrUnaligned, name, addr)
	}
	_, exists := t.index[name]
	if exists && t.mode == UniqueName {
		t.log.Errorf("name '%s' already exists in table.", name)
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	if !exists {
		t.index[name] = len(t.entries)
	}
	t.entries = append(t.entries, Entry{Name: name, Address: addr})
	return nil
}

// Lookup returns the address of the first entry inserted under name.
func (t *Table) Lookup(name string) (uint32, bool) {
	if t.released {
		return 0, false
	}
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Address, true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in insertion order.
func (t *Table) Entries() []Entry {
	return append([]Entry{}, t.entries...)
}

// Release discards every entry. The table accepts no further inserts.
func (t *Table) Release() {
	t.entries = nil
	t.index = nil
	t.released = true
}

// WriteTo writes one "address\tname" line per entry.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	return WriteEntries(w, t.entries)
}

// WriteEntries writes entries in the object file table layout, one
// "address\tname" line each.
func WriteEntries(w io.Writer, entries []Entry) (int64, error) {
	var total int64
	for _, e := range entries {
		n, err := fmt.Fprintf(w, "%d\t%s\n", e.Address, e.Name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
