package symtab

import (
	"io"

	"github.com/ChainSafe/mipsasm/diag"
)

// SymbolTable holds label definitions. Names are unique.
type SymbolTable struct {
	t *Table
}

// NewSymbolTable creates an empty program symbol table.
func NewSymbolTable(log diag.Logger) *SymbolTable {
	return &SymbolTable{t: New(UniqueName, log)}
}

// Define records label name at addr.
func (s *SymbolTable) Define(name string, addr uint32) error {
	return s.t.Insert(name, addr)
}

// Lookup returns the address of label name.
func (s *SymbolTable) Lookup(name string) (uint32, bool) {
	return s.t.Lookup(name)
}

func (s *SymbolTable) Entries() []Entry { return s.t.Entries() }
func (s *SymbolTable) Len() int         { return s.t.Len() }
func (s *SymbolTable) Release()         { s.t.Release() }

func (s *SymbolTable) WriteTo(w io.Writer) (int64, error) {
	return s.t.WriteTo(w)
}

// RelocationTable records output addresses whose word refers to a symbol
// that a later link step has to patch. A symbol may be referenced from
// many sites.
type RelocationTable struct {
	t *Table
}

// NewRelocationTable creates an empty relocation table.
func NewRelocationTable(log diag.Logger) *RelocationTable {
	return &RelocationTable{t: New(NonUnique, log)}
}

// Add records a reference to name from the word at addr.
func (r *RelocationTable) Add(name string, addr uint32) error {
	return r.t.Insert(name, addr)
}

// Lookup returns the first reference site recorded for name.
func (r *RelocationTable) Lookup(name string) (uint32, bool) {
	return r.t.Lookup(name)
}

func (r *RelocationTable) Entries() []Entry { return r.t.Entries() }
func (r *RelocationTable) Len() int         { return r.t.Len() }
func (r *RelocationTable) Release()         { r.t.Release() }

func (r *RelocationTable) WriteTo(w io.Writer) (int64, error) {
	return r.t.WriteTo(w)
}
