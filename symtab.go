package main

// SymbolTable maps variable names to VM memory slots. Slots are
// assigned lazily in strict order of first occurrence, starting at 0,
// and are never removed or reused within one compilation.
type SymbolTable struct {
	slots map[string]int
	names []string // in slot order
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{slots: make(map[string]int)}
}

// SlotOf returns the slot for name, allocating the next slot if this
// is the first occurrence.
func (st *SymbolTable) SlotOf(name string) int {
	if slot, ok := st.slots[name]; ok {
		return slot
	}
	slot := len(st.names)
	st.slots[name] = slot
	st.names = append(st.names, name)
	return slot
}

// Lookup returns the slot for name without allocating.
func (st *SymbolTable) Lookup(name string) (int, bool) {
	slot, ok := st.slots[name]
	return slot, ok
}

// Names returns all known variable names in slot order.
func (st *SymbolTable) Names() []string {
	return st.names
}

func (st *SymbolTable) Len() int {
	return len(st.names)
}
