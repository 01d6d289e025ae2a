package vm

import (
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// Memory: the variable store
// ---------------------------------------------------------------------------

// DefaultCapacity is the number of cells a new Memory starts with.
const DefaultCapacity = 4

// Cell is a named memory cell.
type Cell struct {
	Name  string
	Value Value
}

// Memory is a name-indexed table of typed cells. A variable's address is
// fixed once it is first written, names are unique and cells are never
// removed. When every cell is in use the backing array doubles.
//
// Memory is not safe for concurrent use.
type Memory struct {
	cells []Cell         // len(cells) is the capacity
	n     int            // cells in use
	index map[string]int // name -> address
}

// NewMemory returns an empty memory with DefaultCapacity cells.
func NewMemory() *Memory {
	return NewMemoryWithCapacity(DefaultCapacity)
}

// NewMemoryWithCapacity returns an empty memory with the given initial
// capacity. Non-positive capacities use DefaultCapacity.
func NewMemoryWithCapacity(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		cells: make([]Cell, capacity),
		index: make(map[string]int),
	}
}

// Capacity returns the number of allocated cells.
func (m *Memory) Capacity() int { return len(m.cells) }

// Len returns the number of variables written so far.
func (m *Memory) Len() int { return m.n }

// Addr returns the address of a variable that has been written by name.
func (m *Memory) Addr(name string) (int, bool) {
	addr, ok := m.index[name]
	return addr, ok
}

// ReadAddr returns a copy of the value at addr, or false if addr does not
// hold a variable.
func (m *Memory) ReadAddr(addr int) (Value, bool) {
	if addr < 0 || addr >= m.n {
		return Value{}, false
	}
	return m.cells[addr].Value.clone(), true
}

// Read returns a copy of the named variable, or false if it was never
// written.
func (m *Memory) Read(name string) (Value, bool) {
	addr, ok := m.index[name]
	if !ok {
		return Value{}, false
	}
	return m.cells[addr].Value.clone(), true
}

// WriteAddr overwrites the value at addr. It returns false if addr does not
// hold a variable.
func (m *Memory) WriteAddr(addr int, v Value) bool {
	if addr < 0 || addr >= m.n {
		return false
	}
	m.cells[addr].Value = v.clone()
	return true
}

// Write stores v under name, allocating a new cell the first time the name
// is written.
func (m *Memory) Write(name string, v Value) {
	if addr, ok := m.index[name]; ok {
		m.cells[addr].Value = v.clone()
		return
	}
	if m.n == len(m.cells) {
		m.grow()
	}
	addr := m.n
	m.cells[addr] = Cell{Name: strings.Clone(name), Value: v.clone()}
	m.index[m.cells[addr].Name] = addr
	m.n++
}

// grow doubles the backing array. Existing cells keep their addresses.
func (m *Memory) grow() {
	cells := make([]Cell, 2*len(m.cells))
	copy(cells, m.cells[:m.n])
	m.cells = cells
}

// Cells returns a copy of the cells in use, in address order.
func (m *Memory) Cells() []Cell {
	out := make([]Cell, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = Cell{Name: m.cells[i].Name, Value: m.cells[i].Value.clone()}
	}
	return out
}

// Print writes a dump of the memory contents to w.
func (m *Memory) Print(w io.Writer) {
	fmt.Fprintln(w, "**MEMORY PRINT**")
	fmt.Fprintf(w, "Capacity: %d\n", m.Capacity())
	fmt.Fprintf(w, "Num values: %d\n", m.n)
	fmt.Fprintln(w, "Contents:")

	for i := 0; i < m.n; i++ {
		c := m.cells[i]
		fmt.Fprintf(w, " %d: %s, ", i, c.Name)
		switch c.Value.kind {
		case KindInt:
			fmt.Fprintf(w, "int, %d", c.Value.i)
		case KindReal:
			fmt.Fprintf(w, "real, %f", c.Value.d)
		case KindStr:
			fmt.Fprintf(w, "str, '%s'", c.Value.s)
		case KindPtr:
			fmt.Fprintf(w, "ptr, %d", c.Value.i)
		case KindBool:
			fmt.Fprintf(w, "boolean, %s", c.Value.Display())
		default:
			fmt.Fprint(w, "none, None")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "**END PRINT**")
}
