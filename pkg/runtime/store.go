package runtime

import "sort"

// CellStore is one procedure activation's numbered storage. Activations
// never share a store: each call allocates a fresh one seeded with the
// output cell and drops it on return.
type CellStore struct {
	cells map[int]Value
}

// NewCellStore allocates a store with the output cell pre-seeded to the
// activation's default value.
func NewCellStore(outputDefault Value) *CellStore {
	return &CellStore{cells: map[int]Value{OutputCell: outputDefault}}
}

// OutputCell is the reserved index holding an activation's return value.
const OutputCell = -1

// Get returns the cell's current value; ok is false for a cell never
// written in this activation.
func (s *CellStore) Get(index int) (Value, bool) {
	v, ok := s.cells[index]
	return v, ok
}

// Set writes a cell. Assignment is the language's only mutation primitive.
func (s *CellStore) Set(index int, value Value) {
	s.cells[index] = value
}

// Output returns the activation's result, the output cell's final value.
func (s *CellStore) Output() Value {
	return s.cells[OutputCell]
}

// Indices returns the written cell indices in sorted order (useful for
// determinism in tests).
func (s *CellStore) Indices() []int {
	out := make([]int, 0, len(s.cells))
	for i := range s.cells {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Params is an activation's immutable parameter binding. Parameters are
// bound positionally at call time and never reassigned.
type Params struct {
	values map[string]Value
}

// BindParams zips names with values. The caller checks arity first.
func BindParams(names []string, values []Value) Params {
	bound := make(map[string]Value, len(names))
	for i, name := range names {
		bound[name] = values[i]
	}
	return Params{values: bound}
}

// Get looks a parameter up by exact name.
func (p Params) Get(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}
