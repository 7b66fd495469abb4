package runtime

import (
	"sort"

	"floop/interpreter-go/pkg/ast"
)

// Registry is the flat global procedure namespace. Declarations are recorded
// in a single top-to-bottom pass before any call runs; lookups happen lazily
// at call time, so forward and mutual recursion work as long as the name is
// declared by the time the call executes.
type Registry struct {
	procs map[string]*ast.Declaration
}

func NewRegistry() *Registry {
	return &Registry{procs: make(map[string]*ast.Declaration)}
}

// Declare records a procedure. Re-declaring a name overwrites the previous
// entry; the language raises no duplicate-declaration diagnostic.
func (r *Registry) Declare(decl *ast.Declaration) {
	r.procs[decl.Name] = decl
}

// Lookup resolves a name at call time.
func (r *Registry) Lookup(name string) (*ast.Declaration, bool) {
	decl, ok := r.procs[name]
	return decl, ok
}

// Names returns the declared procedure names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.procs))
	for name := range r.procs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
