package lexer

// ClassRegistry records class names declared with `class <Name>`. It only
// grows, and a name is known only to tokens lexed after its declaration.
type ClassRegistry struct {
	names map[string]struct{}
	order []string
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{names: map[string]struct{}{}}
}

func (r *ClassRegistry) Add(name string) {
	if _, ok := r.names[name]; ok {
		return
	}
	r.names[name] = struct{}{}
	r.order = append(r.order, name)
}

func (r *ClassRegistry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Names returns the registered class names in declaration order.
func (r *ClassRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *ClassRegistry) Len() int { return len(r.order) }
