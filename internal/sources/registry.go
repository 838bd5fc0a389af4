package sources

// Registry is the static list of sources grouped by category. Registration
// order matters: when two sources produce an offer with the same name, the
// earliest-registered source owns it after dedupe.
type Registry struct {
	byCategory map[Category][]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCategory: make(map[Category][]Source),
	}
}

// Add appends a source to a category. Not safe for concurrent use;
// registration happens once at startup.
func (r *Registry) Add(category Category, src Source) {
	r.byCategory[category] = append(r.byCategory[category], src)
}

// Sources returns the category's sources in registration order.
func (r *Registry) Sources(category Category) []Source {
	return r.byCategory[category]
}

// Names returns the source names of a category, for introspection.
func (r *Registry) Names(category Category) []string {
	srcs := r.byCategory[category]
	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.Name()
	}
	return names
}
