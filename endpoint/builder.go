package endpoint

// Builder accumulates endpoint declarations for batch registration.
// Single elements, optional elements, and conditional branches all fold
// into the flat list.
type Builder struct {
	endpoints []*Endpoint
}

// Add appends an endpoint. Nil endpoints are ignored, which lets callers
// fold optional declarations into one chain.
func (b *Builder) Add(e *Endpoint) *Builder {
	if e != nil {
		b.endpoints = append(b.endpoints, e)
	}
	return b
}

// AddIf appends an endpoint only when cond holds.
func (b *Builder) AddIf(cond bool, e *Endpoint) *Builder {
	if cond {
		b.Add(e)
	}
	return b
}

// Build returns the accumulated list.
func (b *Builder) Build() []*Endpoint {
	out := make([]*Endpoint, len(b.endpoints))
	copy(out, b.endpoints)
	return out
}
