// Package pathmatch provides structural request paths, path pattern
// components, and an ordered first-match pattern matcher.
package pathmatch

import "strings"

// DefaultDelimiter separates path components.
const DefaultDelimiter = "/"

// Path is an ordered sequence of non-empty components derived from a
// delimited string. Two paths are equal iff their stored strings are equal.
type Path struct {
	raw        string
	delimiter  string
	components []string
}

// New parses s into a Path using the default delimiter.
func New(s string) Path {
	return NewDelimited(s, DefaultDelimiter)
}

// NewDelimited parses s into a Path splitting on the given delimiter.
// Empty segments are discarded.
func NewDelimited(s, delimiter string) Path {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	var components []string
	for _, part := range strings.Split(s, delimiter) {
		if part != "" {
			components = append(components, part)
		}
	}
	return Path{raw: s, delimiter: delimiter, components: components}
}

// String returns the original string the path was parsed from.
func (p Path) String() string { return p.raw }

// Components returns the path's components in order.
func (p Path) Components() []string { return p.components }

// Count returns the number of components.
func (p Path) Count() int { return len(p.components) }

// IsEmpty reports whether the path has no components.
func (p Path) IsEmpty() bool { return len(p.components) == 0 }

// Last returns the final component, or "" for an empty path.
func (p Path) Last() string {
	if len(p.components) == 0 {
		return ""
	}
	return p.components[len(p.components)-1]
}

// Extension returns the extension of the last component (without the dot),
// or "" when the last component has none.
func (p Path) Extension() string {
	last := p.Last()
	if idx := strings.LastIndex(last, "."); idx > 0 && idx < len(last)-1 {
		return last[idx+1:]
	}
	return ""
}

// Stem returns the last component with its extension removed.
func (p Path) Stem() string {
	last := p.Last()
	if idx := strings.LastIndex(last, "."); idx > 0 {
		return last[:idx]
	}
	return last
}

// HasPrefix reports whether the path's components start with prefix's
// components.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.components) > len(p.components) {
		return false
	}
	for i, c := range prefix.components {
		if p.components[i] != c {
			return false
		}
	}
	return true
}

// HasSuffix reports whether the path's components end with suffix's
// components.
func (p Path) HasSuffix(suffix Path) bool {
	offset := len(p.components) - len(suffix.components)
	if offset < 0 {
		return false
	}
	for i, c := range suffix.components {
		if p.components[offset+i] != c {
			return false
		}
	}
	return true
}

// RemovingFirst returns a copy of the path without its first component.
func (p Path) RemovingFirst() Path {
	if len(p.components) == 0 {
		return p
	}
	return p.rebuild(p.components[1:])
}

// RemovingLast returns a copy of the path without its last component.
func (p Path) RemovingLast() Path {
	if len(p.components) == 0 {
		return p
	}
	return p.rebuild(p.components[:len(p.components)-1])
}

// Appending returns a copy of the path with the given components appended.
// Empty components are discarded.
func (p Path) Appending(components ...string) Path {
	merged := make([]string, 0, len(p.components)+len(components))
	merged = append(merged, p.components...)
	for _, c := range components {
		if c != "" {
			merged = append(merged, c)
		}
	}
	return p.rebuild(merged)
}

func (p Path) rebuild(components []string) Path {
	delimiter := p.delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return Path{
		raw:        strings.Join(components, delimiter),
		delimiter:  delimiter,
		components: components,
	}
}

// Equal reports whether two paths are equal. Equality is defined over the
// stored string, not the component list.
func (p Path) Equal(other Path) bool { return p.raw == other.raw }
