package pathmatch

// Matcher stores an ordered list of (pattern, producer) pairs and resolves
// a request path to the producer of the first matching pattern. Patterns
// are tried strictly in registration order; a later, more specific pattern
// never beats an earlier, looser one.
type Matcher[R any] struct {
	delimiter     string
	caseSensitive bool
	entries       []matcherEntry[R]
}

type matcherEntry[R any] struct {
	pattern    string
	components []Component
	producer   R
}

// Option configures a Matcher.
type Option func(*matcherOptions)

type matcherOptions struct {
	delimiter     string
	caseSensitive bool
}

// WithDelimiter changes the segment delimiter (default "/").
func WithDelimiter(d string) Option {
	return func(o *matcherOptions) { o.delimiter = d }
}

// CaseInsensitive makes constant components compare case-insensitively.
func CaseInsensitive() Option {
	return func(o *matcherOptions) { o.caseSensitive = false }
}

// NewMatcher creates an empty matcher.
func NewMatcher[R any](opts ...Option) *Matcher[R] {
	options := matcherOptions{delimiter: DefaultDelimiter, caseSensitive: true}
	for _, opt := range opts {
		opt(&options)
	}
	return &Matcher[R]{
		delimiter:     options.delimiter,
		caseSensitive: options.caseSensitive,
	}
}

// Match parses the pattern string and appends it with its producer.
func (m *Matcher[R]) Match(pattern string, producer R) {
	m.entries = append(m.entries, matcherEntry[R]{
		pattern:    pattern,
		components: ParsePattern(pattern, m.delimiter),
		producer:   producer,
	})
}

// Len returns the number of registered patterns.
func (m *Matcher[R]) Len() int { return len(m.entries) }

// Parse walks patterns in insertion order and returns the producer of the
// first one that matches the path, along with any bound parameters.
func (m *Matcher[R]) Parse(path Path) (R, Params, bool) {
	segments := path.Components()
	for _, entry := range m.entries {
		if params, ok := MatchComponents(entry.components, segments, m.caseSensitive); ok {
			return entry.producer, params, true
		}
	}
	var zero R
	return zero, Params{}, false
}
