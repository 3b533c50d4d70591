package cybersource

// FieldSet is an insertion-ordered set of form fields. Every value is a
// string: callers stringify numbers and booleans before insertion. The
// gateway recomputes signatures over field values in a fixed order, so
// iteration order has to be stable.
type FieldSet struct {
	names  []string
	values map[string]string
}

// NewFieldSet creates an empty field set
func NewFieldSet() *FieldSet {
	return &FieldSet{
		values: make(map[string]string),
	}
}

// Set inserts or overwrites a field. Overwriting keeps the position of
// the first insertion.
func (fs *FieldSet) Set(name, value string) {
	if _, ok := fs.values[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.values[name] = value
}

// Get returns the value for name, or "" when absent
func (fs *FieldSet) Get(name string) string {
	return fs.values[name]
}

// Has reports whether name is present
func (fs *FieldSet) Has(name string) bool {
	_, ok := fs.values[name]
	return ok
}

// Names returns the field names in insertion order
func (fs *FieldSet) Names() []string {
	out := make([]string, len(fs.names))
	copy(out, fs.names)
	return out
}

// Len returns the number of fields
func (fs *FieldSet) Len() int {
	return len(fs.names)
}

// Pairs returns name/value pairs in insertion order
func (fs *FieldSet) Pairs() []FieldPair {
	out := make([]FieldPair, 0, len(fs.names))
	for _, name := range fs.names {
		out = append(out, FieldPair{Name: name, Value: fs.values[name]})
	}
	return out
}

// FieldPair is one rendered form field
type FieldPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
