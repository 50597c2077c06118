package lines

// Table is an ordered string table. Keys keep their first-insertion
// position; setting an existing key overwrites its value in place.
type Table struct {
	keys []string
	vals map[string]string
}

// NewTable returns an empty [Table].
func NewTable() *Table {
	return &Table{vals: make(map[string]string)}
}

// Set stores value under key, appending the key on first insertion.
func (t *Table) Set(key, value string) {
	if _, ok := t.vals[key]; !ok {
		t.keys = append(t.keys, key)
	}

	t.vals[key] = value
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.vals[key]

	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.vals[key]

	return ok
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)

	return keys
}
