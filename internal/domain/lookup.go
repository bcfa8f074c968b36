package domain

// FieldSet is a static allow-list of lookup keys and the column each maps to.
type FieldSet map[string]string

// Column returns the column bound to key.
func (f FieldSet) Column(key string) (string, bool) {
	col, ok := f[key]
	return col, ok
}

// Lookup is a single key/value query supplied by a client, e.g. ?username=jdoe.
type Lookup struct {
	Key   string
	Value string
}

// LookupKeyID is the key that routes a lookup to a primary-key fetch.
const LookupKeyID = "id"
