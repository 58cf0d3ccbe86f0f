package save

// Data is the generic key/value payload carried by level save and load
// events. The save subsystem owns it; events and script handlers only hold
// a borrowed reference for the duration of a single dispatch. Serialization
// to disk happens outside this package.
//
// Keys keep insertion order so repeated saves produce stable output.
type Data struct {
	keys   []string
	values map[string]string
}

// New creates an empty store
func New() *Data {
	return &Data{values: make(map[string]string)}
}

// Set stores value under key, appending the key on first use
func (d *Data) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value for key and whether it is present
func (d *Data) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present
func (d *Data) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Delete removes key if present
func (d *Data) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored pairs
func (d *Data) Len() int {
	return len(d.values)
}

// Each visits pairs in insertion order until fn returns false
func (d *Data) Each(fn func(key, value string) bool) {
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}
