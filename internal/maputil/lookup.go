// Package maputil provides helpers for walking the generic
// map[string]interface{} trees produced by decoding JSON configuration.
package maputil

// Lookup follows keys through nested maps and returns the value found at
// the end of the path. It returns false as soon as a key is missing or an
// intermediate value is not a map.
func Lookup(m map[string]interface{}, keys ...string) (interface{}, bool) {
	if len(keys) == 0 || m == nil {
		return nil, false
	}

	current := m

	for i, k := range keys {
		v, ok := current[k]
		if !ok {
			return nil, false
		}

		if i == len(keys)-1 {
			return v, true
		}

		next, ok := v.(map[string]interface{})
		if !ok {
			return nil, false
		}

		current = next
	}

	return nil, false
}

// Bool returns the boolean found at keys. Missing keys and non-boolean
// values yield false with ok set to false.
func Bool(m map[string]interface{}, keys ...string) (value, ok bool) {
	v, found := Lookup(m, keys...)
	if !found {
		return false, false
	}

	b, isBool := v.(bool)

	return b, isBool
}
