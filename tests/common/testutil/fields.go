//go:build unit || e2e

package testutil

// Field sets (or, for nil, removes) a key in a request map.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
