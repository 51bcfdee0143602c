// Package ptr has helpers for optional values carried as pointers.
package ptr

// New returns a pointer to v.
func New[T any](v T) *T { return &v }

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
