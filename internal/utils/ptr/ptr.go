// Package ptr builds pointers to literal values, for optional fields such
// as manual station coordinates.
package ptr

// Float64 returns a pointer to f.
func Float64(f float64) *float64 {
	return &f
}
