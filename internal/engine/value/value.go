// Package value defines the runtime's value model. Every value that translated
// code can observe implements Value.
package value

// Value is any runtime value. Exactly one Type applies to a value.
type Value interface {
	Type() Type
}
