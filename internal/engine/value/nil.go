package value

const (
	// Nil is the constant value nil.
	Nil = nilValue(0)
)

var _ Value = (*nilValue)(nil)

type nilValue uint8

func (nilValue) Type() Type     { return TypeNil }
func (nilValue) String() string { return "nil" }

// IsNil reports whether v is the absence-marker. A Go nil interface counts as absent.
func IsNil(v Value) bool {
	return v == nil || v == Nil
}
