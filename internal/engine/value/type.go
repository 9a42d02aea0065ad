package value

//go:generate stringer -type=Type -linecomment

type Type uint8

const (
	TypeInvalid  Type = iota // <invalid>
	TypeNil                  // nil
	TypeBoolean              // boolean
	TypeNumber               // number
	TypeString               // string
	TypeFunction             // function
	TypeUserdata             // userdata
	TypeTable                // table
)
