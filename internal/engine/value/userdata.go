package value

// Userdata wraps a host object, such as an open file, so that it can travel
// through the runtime as a Value. Its behaviour is defined entirely by its
// metatable.
type Userdata struct {
	Data      interface{}
	Metatable *Table
}

func NewUserdata(data interface{}, metatable *Table) *Userdata {
	return &Userdata{
		Data:      data,
		Metatable: metatable,
	}
}

func (*Userdata) Type() Type { return TypeUserdata }
