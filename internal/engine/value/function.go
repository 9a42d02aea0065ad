package value

// LuaFn is the native shape of every callable. It always yields a result
// sequence, which may be empty.
type LuaFn func(...Value) ([]Value, error)

type Function struct {
	Name     string
	Callable LuaFn
}

func NewFunction(name string, callable LuaFn) *Function {
	return &Function{
		Name:     name,
		Callable: callable,
	}
}

func (*Function) Type() Type { return TypeFunction }

func (f *Function) String() string {
	return "function " + f.Name
}
