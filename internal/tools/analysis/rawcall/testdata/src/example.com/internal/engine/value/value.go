package value

type Value interface{}

type Function struct {
	Name     string
	Callable func(...Value) ([]Value, error)
}

type Other struct {
	Callable func(...Value) ([]Value, error)
}
