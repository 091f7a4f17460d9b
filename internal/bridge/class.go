package bridge

// Op names a host operator.
type Op string

const (
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"

	OpIAdd Op = "+="
	OpISub Op = "-="
	OpIMul Op = "*="
	OpIDiv Op = "/="
)

// Param describes one named argument. A Param that is not Required takes
// Default when the host leaves it out.
type Param struct {
	Name     string
	Default  Value
	Required bool
}

// Constructor is one overload of a class constructor. New receives the
// arguments already resolved against Params and returns a pointer to the
// new Go value. Returning ErrInvalidArgument lets the next overload try.
type Constructor struct {
	Params []Param
	New    func(r *Registry, args []Value) (any, error)
}

// Field is a host attribute. Set is nil for read-only attributes.
type Field struct {
	Get func(r *Registry, self *Object) (Value, error)
	Set func(r *Registry, self *Object, v Value) error
}

// Method is a host-callable method. Overloads share one Method and tell
// their arguments apart inside Call.
type Method struct {
	Params []Param
	Call   func(r *Registry, self *Object, args []Value) (Value, error)
}

// Operator implements self <op> other. Reflected operators receive the
// object on the right-hand side as self.
type Operator func(r *Registry, self *Object, other Value) (Value, error)

// Class describes how a Go value type is exposed to the host.
type Class struct {
	Name string
	// Base names a registered class whose fields, methods and operators
	// this class inherits when it does not define its own.
	Base string
	Doc  string

	Constructors []Constructor
	Fields       map[string]Field
	Methods      map[string]Method
	Operators    map[Op]Operator
	Reflected    map[Op]Operator
	Str          func(ptr any) string
}
