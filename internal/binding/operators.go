package binding

import (
	"fmt"

	"github.com/zeusync/geombridge/internal/bridge"
)

// arithmetic binds the vector operator set for one value type.
type arithmetic[T any] struct {
	class      string // class of the values +, -, * and / produce
	load       func(bridge.Value) (T, error)
	store      func(*bridge.Object, T) error
	add, sub   func(a, b T) T
	scale, div func(v T, s float32) T
	reciprocal func(v T, s float32) T
}

func unsupported(op bridge.Op, lhs, rhs bridge.Value) error {
	return fmt.Errorf("%w: %s %s %s", bridge.ErrUnsupportedOperand, bridge.TypeName(lhs), op, bridge.TypeName(rhs))
}

func (a arithmetic[T]) wrap(r *bridge.Registry, v T) (bridge.Value, error) {
	return r.Wrap(a.class, &v)
}

func (a arithmetic[T]) operands(op bridge.Op, self *bridge.Object, other bridge.Value) (T, T, error) {
	lhs, err := a.load(self)
	if err != nil {
		return lhs, lhs, unsupported(op, self, other)
	}
	rhs, err := a.load(other)
	if err != nil {
		return lhs, rhs, unsupported(op, self, other)
	}
	return lhs, rhs, nil
}

func (a arithmetic[T]) scalarOperands(op bridge.Op, self *bridge.Object, other bridge.Value) (T, float32, error) {
	v, err := a.load(self)
	if err != nil {
		return v, 0, unsupported(op, self, other)
	}
	if _, isObject := other.(*bridge.Object); isObject {
		return v, 0, unsupported(op, self, other)
	}
	s, err := bridge.Float32(other)
	if err != nil {
		return v, 0, unsupported(op, self, other)
	}
	return v, s, nil
}

func (a arithmetic[T]) binary(op bridge.Op, fn func(T, T) T) bridge.Operator {
	return func(r *bridge.Registry, self *bridge.Object, other bridge.Value) (bridge.Value, error) {
		lhs, rhs, err := a.operands(op, self, other)
		if err != nil {
			return nil, err
		}
		return a.wrap(r, fn(lhs, rhs))
	}
}

func (a arithmetic[T]) binaryInPlace(op bridge.Op, fn func(T, T) T) bridge.Operator {
	return func(_ *bridge.Registry, self *bridge.Object, other bridge.Value) (bridge.Value, error) {
		lhs, rhs, err := a.operands(op, self, other)
		if err != nil {
			return nil, err
		}
		if err := a.store(self, fn(lhs, rhs)); err != nil {
			return nil, err
		}
		return self, nil
	}
}

func (a arithmetic[T]) scalar(op bridge.Op, fn func(T, float32) T) bridge.Operator {
	return func(r *bridge.Registry, self *bridge.Object, other bridge.Value) (bridge.Value, error) {
		v, s, err := a.scalarOperands(op, self, other)
		if err != nil {
			return nil, err
		}
		return a.wrap(r, fn(v, s))
	}
}

func (a arithmetic[T]) scalarInPlace(op bridge.Op, fn func(T, float32) T) bridge.Operator {
	return func(_ *bridge.Registry, self *bridge.Object, other bridge.Value) (bridge.Value, error) {
		v, s, err := a.scalarOperands(op, self, other)
		if err != nil {
			return nil, err
		}
		if err := a.store(self, fn(v, s)); err != nil {
			return nil, err
		}
		return self, nil
	}
}

func (a arithmetic[T]) operators() map[bridge.Op]bridge.Operator {
	return map[bridge.Op]bridge.Operator{
		bridge.OpAdd:  a.binary(bridge.OpAdd, a.add),
		bridge.OpSub:  a.binary(bridge.OpSub, a.sub),
		bridge.OpMul:  a.scalar(bridge.OpMul, a.scale),
		bridge.OpDiv:  a.scalar(bridge.OpDiv, a.div),
		bridge.OpIAdd: a.binaryInPlace(bridge.OpIAdd, a.add),
		bridge.OpISub: a.binaryInPlace(bridge.OpISub, a.sub),
		bridge.OpIMul: a.scalarInPlace(bridge.OpIMul, a.scale),
		bridge.OpIDiv: a.scalarInPlace(bridge.OpIDiv, a.div),
	}
}

// reflected covers scalar * vector and scalar / vector.
func (a arithmetic[T]) reflected() map[bridge.Op]bridge.Operator {
	return map[bridge.Op]bridge.Operator{
		bridge.OpMul: a.scalar(bridge.OpMul, a.scale),
		bridge.OpDiv: a.scalar(bridge.OpDiv, a.reciprocal),
	}
}

// withEquality adds == and != to ops. Operands that cannot be loaded as T
// compare unequal.
func withEquality[T any](ops map[bridge.Op]bridge.Operator, load func(bridge.Value) (T, error), equal func(a, b T) bool) map[bridge.Op]bridge.Operator {
	if ops == nil {
		ops = make(map[bridge.Op]bridge.Operator, 2)
	}
	eq := func(self *bridge.Object, other bridge.Value) bool {
		lhs, err := load(self)
		if err != nil {
			return false
		}
		rhs, err := load(other)
		if err != nil {
			return false
		}
		return equal(lhs, rhs)
	}
	ops[bridge.OpEq] = func(_ *bridge.Registry, self *bridge.Object, other bridge.Value) (bridge.Value, error) {
		return eq(self, other), nil
	}
	ops[bridge.OpNe] = func(_ *bridge.Registry, self *bridge.Object, other bridge.Value) (bridge.Value, error) {
		return !eq(self, other), nil
	}
	return ops
}

// str renders the value behind ptr, a *T.
func str[T interface{ String() string }](ptr any) string {
	return (*ptr.(*T)).String()
}
