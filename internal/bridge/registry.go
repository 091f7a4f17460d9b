package bridge

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

type conversionKey struct {
	from, to string
}

// Registry holds every class exposed to the host together with the implicit
// conversions between them. It is safe for concurrent use; classes must not
// be modified after registration.
type Registry struct {
	mu          sync.RWMutex
	classes     map[string]*Class
	conversions map[conversionKey]func(ptr any) any
}

func NewRegistry() *Registry {
	return &Registry{
		classes:     make(map[string]*Class),
		conversions: make(map[conversionKey]func(ptr any) any),
	}
}

// Register adds class. Names are unique.
func (r *Registry) Register(class *Class) error {
	if class == nil || class.Name == "" {
		return fmt.Errorf("%w: class without a name", ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[class.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, class.Name)
	}
	r.classes[class.Name] = class
	return nil
}

// Class looks up a class by name.
func (r *Registry) Class(name string) (*Class, error) {
	r.mu.RLock()
	c := r.classes[name]
	r.mu.RUnlock()
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return c, nil
}

// Classes returns the sorted names of all registered classes.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterConversion lets an instance of from stand in wherever to is
// expected. fn receives the source pointer and returns a new pointer of the
// target type; the source is never aliased.
func (r *Registry) RegisterConversion(from, to string, fn func(ptr any) any) {
	r.mu.Lock()
	r.conversions[conversionKey{from: from, to: to}] = fn
	r.mu.Unlock()
}

func (r *Registry) ImplicitlyConvertible(from, to string) bool {
	if from == to {
		return true
	}
	r.mu.RLock()
	_, ok := r.conversions[conversionKey{from: from, to: to}]
	r.mu.RUnlock()
	return ok
}

// Wrap creates a new object of the named class around ptr.
func (r *Registry) Wrap(name string, ptr any) (*Object, error) {
	c, err := r.Class(name)
	if err != nil {
		return nil, err
	}
	return NewObject(c, ptr), nil
}

// MustWrap is Wrap for class names registered by the caller itself.
func (r *Registry) MustWrap(name string, ptr any) *Object {
	obj, err := r.Wrap(name, ptr)
	if err != nil {
		panic(err)
	}
	return obj
}

// Convert returns v as an instance of class to. Instances of to are returned
// unchanged; otherwise a registered conversion produces a new object.
func (r *Registry) Convert(v Value, to string) (*Object, error) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrNotConvertible, to, TypeName(v))
	}
	if obj.class.Name == to {
		return obj, nil
	}

	r.mu.RLock()
	fn := r.conversions[conversionKey{from: obj.class.Name, to: to}]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrNotConvertible, to, obj.class.Name)
	}
	return r.Wrap(to, fn(obj.ptr))
}

// IsInstance reports whether v is an object of class name or of a class
// derived from it.
func (r *Registry) IsInstance(v Value, name string) bool {
	obj, ok := v.(*Object)
	if !ok {
		return false
	}
	for c := obj.class; c != nil; c = r.base(c) {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (r *Registry) base(c *Class) *Class {
	if c.Base == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[c.Base]
}

// New constructs an instance of the named class, trying each constructor
// overload in order.
func (r *Registry) New(name string, args []Value, kwargs map[string]Value) (*Object, error) {
	c, err := r.Class(name)
	if err != nil {
		return nil, err
	}
	if len(c.Constructors) == 0 {
		return nil, fmt.Errorf("%w: %s cannot be instantiated", ErrInvalidArgument, name)
	}

	var lastErr error
	for _, ctor := range c.Constructors {
		resolved, err := ResolveArgs(ctor.Params, args, kwargs)
		if err != nil {
			lastErr = err
			continue
		}
		ptr, err := ctor.New(r, resolved)
		if err != nil {
			if isArgumentError(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return NewObject(c, ptr), nil
	}

	return nil, fmt.Errorf("%s.__init__: %w", name, lastErr)
}

// GetAttr reads a field, looking through base classes.
func (r *Registry) GetAttr(obj *Object, name string) (Value, error) {
	for c := obj.class; c != nil; c = r.base(c) {
		if f, ok := c.Fields[name]; ok {
			return f.Get(r, obj)
		}
	}
	return nil, fmt.Errorf("%w: %s has no attribute %q", ErrUnknownAttribute, obj.class.Name, name)
}

// SetAttr writes a field, looking through base classes.
func (r *Registry) SetAttr(obj *Object, name string, v Value) error {
	for c := obj.class; c != nil; c = r.base(c) {
		if f, ok := c.Fields[name]; ok {
			if f.Set == nil {
				return fmt.Errorf("%w: %s.%s is read-only", ErrUnknownAttribute, obj.class.Name, name)
			}
			return f.Set(r, obj, v)
		}
	}
	return fmt.Errorf("%w: %s has no attribute %q", ErrUnknownAttribute, obj.class.Name, name)
}

// Call invokes a method, looking through base classes.
func (r *Registry) Call(obj *Object, name string, args []Value, kwargs map[string]Value) (Value, error) {
	for c := obj.class; c != nil; c = r.base(c) {
		m, ok := c.Methods[name]
		if !ok {
			continue
		}
		resolved, err := ResolveArgs(m.Params, args, kwargs)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", obj.class.Name, name, err)
		}
		return m.Call(r, obj, resolved)
	}
	return nil, fmt.Errorf("%w: %s has no method %q", ErrUnknownMethod, obj.class.Name, name)
}

// Operate evaluates lhs <op> rhs. The left operand's operators are tried
// first, then the right operand's reflected operators.
func (r *Registry) Operate(op Op, lhs, rhs Value) (Value, error) {
	if obj, ok := lhs.(*Object); ok {
		if fn := r.operator(obj.class, op, false); fn != nil {
			return fn(r, obj, rhs)
		}
	}
	if obj, ok := rhs.(*Object); ok {
		if fn := r.operator(obj.class, op, true); fn != nil {
			return fn(r, obj, lhs)
		}
	}
	return nil, fmt.Errorf("%w: %s %s %s", ErrUnsupportedOperand, TypeName(lhs), op, TypeName(rhs))
}

func (r *Registry) operator(c *Class, op Op, reflected bool) Operator {
	for ; c != nil; c = r.base(c) {
		table := c.Operators
		if reflected {
			table = c.Reflected
		}
		if fn, ok := table[op]; ok {
			return fn
		}
	}
	return nil
}

func isArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrNotConvertible)
}
