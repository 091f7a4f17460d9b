package bridge

import "fmt"

// ResolveArgs matches positional and keyword arguments against params and
// fills in defaults, returning one value per param.
func ResolveArgs(params []Param, args []Value, kwargs map[string]Value) ([]Value, error) {
	if len(args) > len(params) {
		return nil, fmt.Errorf("%w: takes at most %d arguments (%d given)", ErrInvalidArgument, len(params), len(args))
	}

	out := make([]Value, len(params))
	set := make([]bool, len(params))
	for i, v := range args {
		out[i] = v
		set[i] = true
	}

	for name, v := range kwargs {
		idx := -1
		for i, p := range params {
			if p.Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: unexpected keyword argument %q", ErrInvalidArgument, name)
		}
		if set[idx] {
			return nil, fmt.Errorf("%w: got multiple values for argument %q", ErrInvalidArgument, name)
		}
		out[idx] = v
		set[idx] = true
	}

	for i, p := range params {
		if set[i] {
			continue
		}
		if p.Required {
			return nil, fmt.Errorf("%w: missing required argument %q", ErrInvalidArgument, p.Name)
		}
		out[i] = p.Default
	}

	return out, nil
}
