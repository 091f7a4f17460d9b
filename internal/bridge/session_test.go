package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/geombridge/internal/core/observability/log"
)

func TestSession_Do(t *testing.T) {
	s := NewSession(newTestRegistry(t), log.NewNop())
	defer s.Close()

	assert.NotEmpty(t, s.ID())

	v, err := s.Do(Request{Action: ActionNew, Class: "Counter", Args: []Value{1.0}})
	require.NoError(t, err)
	obj := v.(*Object)

	v, err = s.Do(Request{Action: ActionCall, Target: obj, Name: "add", Kwargs: map[string]Value{"by": 2.0}})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = s.Do(Request{Action: ActionSetAttr, Target: obj, Name: "n", Args: []Value{10.0}})
	require.NoError(t, err)

	v, err = s.Do(Request{Action: ActionGetAttr, Target: obj, Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	v, err = s.Do(Request{Action: ActionOperate, Name: string(OpAdd), Target: obj, Args: []Value{1.0}})
	require.NoError(t, err)
	assert.Equal(t, "Counter(11)", Repr(v))

	v, err = s.Do(Request{Action: ActionStr, Target: obj})
	require.NoError(t, err)
	assert.Equal(t, "Counter(10)", v)

	v, err = s.Do(Request{Action: ActionClasses})
	require.NoError(t, err)
	assert.Equal(t, []Value{"Counter", "Labeled"}, v)

	assert.Equal(t, uint64(7), s.Calls())
}

func TestSession_Release(t *testing.T) {
	s := NewSession(newTestRegistry(t), nil)

	handle := s.Heap().Put(s.Registry().MustWrap("Counter", &counter{}))
	_, err := s.Do(Request{Action: ActionRelease, Handle: handle})
	require.NoError(t, err)

	_, err = s.Do(Request{Action: ActionRelease, Handle: handle})
	assert.ErrorIs(t, err, ErrUnknownHandle)

	_, err = s.Do(Request{Action: ActionRelease})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSession_Errors(t *testing.T) {
	s := NewSession(newTestRegistry(t), log.NewNop())

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown action", Request{Action: "explode"}, ErrInvalidArgument},
		{"getattr without target", Request{Action: ActionGetAttr, Target: 1.0, Name: "n"}, ErrInvalidArgument},
		{"setattr arity", Request{Action: ActionSetAttr, Target: s.Registry().MustWrap("Counter", &counter{}), Name: "n"}, ErrInvalidArgument},
		{"operator arity", Request{Action: ActionOperate, Name: "+", Target: 1.0}, ErrInvalidArgument},
		{"unknown class", Request{Action: ActionNew, Class: "Nope"}, ErrUnknownClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Do(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
