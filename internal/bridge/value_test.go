package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	for _, v := range []Value{2.0, float32(2), 2, int64(2), json.Number("2"), true} {
		f, err := Float(v)
		require.NoError(t, err)
		if v == true {
			assert.Equal(t, 1.0, f)
			continue
		}
		assert.Equal(t, 2.0, f)
	}

	_, err := Float("2")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Float(json.Number("x"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInt(t *testing.T) {
	i, err := Int(-3.0)
	require.NoError(t, err)
	assert.Equal(t, -3, i)

	_, err = Int(1.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRepr(t *testing.T) {
	r := newTestRegistry(t)
	obj, err := r.New("Counter", []Value{1.0}, nil)
	require.NoError(t, err)

	assert.Equal(t, "None", Repr(nil))
	assert.Equal(t, "True", Repr(true))
	assert.Equal(t, "[Counter(1), 2.5, None]", Repr([]Value{obj, 2.5, nil}))

	plain, err := r.New("Labeled", []Value{"x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "<Labeled object>", Repr(plain))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "None", TypeName(nil))
	assert.Equal(t, "float", TypeName(1.0))
	assert.Equal(t, "list", TypeName([]Value{}))
	assert.Equal(t, "str", TypeName("s"))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCodeSuccess, CodeOf(nil))
	assert.Equal(t, ErrorCodeUnknownHandle, CodeOf(fmt.Errorf("get: %w", ErrUnknownHandle)))
	assert.Equal(t, ErrorCodeIndexOutOfRange, CodeOf(fmt.Errorf("x: %w", ErrIndexOutOfRange)))
	assert.Equal(t, ErrorCodeUnknownError, CodeOf(errors.New("boom")))

	wrapped := WrapError(ErrInvalidArgument, "bad call").WithContext("name", "add")
	assert.Equal(t, ErrorCodeInvalidArgument, wrapped.Code)
	assert.Equal(t, "bad call: invalid argument", wrapped.Error())
	assert.Equal(t, "add", wrapped.Context["name"])
	assert.ErrorIs(t, wrapped, ErrInvalidArgument)

	coded := NewError(ErrorCodeInternalError, "internal", nil)
	assert.Equal(t, ErrorCodeInternalError, CodeOf(fmt.Errorf("wrap: %w", coded)))
}
