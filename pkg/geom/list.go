package geom

import (
	"fmt"
	"strings"
)

// Element is any geometry value that can live in a List.
type Element interface {
	comparable
	fmt.Stringer
}

// List is a homogeneous, index-addressable sequence of geometry values.
// Negative indices count from the end. A List is not safe for concurrent
// mutation.
type List[T Element] struct {
	items []T
}

type (
	Vector2DList  = List[Vector2D]
	TransformList = List[Transform]
)

func NewList[T Element](items ...T) *List[T] {
	l := &List[T]{items: make([]T, len(items))}
	copy(l.items, items)
	return l
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) index(i int) (int, error) {
	n := len(l.items)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, n)
	}
	return idx, nil
}

func (l *List[T]) Get(i int) (T, error) {
	idx, err := l.index(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.items[idx], nil
}

func (l *List[T]) Set(i int, v T) error {
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	l.items[idx] = v
	return nil
}

func (l *List[T]) Append(v ...T) {
	l.items = append(l.items, v...)
}

func (l *List[T]) Delete(i int) error {
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

func (l *List[T]) Contains(v T) bool {
	for _, item := range l.items {
		if item == v {
			return true
		}
	}
	return false
}

// Items returns a copy of the elements.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range l.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
