package bridge

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/geombridge/internal/core/observability/log"
)

// Request actions understood by Session.Do.
const (
	ActionNew     = "new"
	ActionGetAttr = "getattr"
	ActionSetAttr = "setattr"
	ActionCall    = "call"
	ActionOperate = "op"
	ActionStr     = "str"
	ActionRelease = "release"
	ActionClasses = "classes"
)

// Request is one host call with every object reference already resolved.
type Request struct {
	Action string
	Class  string
	Target Value
	Handle string
	Name   string
	Args   []Value
	Kwargs map[string]Value
}

// Session is the state a single host connection owns: the objects it has
// been handed and nothing else. Sessions share one Registry.
type Session struct {
	id        string
	registry  *Registry
	heap      *Heap
	logger    log.Log
	createdAt time.Time
	calls     atomic.Uint64
}

func NewSession(registry *Registry, logger log.Log) *Session {
	if logger == nil {
		logger = log.Provide()
	}

	id := uuid.NewString()
	return &Session{
		id:        id,
		registry:  registry,
		heap:      NewHeap(defaultShardCount),
		logger:    logger.With(log.String("session_id", id)),
		createdAt: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Registry() *Registry {
	return s.registry
}

func (s *Session) Heap() *Heap {
	return s.heap
}

// Calls returns how many requests the session has served.
func (s *Session) Calls() uint64 {
	return s.calls.Load()
}

// Do executes req and returns its result.
func (s *Session) Do(req Request) (Value, error) {
	s.calls.Add(1)

	result, err := s.do(req)
	if err != nil {
		s.logger.Debug("Bridge call failed",
			log.String("op", req.Action),
			log.String("class", req.Class),
			log.String("name", req.Name),
			log.Error(err))
	}
	return result, err
}

func (s *Session) do(req Request) (Value, error) {
	switch req.Action {
	case ActionNew:
		return s.registry.New(req.Class, req.Args, req.Kwargs)

	case ActionGetAttr:
		obj, err := s.target(req)
		if err != nil {
			return nil, err
		}
		return s.registry.GetAttr(obj, req.Name)

	case ActionSetAttr:
		obj, err := s.target(req)
		if err != nil {
			return nil, err
		}
		if len(req.Args) != 1 {
			return nil, fmt.Errorf("%w: setattr takes exactly one value", ErrInvalidArgument)
		}
		return nil, s.registry.SetAttr(obj, req.Name, req.Args[0])

	case ActionCall:
		obj, err := s.target(req)
		if err != nil {
			return nil, err
		}
		return s.registry.Call(obj, req.Name, req.Args, req.Kwargs)

	case ActionOperate:
		if len(req.Args) != 1 {
			return nil, fmt.Errorf("%w: operator takes exactly one operand", ErrInvalidArgument)
		}
		return s.registry.Operate(Op(req.Name), req.Target, req.Args[0])

	case ActionStr:
		return Repr(req.Target), nil

	case ActionRelease:
		if req.Handle == "" {
			return nil, fmt.Errorf("%w: release needs a handle", ErrInvalidArgument)
		}
		return nil, s.heap.Release(req.Handle)

	case ActionClasses:
		names := s.registry.Classes()
		out := make([]Value, len(names))
		for i, name := range names {
			out[i] = name
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, req.Action)
	}
}

func (s *Session) target(req Request) (*Object, error) {
	obj, ok := req.Target.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs an object, got %s", ErrInvalidArgument, req.Action, TypeName(req.Target))
	}
	return obj, nil
}

// Close drops every object the session holds.
func (s *Session) Close() {
	released := s.heap.Len()
	s.heap.Clear()
	s.logger.Debug("Session closed",
		log.Int("released_objects", released),
		log.Duration("lifetime", time.Since(s.createdAt)),
		log.Int64("calls", int64(s.calls.Load())))
}
