package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const defaultShardCount = 16

// Heap maps opaque handles to objects handed out to the host. Handles are
// spread across shards by xxhash so concurrent lookups rarely contend.
type Heap struct {
	shards  []heapShard
	count   uint64
	size    atomic.Int64
	handles sync.Map // map[*Object]string
}

type heapShard struct {
	mx      sync.RWMutex
	objects map[string]*Object
}

// NewHeap creates a heap with the given number of shards.
func NewHeap(shardCount int) *Heap {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}

	h := &Heap{
		shards: make([]heapShard, shardCount),
		count:  uint64(shardCount),
	}
	for i := range h.shards {
		h.shards[i].objects = make(map[string]*Object)
	}
	return h
}

func (h *Heap) shard(handle string) *heapShard {
	return &h.shards[xxhash.Sum64String(handle)%h.count]
}

// Put stores obj and returns its handle. Storing the same object twice
// returns the same handle.
func (h *Heap) Put(obj *Object) string {
	if handle, ok := h.handles.Load(obj); ok {
		return handle.(string)
	}

	handle := uuid.NewString()
	if actual, loaded := h.handles.LoadOrStore(obj, handle); loaded {
		return actual.(string)
	}

	sh := h.shard(handle)
	sh.mx.Lock()
	sh.objects[handle] = obj
	sh.mx.Unlock()
	h.size.Add(1)

	return handle
}

// Get returns the object stored under handle.
func (h *Heap) Get(handle string) (*Object, error) {
	sh := h.shard(handle)
	sh.mx.RLock()
	obj, ok := sh.objects[handle]
	sh.mx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	return obj, nil
}

// Release forgets handle. Other objects that share memory with the released
// one, such as field views, stay valid.
func (h *Heap) Release(handle string) error {
	sh := h.shard(handle)
	sh.mx.Lock()
	obj, ok := sh.objects[handle]
	if ok {
		delete(sh.objects, handle)
	}
	sh.mx.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	h.handles.Delete(obj)
	h.size.Add(-1)
	return nil
}

// Len returns the number of live handles.
func (h *Heap) Len() int {
	return int(h.size.Load())
}

// Clear releases every handle.
func (h *Heap) Clear() {
	for i := range h.shards {
		sh := &h.shards[i]
		sh.mx.Lock()
		for handle, obj := range sh.objects {
			delete(sh.objects, handle)
			h.handles.Delete(obj)
			h.size.Add(-1)
		}
		sh.mx.Unlock()
	}
}
