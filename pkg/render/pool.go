package render

import "fmt"

// Handle types share one layout: the low 32 bits hold the slot index plus one
// and the high 32 bits hold the slot generation. The zero value never refers
// to a live resource.
type (
	VertexBufferID    uint64
	AttributeBufferID uint64
	IndexBufferID     uint64
	ObjectTextureID   uint64
)

// handle is satisfied by every resource ID type.
type handle interface {
	~uint64
}

func makeHandle[H handle](index int, generation uint32) H {
	return H(uint64(generation)<<32 | uint64(index+1))
}

func splitHandle[H handle](h H) (index int, generation uint32) {
	return int(uint32(h)) - 1, uint32(uint64(h) >> 32)
}

type poolSlot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// Pool is a generation-checked slot map. Freed slots are recycled, and a
// handle to a freed slot stops resolving once its generation is bumped.
type Pool[H handle, T any] struct {
	name     string
	capacity int // 0 means unbounded
	slots    []poolSlot[T]
	free     []int
	live     int
}

// NewPool creates a pool. capacity <= 0 means the pool can grow without bound.
func NewPool[H handle, T any](name string, capacity int) *Pool[H, T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[H, T]{name: name, capacity: capacity}
}

// TryAlloc reserves a zeroed slot. It fails when the pool is at capacity.
func (p *Pool[H, T]) TryAlloc() (H, bool) {
	var index int
	if n := len(p.free); n > 0 {
		index = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		if p.capacity > 0 && len(p.slots) >= p.capacity {
			return 0, false
		}
		p.slots = append(p.slots, poolSlot[T]{generation: 1})
		index = len(p.slots) - 1
	}

	slot := &p.slots[index]
	var zero T
	slot.value = zero
	slot.live = true
	p.live++
	return makeHandle[H](index, slot.generation), true
}

// TryGet resolves a handle without panicking.
func (p *Pool[H, T]) TryGet(h H) (*T, bool) {
	index, generation := splitHandle(h)
	if index < 0 || index >= len(p.slots) {
		return nil, false
	}
	slot := &p.slots[index]
	if !slot.live || slot.generation != generation {
		return nil, false
	}
	return &slot.value, true
}

// Get resolves a handle. A stale or unknown handle is a caller bug and panics.
func (p *Pool[H, T]) Get(h H) *T {
	v, ok := p.TryGet(h)
	if !ok {
		index, generation := splitHandle(h)
		panic(fmt.Sprintf("render: %s pool: invalid handle (slot %d, generation %d)", p.name, index, generation))
	}
	return v
}

// Free releases a handle's slot for reuse. Freeing a stale handle panics.
func (p *Pool[H, T]) Free(h H) {
	p.Get(h)
	index, _ := splitHandle(h)
	slot := &p.slots[index]
	var zero T
	slot.value = zero
	slot.live = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	p.free = append(p.free, index)
	p.live--
}

// Len returns the number of live entries.
func (p *Pool[H, T]) Len() int {
	return p.live
}

// Clear frees every entry. Outstanding handles become stale.
func (p *Pool[H, T]) Clear() {
	for i := range p.slots {
		if p.slots[i].live {
			p.Free(makeHandle[H](i, p.slots[i].generation))
		}
	}
}
