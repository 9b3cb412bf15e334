// Package fifo provides a fixed-capacity front-shifting byte/item queue.
// It never allocates after construction and never fails on overflow:
// appends saturate and callers check fullness when completeness matters.
package fifo

// Buffer is a simple generic FIFO over a fixed backing array.
type Buffer[T comparable] struct {
	buf  []T
	used int
}

// New creates an empty buffer with the given capacity.
func New[T comparable](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("fifo: capacity must be positive")
	}
	return &Buffer[T]{buf: make([]T, capacity)}
}

func (b *Buffer[T]) Len() int       { return b.used }
func (b *Buffer[T]) Cap() int       { return len(b.buf) }
func (b *Buffer[T]) Available() int { return len(b.buf) - b.used }
func (b *Buffer[T]) IsEmpty() bool  { return b.used == 0 }
func (b *Buffer[T]) IsFull() bool   { return b.used == len(b.buf) }

// Clear resets the buffer without touching the backing storage.
func (b *Buffer[T]) Clear() { b.used = 0 }

// Data returns the live region. The slice aliases internal storage and is
// invalidated by any mutation.
func (b *Buffer[T]) Data() []T { return b.buf[:b.used] }

// ReceiveRegion returns the unused tail for zero-copy fills.
// Commit the fill with Advance(n).
func (b *Buffer[T]) ReceiveRegion() []T { return b.buf[b.used:] }

// Advance moves the used cursor forward after a direct fill.
func (b *Buffer[T]) Advance(n int) {
	if n < 0 {
		return
	}
	b.used += n
	if b.used > len(b.buf) {
		b.used = len(b.buf)
	}
}

// SetEnd sets the used length to an absolute index.
func (b *Buffer[T]) SetEnd(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(b.buf) {
		i = len(b.buf)
	}
	b.used = i
}

// Append copies as many items as fit and returns the count copied.
func (b *Buffer[T]) Append(src []T) int {
	n := copy(b.buf[b.used:], src)
	b.used += n
	return n
}

// AppendOne adds a single item. Returns false if full.
func (b *Buffer[T]) AppendOne(item T) bool {
	if b.IsFull() {
		return false
	}
	b.buf[b.used] = item
	b.used++
	return true
}

// Pop removes n items from the front, shifting the remainder down.
func (b *Buffer[T]) Pop(n int) {
	if n <= 0 {
		return
	}
	if n > b.used {
		n = b.used
	}
	copy(b.buf, b.buf[n:b.used])
	b.used -= n
}

// Read moves up to len(dst) items out of the front and returns the count.
func (b *Buffer[T]) Read(dst []T) int {
	n := copy(dst, b.buf[:b.used])
	b.Pop(n)
	return n
}

// ReadOne removes and returns the first item.
func (b *Buffer[T]) ReadOne() (T, bool) {
	var zero T
	if b.used == 0 {
		return zero, false
	}
	item := b.buf[0]
	b.Pop(1)
	return item, true
}

// IndexOf returns the position of the first matching item, or -1.
func (b *Buffer[T]) IndexOf(item T) int {
	for i := 0; i < b.used; i++ {
		if b.buf[i] == item {
			return i
		}
	}
	return -1
}

// IndexOfSlice returns the start of the first matching sub-slice, or -1.
func (b *Buffer[T]) IndexOfSlice(sub []T) int {
	if len(sub) == 0 || len(sub) > b.used {
		return -1
	}
outer:
	for i := 0; i+len(sub) <= b.used; i++ {
		for j := range sub {
			if b.buf[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// Bytes is the byte specialization used by the transport and line buffers.
type Bytes = Buffer[byte]

// NewBytes creates a byte buffer with the given capacity.
func NewBytes(capacity int) *Bytes { return New[byte](capacity) }

// IndexOfString searches a byte buffer for a string.
func IndexOfString(b *Bytes, word string) int {
	return b.IndexOfSlice([]byte(word))
}
