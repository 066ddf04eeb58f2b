// Package paging slices an ordered sequence into fixed-size pages with
// boundary clamping. The pager only holds a page index; it is reset to the
// first page whenever the underlying sequence changes length.
package paging

// DefaultPageSize is used when no size is configured.
const DefaultPageSize = 10

// Bounds returns the [start, end) slice bounds for one page, clamped to
// the sequence length. The last page may be short or empty.
func Bounds(length, page, size int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	start := page * size
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return start, end
}

// Count returns ceil(length / size). An empty sequence has zero pages but
// must still render zero rows without error.
func Count(length, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (length + size - 1) / size
}

// Pager tracks the current page over a sequence whose length is supplied
// by the caller on each navigation.
type Pager struct {
	Index int
	Size  int
}

// NewPager returns a pager on the first page.
func NewPager(size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pager{Size: size}
}

// Next advances one page, clamping at the last page of a sequence with the
// given length.
func (p *Pager) Next(length int) {
	last := Count(length, p.Size) - 1
	if last < 0 {
		last = 0
	}
	if p.Index < last {
		p.Index++
	}
}

// Prev steps back one page, clamping at the first.
func (p *Pager) Prev() {
	if p.Index > 0 {
		p.Index--
	}
}

// Reset returns to the first page. Called whenever the underlying filtered
// sequence changes.
func (p *Pager) Reset() {
	p.Index = 0
}

// Window returns the slice bounds of the current page.
func (p *Pager) Window(length int) (int, int) {
	return Bounds(length, p.Index, p.Size)
}
