package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	assert.Equal(t, 3, Count(25, 10))
	assert.Equal(t, 1, Count(10, 10))
	assert.Equal(t, 0, Count(0, 10))
	assert.Equal(t, 1, Count(1, 10))
}

func TestBounds(t *testing.T) {
	start, end := Bounds(25, 0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = Bounds(25, 2, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end, "last page is short")

	start, end = Bounds(25, 9, 10)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end, "past the end yields an empty page, not a panic")

	start, end = Bounds(0, 0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPagerClamping(t *testing.T) {
	p := NewPager(10)

	p.Prev()
	assert.Equal(t, 0, p.Index, "previous clamps at first page")

	p.Next(25)
	p.Next(25)
	assert.Equal(t, 2, p.Index)
	p.Next(25)
	assert.Equal(t, 2, p.Index, "next clamps at last page")

	p.Reset()
	assert.Equal(t, 0, p.Index)
}

func TestPagerEmptySequence(t *testing.T) {
	p := NewPager(10)
	p.Next(0)
	assert.Equal(t, 0, p.Index)
	start, end := p.Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPagerDefaultSize(t *testing.T) {
	p := NewPager(0)
	assert.Equal(t, DefaultPageSize, p.Size)
}
