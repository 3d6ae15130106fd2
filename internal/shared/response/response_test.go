package response

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, meta := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, page)
	assert.Equal(t, PaginationMeta{Total: 7, TotalPages: 3, Page: 2, PageSize: 3}, meta)

	page, _ = Paginate(items, 5, 3)
	assert.Empty(t, page)

	page, meta = Paginate(items, 0, 0)
	assert.Len(t, page, 7)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 1, meta.Page)
}

func TestPaginate_HugeValues(t *testing.T) {
	items := []int{1, 2, 3}

	assert.NotPanics(t, func() {
		page, meta := Paginate(items, math.MaxInt, 10)
		assert.Empty(t, page)
		assert.Equal(t, 1, meta.TotalPages)
	})

	assert.NotPanics(t, func() {
		page, meta := Paginate(items, 1, math.MaxInt)
		assert.Equal(t, items, page)
		assert.Equal(t, 1, meta.TotalPages)
	})

	assert.NotPanics(t, func() {
		page, _ := Paginate(items, math.MaxInt, math.MaxInt)
		assert.Empty(t, page)
	})

	page, meta := Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, 3, NewPaginationMeta(25, 1, 10).TotalPages)
	assert.Equal(t, 2, NewPaginationMeta(20, 1, 10).TotalPages)
	assert.Equal(t, 1, NewPaginationMeta(7, 1, math.MaxInt).TotalPages)
	assert.Equal(t, 0, NewPaginationMeta(0, 1, 10).TotalPages)
}
