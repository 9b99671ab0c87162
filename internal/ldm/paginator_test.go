package ldm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateTwelveSuppliersScenario(t *testing.T) {
	items := makeSuppliers(12)

	page := Paginate(items, 0, 5)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "S01", page.Items[0].Code)
	assert.Equal(t, "S05", page.Items[4].Code)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 3, page.PageCount)
	assert.False(t, page.HasPrevious())
	assert.True(t, page.HasNext())

	page = Paginate(items, page.NextOffset(), 5)
	page = Paginate(items, page.NextOffset(), 5)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "S11", page.Items[0].Code)
	assert.Equal(t, "S12", page.Items[1].Code)
	assert.Equal(t, 3, page.PageNumber)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())
	assert.Equal(t, page.Offset, page.NextOffset())
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate[supplier](nil, 10, 5)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.PageCount)
	assert.Equal(t, 0, page.Offset)
	assert.False(t, page.HasPrevious())
	assert.False(t, page.HasNext())
	assert.Equal(t, 0, page.First())
}

func TestPaginateDefaultsPageSize(t *testing.T) {
	page := Paginate(makeSuppliers(7), 0, 0)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, DefaultPageSize)
}

func TestPaginationNavigationProperties(t *testing.T) {
	for length := 0; length <= 23; length++ {
		items := makeSuppliers(length)
		for pageSize := 1; pageSize <= 7; pageSize++ {
			for offset := -3; offset <= length+pageSize; offset++ {
				page := Paginate(items, offset, pageSize)

				assert.GreaterOrEqual(t, page.Offset, 0)
				if length > 0 {
					assert.Less(t, page.Offset, length)
				}
				if page.Offset+pageSize >= length {
					assert.False(t, page.HasNext(), "len=%d size=%d offset=%d", length, pageSize, offset)
				}
				if page.Offset == 0 {
					assert.False(t, page.HasPrevious())
				}
				assert.LessOrEqual(t, len(page.Items), pageSize)
				assert.Equal(t, (length+pageSize-1)/pageSize, page.PageCount)
				if length > 0 {
					assert.Equal(t, page.Offset/pageSize+1, page.PageNumber)
					assert.LessOrEqual(t, page.PageNumber, page.PageCount)
				}
			}
		}
	}
}

func TestClampOffsetAfterShrink(t *testing.T) {
	assert.Equal(t, 5, ClampOffset(10, 6, 5))
	assert.Equal(t, 0, ClampOffset(5, 5, 5))
	assert.Equal(t, 0, ClampOffset(-2, 5, 5))
	assert.Equal(t, 0, ClampOffset(3, 0, 5))
	assert.Equal(t, 3, ClampOffset(3, 12, 5))
	assert.Equal(t, 10, ClampOffset(40, 12, 5))
}

func TestPageItemsDoNotAliasAppend(t *testing.T) {
	items := makeSuppliers(6)
	page := Paginate(items, 0, 3)
	_ = append(page.Items, supplier{Code: "X"})
	assert.Equal(t, "S04", items[3].Code)
}
