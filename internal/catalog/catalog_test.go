package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		total, page    int
		size           int
		wantPage       int
		wantTotalPages int
		wantStart      int
		wantEnd        int
	}{
		{name: "empty list", total: 0, page: 1, size: 5, wantPage: 1, wantTotalPages: 1, wantStart: 0, wantEnd: 0},
		{name: "exact multiple first page", total: 10, page: 1, size: 5, wantPage: 1, wantTotalPages: 2, wantStart: 0, wantEnd: 5},
		{name: "exact multiple last page", total: 10, page: 2, size: 5, wantPage: 2, wantTotalPages: 2, wantStart: 5, wantEnd: 10},
		{name: "partial last page", total: 12, page: 3, size: 5, wantPage: 3, wantTotalPages: 3, wantStart: 10, wantEnd: 12},
		{name: "page above range clamps", total: 12, page: 9, size: 5, wantPage: 3, wantTotalPages: 3, wantStart: 10, wantEnd: 12},
		{name: "page zero clamps", total: 12, page: 0, size: 5, wantPage: 1, wantTotalPages: 3, wantStart: 0, wantEnd: 5},
		{name: "negative page clamps", total: 12, page: -4, size: 5, wantPage: 1, wantTotalPages: 3, wantStart: 0, wantEnd: 5},
		{name: "single item", total: 1, page: 1, size: 5, wantPage: 1, wantTotalPages: 1, wantStart: 0, wantEnd: 1},
		{name: "invalid size uses default", total: 6, page: 2, size: 0, wantPage: 2, wantTotalPages: 2, wantStart: 5, wantEnd: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
		})
	}
}

func TestPaginate_CoversEveryItemOnce(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	var seen []int
	first := Paginate(len(items), 1, DefaultPageSize)
	for n := 1; n <= first.TotalPages; n++ {
		seen = append(seen, Slice(items, Paginate(len(items), n, DefaultPageSize))...)
	}

	assert.Equal(t, items, seen)
	assert.Equal(t, 5, first.TotalPages)
}

func TestPage_Navigation(t *testing.T) {
	p := Paginate(12, 1, 5)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 2, p.Next())
	assert.Equal(t, []int{1, 2, 3}, p.Numbers())
	assert.Equal(t, 1, p.Offset())

	last := Paginate(12, 3, 5)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
	assert.Equal(t, 3, last.Next())
	assert.Equal(t, 11, last.Offset())
}

func TestSlice_ShortList(t *testing.T) {
	// Page bounds computed for a longer list than the one sliced.
	p := Paginate(10, 2, 5)
	assert.Empty(t, Slice([]string{"a"}, p))
	assert.Equal(t, []string{"f", "g"}, Slice([]string{"a", "b", "c", "d", "e", "f", "g"}, p))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		requested int
		wantShown int
		wantMore  bool
		wantNext  int
	}{
		{name: "default window", total: 20, requested: 0, wantShown: 8, wantMore: true, wantNext: 16},
		{name: "after one load more", total: 20, requested: 16, wantShown: 16, wantMore: true, wantNext: 24},
		{name: "capped at list length", total: 20, requested: 24, wantShown: 20, wantMore: false, wantNext: 28},
		{name: "short list", total: 3, requested: 8, wantShown: 3, wantMore: false, wantNext: 11},
		{name: "empty list", total: 0, requested: 8, wantShown: 0, wantMore: false, wantNext: 8},
		{name: "request below step", total: 20, requested: 2, wantShown: 8, wantMore: true, wantNext: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.total, tt.requested, DefaultWindowSize)
			assert.Equal(t, tt.wantShown, w.Shown)
			assert.Equal(t, tt.wantMore, w.HasMore())
			assert.Equal(t, tt.wantNext, w.NextShow())
		})
	}
}

func TestTake(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, Take(items, NewWindow(len(items), 0, 8)))
	assert.Equal(t, items, Take(items, NewWindow(len(items), 16, 8)))
}
