package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	records := numbered(23)

	tests := []struct {
		name       string
		pageSize   int
		page       int
		wantIDs    []int
		wantPage   int
		wantPages  int
		wantStart  int
		wantEnd    int
		wantHasPrv bool
		wantHasNxt bool
	}{
		{
			name: "first page", pageSize: 10, page: 1,
			wantIDs:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantPage: 1, wantPages: 3, wantStart: 0, wantEnd: 10,
			wantHasNxt: true,
		},
		{
			name: "last partial page", pageSize: 10, page: 3,
			wantIDs:  []int{21, 22, 23},
			wantPage: 3, wantPages: 3, wantStart: 20, wantEnd: 23,
			wantHasPrv: true,
		},
		{
			name: "page past the end clamps", pageSize: 10, page: 9,
			wantIDs:  []int{21, 22, 23},
			wantPage: 3, wantPages: 3, wantStart: 20, wantEnd: 23,
			wantHasPrv: true,
		},
		{
			name: "page zero clamps", pageSize: 10, page: 0,
			wantIDs:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantPage: 1, wantPages: 3, wantStart: 0, wantEnd: 10,
			wantHasNxt: true,
		},
		{
			name: "default page size", pageSize: 0, page: 2,
			wantIDs:  []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			wantPage: 2, wantPages: 3, wantStart: 10, wantEnd: 20,
			wantHasPrv: true, wantHasNxt: true,
		},
		{
			name: "single page", pageSize: 50, page: 1,
			wantIDs:  ids(records),
			wantPage: 1, wantPages: 1, wantStart: 0, wantEnd: 23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(records, tt.pageSize, tt.page)
			assert.Equal(t, tt.wantIDs, ids(p.Items))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantStart, p.StartIndex)
			assert.Equal(t, tt.wantEnd, p.EndIndex)
			assert.Equal(t, 23, p.Total)
			assert.Equal(t, tt.wantHasPrv, p.HasPrevious())
			assert.Equal(t, tt.wantHasNxt, p.HasNext())
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 10, 4)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.StartIndex)
	assert.Equal(t, 0, p.EndIndex)
	assert.False(t, p.HasNext())
}

func TestPaginate_Coverage(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 23, 40} {
		for _, size := range []int{1, 3, 10} {
			records := numbered(n)
			first := Paginate(records, size, 1)

			var all []int
			for page := 1; page <= first.TotalPages; page++ {
				all = append(all, ids(Paginate(records, size, page).Items)...)
			}
			if n == 0 {
				assert.Empty(t, all)
				continue
			}
			assert.Equal(t, ids(records), all, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	records := numbered(3)
	p := Paginate(records, 10, 1)

	p.Items[0].Name = "changed"

	assert.Equal(t, "Company 01", records[0].Name)
}

func TestPage_Window(t *testing.T) {
	link := func(n int) PageLink { return PageLink{Number: n} }
	current := func(n int) PageLink { return PageLink{Number: n, Current: true} }
	gap := PageLink{Ellipsis: true}

	tests := []struct {
		name    string
		current int
		total   int
		want    []PageLink
	}{
		{name: "single page", current: 1, total: 1, want: []PageLink{current(1)}},
		{name: "short list", current: 2, total: 3, want: []PageLink{link(1), current(2), link(3)}},
		{name: "start of long list", current: 1, total: 10, want: []PageLink{current(1), link(2), gap, link(10)}},
		{name: "middle of long list", current: 5, total: 10, want: []PageLink{link(1), gap, link(4), current(5), link(6), gap, link(10)}},
		{name: "end of long list", current: 10, total: 10, want: []PageLink{link(1), gap, link(9), current(10)}},
		{name: "near the start", current: 3, total: 10, want: []PageLink{link(1), link(2), current(3), link(4), gap, link(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page{Page: tt.current, TotalPages: tt.total}
			assert.Equal(t, tt.want, p.Window())
		})
	}
}
