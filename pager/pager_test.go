package pager

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rowcache/rowcache/dataset"
)

// rows returns a dataset of n distinguishable records.
func rows(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("row%03d", i)
	}
	return out
}

func newPager(t *testing.T, n int, opts ...Option) *Pager[string] {
	t.Helper()
	p, err := New(dataset.FromSlice(rows(n)), opts...)
	require.NoError(t, err)
	return p
}

func TestIndexRange(t *testing.T) {
	tests := []struct {
		page, pageSize int
		start, end     int
	}{
		{1, 7, 0, 7},
		{3, 15, 30, 45},
		{2, 10, 10, 20},
		{1, 1, 0, 1},
		{5, 3, 12, 15},
	}

	for _, tc := range tests {
		start, end := IndexRange(tc.page, tc.pageSize)
		require.Equal(t, tc.start, start, "page=%d size=%d", tc.page, tc.pageSize)
		require.Equal(t, tc.end, end, "page=%d size=%d", tc.page, tc.pageSize)
	}
}

func TestNew_NilSource(t *testing.T) {
	_, err := New[string](nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_InvalidSnapshotLimit(t *testing.T) {
	_, err := New(dataset.FromSlice(rows(1)), WithSnapshotLimit(0))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetPage_Basic(t *testing.T) {
	p := newPager(t, 25)

	page, err := p.GetPage(1, 10)
	require.NoError(t, err)
	require.Equal(t, rows(25)[0:10], page)

	page, err = p.GetPage(3, 10)
	require.NoError(t, err)
	require.Equal(t, rows(25)[20:25], page, "last page is short")
}

func TestGetPage_BeyondDataset(t *testing.T) {
	p := newPager(t, 10)

	page, err := p.GetPage(4, 5)
	require.NoError(t, err, "beyond the end is not an error")
	require.NotNil(t, page)
	require.Empty(t, page)
}

func TestGetPage_InvalidArguments(t *testing.T) {
	p := newPager(t, 10)

	for _, args := range [][2]int{{0, 10}, {-1, 10}, {1, 0}, {1, -3}} {
		_, err := p.GetPage(args[0], args[1])
		require.ErrorIs(t, err, ErrInvalidArgument, "page=%d size=%d", args[0], args[1])
	}
}

// Concatenating all classic pages reproduces the dataset for any page size.
func TestGetPage_RoundTrip(t *testing.T) {
	const n = 23
	want := rows(n)

	for pageSize := 1; pageSize <= n; pageSize++ {
		p := newPager(t, n)

		var got []string
		for page := 1; ; page++ {
			chunk, err := p.GetPage(page, pageSize)
			require.NoError(t, err)
			if len(chunk) == 0 {
				break
			}
			got = append(got, chunk...)
		}

		require.Equal(t, want, got, "pageSize=%d", pageSize)
	}
}

func TestGetHyper_Middle(t *testing.T) {
	p := newPager(t, 30)

	hp, err := p.GetHyper(2, 10)
	require.NoError(t, err)

	next, prev := 3, 1
	want := &HyperPage[string]{
		Page:       2,
		PageSize:   10,
		Data:       rows(30)[10:20],
		NextPage:   &next,
		PrevPage:   &prev,
		TotalPages: 3,
	}
	if diff := cmp.Diff(want, hp); diff != "" {
		t.Fatalf("hyper page mismatch (-want +got):\n%s", diff)
	}
}

func TestGetHyper_FirstAndLastPage(t *testing.T) {
	p := newPager(t, 25)

	first, err := p.GetHyper(1, 10)
	require.NoError(t, err)
	require.Nil(t, first.PrevPage, "prev is nil exactly at the first page")
	require.NotNil(t, first.NextPage)
	require.Equal(t, 2, *first.NextPage)

	last, err := p.GetHyper(3, 10)
	require.NoError(t, err)
	require.Nil(t, last.NextPage, "next is nil exactly at the last page")
	require.NotNil(t, last.PrevPage)
	require.Equal(t, 2, *last.PrevPage)
	require.Equal(t, 5, last.PageSize, "echoes the actual count")
	require.Equal(t, 3, last.TotalPages)
}

func TestGetHyper_TotalPagesCeil(t *testing.T) {
	tests := []struct {
		n, pageSize, totalPages int
	}{
		{30, 10, 3},
		{31, 10, 4},
		{29, 10, 3},
		{1, 10, 1},
		{10, 1, 10},
	}

	for _, tc := range tests {
		p := newPager(t, tc.n)
		hp, err := p.GetHyper(1, tc.pageSize)
		require.NoError(t, err)
		require.Equal(t, tc.totalPages, hp.TotalPages, "n=%d size=%d", tc.n, tc.pageSize)
	}
}

func TestGetHyper_BeyondDataset(t *testing.T) {
	p := newPager(t, 10)

	hp, err := p.GetHyper(9, 5)
	require.NoError(t, err)
	require.Empty(t, hp.Data)
	require.Zero(t, hp.PageSize)
	require.Nil(t, hp.NextPage)
}

// The dataset is materialized once: source mutations after first use are
// not observed by subsequent pages.
func TestGetPage_SourceReadOnce(t *testing.T) {
	backing := rows(10)
	p, err := New(dataset.FromSlice(backing))
	require.NoError(t, err)

	first, err := p.GetPage(1, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"row000", "row001", "row002"}, first)

	backing[0] = "mutated"

	again, err := p.GetPage(1, 3)
	require.NoError(t, err)
	require.Equal(t, "row000", again[0])
}

func BenchmarkGetPage(b *testing.B) {
	p, err := New(dataset.FromSlice(rows(1000)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.GetPage(i%100+1, 10); err != nil {
			b.Fatal(err)
		}
	}
}
