package pager

// IndexRange returns the half-open [start, end) bounds into the dataset
// for a 1-based page of pageSize items.
func IndexRange(page, pageSize int) (start, end int) {
	return (page - 1) * pageSize, page * pageSize
}

// HyperPage is the hypermedia response for classic page-based access.
// NextPage and PrevPage are nil exactly past the last page and at the
// first page respectively.
type HyperPage[T any] struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"` // actual count returned, not the requested size
	Data       []T  `json:"data"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
	TotalPages int  `json:"total_pages"`
}

// IndexPage is the deletion-resilient response for index-based access.
// NextIndex is nil exactly at end of data; otherwise it is the position
// to pass as start to resume without skipping or repeating live records.
type IndexPage[T any] struct {
	Index     int  `json:"index"`
	NextIndex *int `json:"next_index"`
	PageSize  int  `json:"page_size"` // actual count returned
	Data      []T  `json:"data"`
}
