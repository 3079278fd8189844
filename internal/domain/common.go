package domain

import "strconv"

// Notification is one structured failure entry returned by the backend. The
// list is surfaced to the user verbatim; the client never rewrites it.
type Notification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Page is the uniform server-paginated listing envelope. PageNumber is
// 1-based. Requesting a page beyond TotalPages yields an empty Items slice;
// the server does not clamp and the client must not assume it does.
type Page[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"totalCount"`
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPreviousPage"`
	HasNext     bool `json:"hasNextPage"`
}

// PageParams selects a page of a listing.
type PageParams struct {
	PageNumber int
	PageSize   int
}

func unknown(v int) string {
	return "unknown(" + strconv.Itoa(v) + ")"
}
