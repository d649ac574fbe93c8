package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageRequest_Normalize(t *testing.T) {
	req := require.New(t)

	req.Equal(PageRequest{Page: 1, Limit: DefaultPageLimit}, PageRequest{}.Normalize())
	req.Equal(PageRequest{Page: 3, Limit: MaxPageLimit}, PageRequest{Page: 3, Limit: 1000}.Normalize())
	req.Equal(40, PageRequest{Page: 3, Limit: 20}.Offset())

	huge := PageRequest{Page: 922337203685477580, Limit: MaxPageLimit}
	req.Equal(MaxPage, huge.Normalize().Page)
	req.Equal((MaxPage-1)*MaxPageLimit, huge.Offset())
	req.Positive(huge.Offset())
}

func TestPage_Pagination(t *testing.T) {
	req := require.New(t)

	meta := Page[int]{Total: 45, Request: PageRequest{Page: 2, Limit: 20}}.Pagination()
	req.Equal(Pagination{Page: 2, Limit: 20, Total: 45, TotalPages: 3, HasNextPage: true, HasPreviousPage: true}, meta)

	empty := Page[int]{Request: PageRequest{}}.Pagination()
	req.Equal(0, empty.TotalPages)
	req.False(empty.HasNextPage)
	req.False(empty.HasPreviousPage)
}
