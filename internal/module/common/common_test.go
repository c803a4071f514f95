package common

import (
	"errors"
	"net/http/httptest"
	"testing"

	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func ctx(t *testing.T, query string) *gin.Context {
	test.Setup(t)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x?"+query, nil)
	return c
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	out, p := Paginate(ctx(t, ""), items)
	require.Nil(t, p)
	require.Equal(t, items, out)

	out, p = Paginate(ctx(t, "page=3&page_size=2"), items)
	require.Equal(t, []int{5}, out)
	require.Equal(t, Page{Page: 3, PageSize: 2, Total: 5}, *p)

	out, p = Paginate(ctx(t, "page=1&page_size=abc"), items)
	require.Len(t, out, 5)
	require.Equal(t, defaultPageSize, p.PageSize)

	out, p = Paginate(ctx(t, "page=4&page_size=2"), items)
	require.Empty(t, out)
	require.Equal(t, 5, p.Total)
}

func TestPaginateHugePage(t *testing.T) {
	items := []int{1, 2, 3}
	for _, q := range []string{
		"page=9223372036854775807&page_size=30",
		"page=922337203685477581&page_size=10",
		"page=9223372036854775807&page_size=300",
	} {
		require.NotPanics(t, func() {
			out, p := Paginate(ctx(t, q), items)
			require.Empty(t, out)
			require.NotNil(t, p)
			require.Equal(t, 3, p.Total)
		}, q)
	}
}

func TestWorkFilter(t *testing.T) {
	f, err := WorkFilter(ctx(t, "from=2024-03-01&to=2024-03-31&min_cost=10&college_id=c1&search=paint"))
	require.NoError(t, err)
	require.Equal(t, "2024-03-01", f.From.Format("2006-01-02"))
	require.Equal(t, 10.0, *f.MinCost)
	require.Nil(t, f.MaxCost)
	require.Equal(t, "c1", f.CollegeID)
	require.True(t, f.Active())

	_, err = WorkFilter(ctx(t, "from=yesterday"))
	require.Error(t, err)
	_, err = WorkFilter(ctx(t, "max_cost=1e"))
	require.Error(t, err)

	for _, q := range []string{"min_cost=NaN", "max_cost=Inf", "min_cost=-inf", "max_cost=nan"} {
		_, err = WorkFilter(ctx(t, q))
		require.Error(t, err, q)
	}
}

func TestStoreError(t *testing.T) {
	require.Equal(t, response.ErrNotFound, StoreError(store.ErrNotFound))
	require.Equal(t, response.ErrAlreadyExists.Code, StoreError(errors.Join(store.ErrDuplicate, errors.New("x"))).Code)
	require.Equal(t, response.ErrDatabase.Code, StoreError(errors.New("conn refused")).Code)
}
