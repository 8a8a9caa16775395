package query

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCollection applies sort, page and projection of a compiled query
// to an in-memory slice. Filters are not evaluated.
type memoryCollection struct {
	rows []Record
	err  error
}

func (m *memoryCollection) Count(_ context.Context, _ *Query) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.rows), nil
}

func (m *memoryCollection) Find(_ context.Context, q *Query) ([]Record, error) {
	rows := append([]Record(nil), m.rows...)
	keys := q.Sort()
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			a, b := fmt.Sprint(rows[i][k.Field]), fmt.Sprint(rows[j][k.Field])
			if af, ok := rows[i][k.Field].(float64); ok {
				bf := rows[j][k.Field].(float64)
				if af == bf {
					continue
				}
				return (af < bf) != k.Desc
			}
			if a == b {
				continue
			}
			return (a < b) != k.Desc
		}
		return false
	})

	if q.Offset() >= len(rows) {
		return nil, nil
	}
	end := q.Offset() + q.Limit()
	if end > len(rows) {
		end = len(rows)
	}

	out := make([]Record, 0, end-q.Offset())
	for _, r := range rows[q.Offset():end] {
		projected := Record{}
		for _, f := range q.Fields() {
			if v, ok := r[f]; ok {
				projected[f] = v
			}
		}
		out = append(out, projected)
	}
	return out, nil
}

func seedBootcamps(n int) *memoryCollection {
	m := &memoryCollection{}
	for i := 0; i < n; i++ {
		m.rows = append(m.rows, Record{
			"id":          fmt.Sprintf("00000000-0000-0000-0000-%012d", i),
			"name":        fmt.Sprintf("Bootcamp %02d", i),
			"description": "desc",
			"averageCost": float64(1000 * i),
			"housing":     i%2 == 0,
			"createdAt":   fmt.Sprintf("2024-01-%02d", i+1),
		})
	}
	return m
}

func run(t *testing.T, coll Collection, raw string) *Result {
	t.Helper()
	params, err := url.ParseQuery(raw)
	require.NoError(t, err)
	res, err := Run(context.Background(), coll, testBootcamps(), params, Options{})
	require.NoError(t, err)
	return res
}

func TestPaginate(t *testing.T) {
	first := Paginate(1, 25, 30)
	assert.Equal(t, &PageRef{Page: 2, Limit: 25}, first.Next)
	assert.Nil(t, first.Prev)

	second := Paginate(2, 25, 30)
	assert.Nil(t, second.Next)
	assert.Equal(t, &PageRef{Page: 1, Limit: 25}, second.Prev)

	exact := Paginate(1, 25, 25)
	assert.Nil(t, exact.Next)
	assert.Nil(t, exact.Prev)

	beyond := Paginate(5, 25, 30)
	assert.Nil(t, beyond.Next)
	assert.Equal(t, &PageRef{Page: 4, Limit: 25}, beyond.Prev)
}

func TestRun_PagesOfThirty(t *testing.T) {
	coll := seedBootcamps(30)

	page1 := run(t, coll, "")
	assert.True(t, page1.Success)
	assert.Equal(t, 25, page1.Count)
	assert.Equal(t, 30, page1.Total)
	assert.Equal(t, &PageRef{Page: 2, Limit: 25}, page1.Pagination.Next)
	assert.Nil(t, page1.Pagination.Prev)

	page2 := run(t, coll, "page=2")
	assert.Equal(t, 5, page2.Count)
	assert.Nil(t, page2.Pagination.Next)
	assert.Equal(t, &PageRef{Page: 1, Limit: 25}, page2.Pagination.Prev)
}

func TestRun_DefaultSortNewestFirst(t *testing.T) {
	res := run(t, seedBootcamps(3), "")
	require.Len(t, res.Data, 3)
	assert.Equal(t, "2024-01-03", res.Data[0]["createdAt"])
	assert.Equal(t, "2024-01-01", res.Data[2]["createdAt"])
}

func TestRun_SelectSortPage(t *testing.T) {
	res := run(t, seedBootcamps(30), "select=name,description&sort=-averageCost&page=2&limit=10")

	require.Equal(t, 10, res.Count)
	for _, r := range res.Data {
		assert.ElementsMatch(t, []string{"id", "name", "description"}, keys(r))
	}
	// the ten most expensive are on page 1
	assert.Equal(t, "Bootcamp 19", res.Data[0]["name"])
	assert.Equal(t, "Bootcamp 10", res.Data[9]["name"])
	assert.Equal(t, &PageRef{Page: 3, Limit: 10}, res.Pagination.Next)
	assert.Equal(t, &PageRef{Page: 1, Limit: 10}, res.Pagination.Prev)
}

func TestRun_EmptyIsNotAnError(t *testing.T) {
	res := run(t, seedBootcamps(0), "")
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Data)
	assert.Nil(t, res.Pagination.Next)
	assert.Nil(t, res.Pagination.Prev)
}

func TestRun_PropagatesErrors(t *testing.T) {
	params, _ := url.ParseQuery("sort=password")
	_, err := Run(context.Background(), seedBootcamps(1), testBootcamps(), params, Options{})
	require.Error(t, err)

	boom := errors.New("conn closed")
	_, err = Run(context.Background(), &memoryCollection{err: boom}, testBootcamps(), url.Values{}, Options{})
	assert.ErrorIs(t, err, boom)
}

func keys(r Record) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}

func TestPaginate_OversizeLimitIsCapped(t *testing.T) {
	p := Paginate(2, int(^uint(0)>>1), 30)
	assert.Nil(t, p.Next)
	assert.Equal(t, &PageRef{Page: 1, Limit: MaxLimit}, p.Prev)

	last := Paginate(MaxPage+5, 4, 30)
	assert.Nil(t, last.Next)
	assert.Equal(t, &PageRef{Page: MaxPage - 1, Limit: 4}, last.Prev)
}
