package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(url.Values{})

	assert.Equal(t, defaultLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Zero(t, p.Offset)
}

func TestParsePaginationClampsLimit(t *testing.T) {
	p := ParsePagination(url.Values{"limit": {"500"}})
	assert.Equal(t, maxLimit, p.Limit)

	p = ParsePagination(url.Values{"limit": {"-3"}})
	assert.Equal(t, defaultLimit, p.Limit)

	p = ParsePagination(url.Values{"limit": {"junk"}})
	assert.Equal(t, defaultLimit, p.Limit)
}

func TestParsePaginationOffset(t *testing.T) {
	p := ParsePagination(url.Values{"page": {"3"}, "limit": {"25"}})

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestComputeMeta(t *testing.T) {
	p := ParsePagination(url.Values{"page": {"2"}, "limit": {"10"}})
	p.ComputeMeta(35)

	assert.Equal(t, 35, p.Total)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = ParsePagination(url.Values{"limit": {"10"}})
	p.ComputeMeta(5)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
