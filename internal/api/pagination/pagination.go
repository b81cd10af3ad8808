// Package pagination implements page-number pagination over gorm queries.
package pagination

import (
	"net/url"
	"strconv"

	"yamdb/internal/api/apierr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	PageSize = 10
	// ComplexPageSize is used for resources with nested representations.
	ComplexPageSize = 5
)

type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Params is the requested page number and size.
type Params struct {
	Page int
	Size int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// ParamsFrom reads ?page=N; a missing page means 1.
func ParamsFrom(c *gin.Context, size int) (Params, error) {
	p := Params{Page: 1, Size: size}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, apierr.NotFound("invalid page")
		}
		p.Page = n
	}
	return p, nil
}

// Find counts query, loads the requested page into a slice of M and maps it to T.
// query must already carry its filters and ordering; preloads apply to the page query only.
func Find[M any, T any](c *gin.Context, query *gorm.DB, size int, mapFn func([]M) ([]T, error), preloads ...string) (Page[T], error) {
	var page Page[T]

	params, err := ParamsFrom(c, size)
	if err != nil {
		return page, err
	}

	if err := query.Session(&gorm.Session{}).Count(&page.Count).Error; err != nil {
		return page, err
	}
	if params.Page > 1 && int64(params.Offset()) >= page.Count {
		return page, apierr.NotFound("invalid page")
	}

	pageQuery := query.Session(&gorm.Session{})
	for _, p := range preloads {
		pageQuery = pageQuery.Preload(p)
	}

	var rows []M
	if err := pageQuery.Limit(params.Size).Offset(params.Offset()).Find(&rows).Error; err != nil {
		return page, err
	}

	results, err := mapFn(rows)
	if err != nil {
		return page, err
	}
	if results == nil {
		results = []T{}
	}
	page.Results = results
	page.Next, page.Previous = Links(c, params, page.Count)
	return page, nil
}

// Links builds absolute next/previous URLs for the current request.
func Links(c *gin.Context, p Params, count int64) (next, previous *string) {
	if int64(p.Page*p.Size) < count {
		next = pageURL(c, p.Page+1)
	}
	if p.Page > 1 {
		previous = pageURL(c, p.Page-1)
	}
	return next, previous
}

func pageURL(c *gin.Context, page int) *string {
	u := url.URL{
		Scheme: "http",
		Host:   c.Request.Host,
		Path:   c.Request.URL.Path,
	}
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	q := c.Request.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
