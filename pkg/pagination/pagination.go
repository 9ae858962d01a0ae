// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination provides shared request/response shapes for paginated
list endpoints.

It keeps page/limit parsing and the resulting metadata envelope consistent
for paginated listings such as Aggregator.ListSeries.
*/
package pagination

import (
	"net/http"

	"github.com/5eus/touring/pkg/convert"
)

const (
	// DefaultPage is used when the request omits a page parameter.
	DefaultPage = 1
	// DefaultLimit is used when the request omits a limit parameter.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller requests.
	MaxLimit = 100
)

// Params holds parsed pagination input.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET implied by Page/Limit.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the response-side pagination envelope.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta builds a [Meta] from the request params and a total row count.
func NewMeta(p Params, total int64) Meta {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages}
}

// FromRequest parses `page`/`limit` query parameters, clamping to sane
// defaults and bounds.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()

	page := convert.ToIntD(q.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := convert.ToIntD(q.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}
