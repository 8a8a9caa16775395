package query

import (
	"context"
	"net/url"
)

// PageRef points at a neighbouring page
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds next/prev only when they are in range
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Result is the list envelope. Count is the size of Data, Total the number of matches.
type Result struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       []Record   `json:"data"`
	Total      int        `json:"-"`
}

// Paginate computes neighbours for page/limit given the total match count
func Paginate(page, limit, total int) Pagination {
	var p Pagination
	page, limit = clampPaging(page, limit)
	skip := (page - 1) * limit
	if skip+limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// Run parses params, counts the matches and fetches the requested page
func Run(ctx context.Context, coll Collection, schema *Schema, params url.Values, opts Options) (*Result, error) {
	spec := ParseSpec(params)

	q, err := Compile(schema, spec, opts)
	if err != nil {
		return nil, err
	}

	total, err := coll.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	records, err := coll.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}

	return &Result{
		Success:    true,
		Count:      len(records),
		Pagination: Paginate(spec.Page, spec.Limit, total),
		Data:       records,
		Total:      total,
	}, nil
}
