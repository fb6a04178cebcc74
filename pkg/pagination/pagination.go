package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds the validated page/limit pair from a list request.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned in list response envelopes.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Parse validates the raw page/limit query values. Missing values fall back
// to defaults; invalid values are reported as human-readable detail messages
// so the caller can reject the request before touching the database.
func Parse(pageStr, limitStr string) (Params, []string) {
	params := Params{Page: DefaultPage, Limit: DefaultLimit}
	var details []string

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			details = append(details, "page must be a positive integer")
		} else {
			params.Page = page
		}
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			details = append(details, "limit must be a positive integer")
		} else if limit > MaxLimit {
			details = append(details, "limit must not exceed "+strconv.Itoa(MaxLimit))
		} else {
			params.Limit = limit
		}
	}

	return params, details
}

// Offset converts page/limit into the row offset for the underlying query.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewMeta computes the pagination metadata for a total row count.
// totalPages is ceil(total/limit); hasNext is page*limit < total.
func NewMeta(p Params, total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(p.Page)*int64(p.Limit) < total,
		HasPrev:    p.Page > 1,
	}
}
