package params

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultLimit = 30
	maxLimit     = 100
)

// URL: /catalog?page=2&limit=30
// → ParsePagination() → Pagination{Limit:30, Page:2, Offset:30}
// → store List(..., limit, offset) returns items + total
// → ComputeMeta(total) fills TotalPages, HasNext, etc.
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination parses ?limit=...&page=... leniently; bad values fall back to defaults.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: defaultLimit,
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = defaultLimit
			case limit > maxLimit:
				p.Limit = maxLimit
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

// ParseRupees reads a rupee amount such as "49" or "49.50" and returns it in paise.
// A missing key yields nil.
func ParseRupees(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	rupees, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || rupees < 0 {
		return nil, fmt.Errorf("%s must be a non-negative amount", key)
	}

	var paise int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return nil, fmt.Errorf("%s must have at most two decimal places", key)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		paise, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || paise < 0 {
			return nil, fmt.Errorf("%s must be a non-negative amount", key)
		}
	}

	v := rupees*100 + paise
	return &v, nil
}

// ParseBool treats a missing or unparsable flag as false.
func ParseBool(q url.Values, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(q.Get(key)))
	return err == nil && v
}
