package utils

import "math"

// MaxPageLimit caps the page size a caller may ask for.
const MaxPageLimit = 100

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta is the pagination block returned next to list payloads.
type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// GetPaginationParams normalizes page and limit. A non-positive limit falls
// back to defaultLimit; defaultLimit 0 means "no limit".
func GetPaginationParams(page, limit, defaultLimit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// CalculateMeta generates pagination metadata; pages is ceil(total/limit).
func CalculateMeta(total int64, page, limit int) PaginationMeta {
	if limit <= 0 {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return PaginationMeta{
			Page:  1,
			Limit: int(total),
			Total: total,
			Pages: pages,
		}
	}

	return PaginationMeta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
