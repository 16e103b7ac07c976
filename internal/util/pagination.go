package util

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Window normalizes raw limit/offset query values. Anything that does not
// parse falls back to the defaults.
func Window(rawLimit, rawOffset string) (limit, offset int) {
	limit = ParseIntDefault(rawLimit, DefaultPageSize)
	offset = ParseIntDefault(rawOffset, 0)
	return Clamp(limit, offset)
}

func Clamp(limit, offset int) (int, int) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// HasMore reports offset+limit < total without overflowing on huge offsets.
func HasMore(offset, limit int, total int64) bool {
	return int64(offset) < total-int64(limit)
}
