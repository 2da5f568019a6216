package httpx

import (
	"net/url"
	"strconv"
	"strings"
)

// parseBoolQuery returns the boolean value of a query param, or def when missing or invalid.
func parseBoolQuery(q url.Values, key string, def bool) bool {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseIntQuery returns the integer value of a query param, or def when missing or invalid.
func parseIntQuery(q url.Values, key string, def int) int {
	if v := strings.TrimSpace(q.Get(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset reads limit and offset from q, clamping limit to [1, maxLimit] and offset to >= 0.
func ParseLimitOffset(q url.Values, defLimit, maxLimit int) (int, int) {
	maxLimit = max(maxLimit, 1)
	lim := min(max(parseIntQuery(q, "limit", defLimit), 1), maxLimit)
	off := max(parseIntQuery(q, "offset", 0), 0)
	return lim, off
}
