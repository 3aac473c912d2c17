package dto

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListParams holds pagination parameters parsed from the query string.
type ListParams struct {
	Limit  int
	Offset int
}

// ParseListParams parses limit and offset, applying the default and
// clamping to the maximum.
func ParseListParams(query url.Values, defaultLimit, maxLimit int) (ListParams, error) {
	params := ListParams{Limit: defaultLimit}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return ListParams{}, fmt.Errorf("limit must be a positive integer")
		}
		params.Limit = limit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return ListParams{}, fmt.Errorf("offset must be a non-negative integer")
		}
		params.Offset = offset
	}

	return params, nil
}
