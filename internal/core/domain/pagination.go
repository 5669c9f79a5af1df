package domain

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/minhvu/qna-service/internal/apperr"
)

// Pagination is the window applied to list queries. A nil Limit means no
// limit; Offset defaults to the start of the result set.
type Pagination struct {
	Limit  *int
	Offset int
}

// ExtractPagination reads limit and offset from query parameters. An empty
// query yields the default window. When parameters are supplied, both limit
// and offset must be present; unparseable values surface as parse errors.
func ExtractPagination(params url.Values) (Pagination, error) {
	if len(params) == 0 {
		return Pagination{}, nil
	}

	if !params.Has("limit") || !params.Has("offset") {
		return Pagination{}, apperr.MissingParameters()
	}

	limit, err := parseNonNegative("limit", params.Get("limit"))
	if err != nil {
		return Pagination{}, err
	}
	offset, err := parseNonNegative("offset", params.Get("offset"))
	if err != nil {
		return Pagination{}, err
	}

	return Pagination{Limit: &limit, Offset: offset}, nil
}

// parseNonNegative parses a window parameter. Negative values are as
// unusable as unparseable ones and surface the same way.
func parseNonNegative(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperr.Parse(err)
	}
	if n < 0 {
		return 0, apperr.Parse(fmt.Errorf("%s must not be negative: %d", name, n))
	}
	return n, nil
}
