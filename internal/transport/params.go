package transport

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// listWindow reads the skip/limit query parameters, applying defaults when
// absent. Values are passed to the store as given; only non-numeric input
// is rejected.
func listWindow(r *http.Request) (skip, limit int, err error) {
	skip, limit = defaultSkip, defaultLimit

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("skip must be an integer")
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("limit must be an integer")
		}
	}

	return skip, limit, nil
}
