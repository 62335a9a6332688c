package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	defaultPage     int32 = 1
	defaultPageSize int32 = 20
	maxPageSize     int32 = 100
)

// pathID parses the {id} path variable.
func pathID(r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n <= 0 {
		return 0, false
	}
	return int32(n), true
}

// pagination reads page and page_size query parameters, falling back to
// defaults and capping the page size.
func pagination(r *http.Request) (page, pageSize int32) {
	page = defaultPage
	pageSize = defaultPageSize
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			page = int32(n)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			pageSize = int32(n)
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

type pagedResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Page  int32 `json:"page"`
}
