// Package handler exposes the timecard service over HTTP: employee and
// timecard CRUD plus the reporting endpoints.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wcac/timecards-backend/pkg/errors"
)

// idParam reads a URL parameter that must be a positive integer ID.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest(fmt.Sprintf("%s param must be a positive integer; received %s", name, raw))
	}
	return id, nil
}

// dateRangeQuery reads the startDate/endDate query parameters. Validation
// happens in the service layer so path-param and query-param routes share
// one set of rules.
func dateRangeQuery(r *http.Request) (start, end string) {
	q := r.URL.Query()
	return q.Get("startDate"), q.Get("endDate")
}
