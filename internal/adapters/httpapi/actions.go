package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sortable/internal/application"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

// listQuery holds the list parameters shared by the list and action routes.
// Page is zero-based on the wire and one-based here.
type listQuery struct {
	Page      int
	Direction domain.Direction
	rawOrder  string
}

func parseListQuery(r *http.Request) (listQuery, error) {
	q := listQuery{Page: 1, Direction: domain.Ascending}

	if raw := strings.TrimSpace(r.URL.Query().Get("p")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 {
			return q, &application.ValidationError{Field: "p", Message: fmt.Sprintf("invalid page %q", raw)}
		}
		q.Page = p + 1
	}

	q.rawOrder = r.URL.Query().Get("o")
	if q.rawOrder == "" && r.Method == http.MethodPost {
		q.rawOrder = r.PostFormValue("o")
	}
	q.Direction = application.ParseDirection(q.rawOrder, domain.Ascending)
	return q, nil
}

func (q listQuery) values() url.Values {
	v := url.Values{}
	v.Set("p", strconv.Itoa(q.Page-1))
	if q.rawOrder != "" {
		v.Set("o", q.rawOrder)
	}
	return v
}

func listURL(scope string, q listQuery) string {
	return "/scopes/" + url.PathEscape(scopeSegment(scope)) + "/entries?" + q.values().Encode()
}

// handleActions runs a bulk move and redirects back to the list page the
// request came from, reporting the outcome in a flash message
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	scope := scopeOf(r)
	if err := s.authorize(r, scope); err != nil {
		s.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, &application.ValidationError{Field: "body", Message: "malformed form body"})
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setFlash(w, s.bulkMove(r, scope, q))
	http.Redirect(w, r, listURL(scope, q), http.StatusSeeOther)
}

func (s *Server) bulkMove(r *http.Request, scope string, q listQuery) Flash {
	form := r.PostForm
	step, err := formInt(form, "step", 1)
	if err != nil {
		return Flash{Level: FlashError, Message: err.Error()}
	}
	page, err := formInt(form, "page", 0)
	if err != nil {
		return Flash{Level: FlashError, Message: err.Error()}
	}
	dest, err := domain.ParseDestination(form.Get("action"), step, page)
	if err != nil {
		return Flash{Level: FlashError, Message: err.Error()}
	}

	selected := form["_selected_action"]
	res, err := commands.NewBulkMoveCommand(s.store, s.observer, scope, selected, q.Page, dest, q.Direction, s.pageSize).
		Execute(r.Context())

	moved := 0
	if res != nil {
		moved = res.Moved
	}
	s.log.LogBulkMove(r.Context(), scope, dest.String(), len(selected), moved, err)

	var pageErr *application.PageError
	var capErr *application.CapacityError
	switch {
	case errors.As(err, &pageErr):
		return Flash{Level: FlashError, Message: fmt.Sprintf("Page %d does not exist", pageErr.Page)}
	case errors.As(err, &capErr):
		return Flash{Level: FlashError, Message: fmt.Sprintf(
			"Page %d holds only %d entries, %d were selected", capErr.Page, capErr.Capacity, capErr.Selected)}
	case err != nil:
		return Flash{Level: FlashError, Message: err.Error()}
	case res.Skipped:
		return Flash{Level: FlashInfo, Message: res.Message}
	default:
		return Flash{Level: FlashSuccess, Message: res.Message}
	}
}

func formInt(form url.Values, field string, def int) (int, error) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &application.ValidationError{Field: field, Message: fmt.Sprintf("%s must be an integer, got: %q", field, raw)}
	}
	return n, nil
}
