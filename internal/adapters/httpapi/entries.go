package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

type entryJSON struct {
	ID        string    `json:"id"`
	Rank      int       `json:"rank"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type listJSON struct {
	Scope     string      `json:"scope"`
	Page      int         `json:"p"` // zero-based, as in the query string
	NumPages  int         `json:"num_pages"`
	Count     int         `json:"count"`
	PageSize  int         `json:"page_size"`
	Direction string      `json:"o"`
	Actions   []string    `json:"actions"`
	Entries   []entryJSON `json:"entries"`
	Flash     *Flash      `json:"flash,omitempty"`
}

type historyJSON struct {
	Seq     int64     `json:"seq"`
	ID      string    `json:"id"`
	OldRank int       `json:"old_rank"`
	NewRank int       `json:"rank"`
	Moved   bool      `json:"moved"`
	At      time.Time `json:"at"`
}

// handleEntries answers one page of the ranked list with the pending flash
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	scope := scopeOf(r)
	q, err := parseListQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := commands.NewListCommand(s.store, scope, q.Page, s.pageSize, q.Direction).Execute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := listJSON{
		Scope:     scope,
		Page:      res.Page - 1,
		NumPages:  res.NumPages,
		Count:     res.Count,
		PageSize:  res.PageSize,
		Direction: res.Direction.String(),
		Actions:   res.Actions,
		Entries:   toEntryJSON(res.Entries),
		Flash:     popFlash(w, r),
	}
	if out.Actions == nil {
		out.Actions = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleHistory answers the most recent rank changes of a scope
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := commands.NewHistoryCommand(s.history, scopeOf(r), limit).Execute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]historyJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, historyJSON{
			Seq:     rec.Seq,
			ID:      rec.ID,
			OldRank: rec.OldRank,
			NewRank: rec.NewRank,
			Moved:   rec.Moved,
			At:      rec.At,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toEntryJSON(entries []domain.Entry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{ID: e.ID, Rank: e.Rank, Label: e.Label, CreatedAt: e.CreatedAt})
	}
	return out
}
