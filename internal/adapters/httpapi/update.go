package httpapi

import (
	"encoding/json"
	"mime"
	"net/http"

	"sortable/internal/application"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

const maxBodyBytes = 1 << 20

type updateRequest struct {
	StartOrder *int `json:"startorder"`
	EndOrder   *int `json:"endorder"`
}

// handleUpdate moves one entry and answers with every rank that changed
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	scope := scopeOf(r)
	if err := s.authorize(r, scope); err != nil {
		s.writeError(w, r, err)
		return
	}

	start, end, err := parseUpdate(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := commands.NewMoveCommand(s.store, s.observer, scope, start, end).Execute(r.Context())
	changed := 0
	if res != nil {
		changed = len(res.Changes)
	}
	s.log.LogMove(r.Context(), scope, start, end, changed, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	changes := res.Changes
	if changes == nil {
		changes = []domain.RankChange{}
	}
	writeJSON(w, http.StatusOK, changes)
}

// parseUpdate reads startorder and endorder from a JSON or form body.
// endorder defaults to 0, which moves the entry to the first rank.
func parseUpdate(w http.ResponseWriter, r *http.Request) (start, end int, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return 0, 0, &application.ValidationError{Field: "body", Message: "malformed JSON body"}
		}
		if req.StartOrder == nil {
			return 0, 0, application.ValidateRequired("startorder", "")
		}
		start = *req.StartOrder
		if req.EndOrder != nil {
			end = *req.EndOrder
		}
		if err := application.ValidateRank("startorder", start); err != nil {
			return 0, 0, err
		}
		return start, end, application.ValidateRank("endorder", end)
	}

	if err := r.ParseForm(); err != nil {
		return 0, 0, &application.ValidationError{Field: "body", Message: "malformed form body"}
	}
	raw := r.PostForm.Get("startorder")
	if err := application.ValidateRequired("startorder", raw); err != nil {
		return 0, 0, err
	}
	if start, err = application.ParseRank("startorder", raw, 0); err != nil {
		return 0, 0, err
	}
	if end, err = application.ParseRank("endorder", r.PostForm.Get("endorder"), 0); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
