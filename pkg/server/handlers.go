package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/fragment"
	"github.com/NVIDIA/implindex/pkg/serializer"
)

// handleTraits handles GET /v1/traits: one entry per coordinator on the board.
func (s *Server) handleTraits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	resp := TraitsResponse{
		Traits:    []TraitStatus{},
		Timestamp: time.Now().UTC(),
	}
	for _, trait := range s.board.Traits() {
		c, ok := s.board.Lookup(trait)
		if !ok {
			continue
		}
		resp.Traits = append(resp.Traits, TraitStatus{
			Trait:    trait,
			Mode:     c.Mode(),
			Consumer: c.HasConsumer(),
			Stats:    c.Stats(),
		})
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleImplementors handles GET /v1/implementors. With ?trait= it returns
// that page, otherwise the whole index.
func (s *Server) handleImplementors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	trait := strings.TrimSpace(r.URL.Query().Get("trait"))
	var body any
	if trait == "" {
		body = s.index.Snapshot()
	} else {
		doc, err := s.index.PageSnapshot(trait)
		if err != nil {
			WriteErrorFromErr(w, r, err, "failed to read page", nil)
			return
		}
		body = doc
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.config.CacheMaxAge.Seconds())))
	serializer.RespondJSON(w, http.StatusOK, body)
}

// handleFragments handles POST /v1/fragments: a producer arriving after
// startup. The index is attached to the trait first, so the fragment is
// delivered immediately.
func (s *Server) handleFragments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, http.MethodPost)
		return
	}

	reader, err := serializer.NewReader(serializer.FormatJSON, http.MaxBytesReader(w, r.Body, maxFragmentBytes))
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to read request", nil)
		return
	}
	var f fragment.Fragment
	if err := reader.Deserialize(&f); err != nil {
		WriteErrorFromErr(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid fragment body", err),
			"invalid fragment body", nil)
		return
	}
	if err := f.Validate(); err != nil {
		WriteErrorFromErr(w, r, err, "invalid fragment", nil)
		return
	}

	if err := s.index.Attach(s.board, f.Trait); err != nil {
		WriteErrorFromErr(w, r, err, "failed to attach index", map[string]any{"trait": f.Trait})
		return
	}
	p, err := f.PublishTo(s.board)
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to publish fragment", map[string]any{"trait": f.Trait})
		return
	}

	slog.Info("fragment published",
		"requestID", requestIDFrom(r),
		"trait", f.Trait,
		"modules", len(f.Implementors),
		"state", p.State().String())

	serializer.RespondJSON(w, http.StatusCreated, PublishResponse{
		Trait:   f.Trait,
		Modules: f.Implementors.Modules(),
		Records: f.Implementors.Len(),
		State:   p.State().String(),
	})
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}
