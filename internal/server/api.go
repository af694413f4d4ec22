package server

import (
	"encoding/json"
	"net/http"

	"github.com/vanityaddr/btcvanity/internal/log"
	"github.com/vanityaddr/btcvanity/internal/store"
	"github.com/vanityaddr/btcvanity/pkg/vanity"
)

// generateRequest is the body of POST /vanity/generate.
type generateRequest struct {
	Prefix   string `json:"prefix"`
	Suffix   string `json:"suffix"`
	MaxTries uint64 `json:"max_tries"`
}

// foundResponse reports a successful search.
type foundResponse struct {
	Address     string  `json:"address"`
	PrivateKey  string  `json:"private_key"`
	WIF         string  `json:"wif"`
	Tries       uint64  `json:"tries"`
	TimeSeconds float64 `json:"time_seconds"`
	Mode        string  `json:"mode"`
}

// stoppedResponse reports a user-requested stop.
type stoppedResponse struct {
	Stopped     bool    `json:"stopped"`
	Tries       uint64  `json:"tries"`
	TimeSeconds float64 `json:"time_seconds"`
}

// errorResponse reports rejection or exhaustion.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Tries   uint64 `json:"tries"`
}

func writeJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: true, Message: "invalid request body"})
		return
	}
	if req.MaxTries == 0 {
		req.MaxTries = s.cfg.Search.DefaultMaxTries
	}

	criteria := vanity.NormalizeCriteria(req.Prefix, req.Suffix)
	if chars := vanity.ImpossibleChars(criteria.Prefix + criteria.Suffix); len(chars) > 0 {
		log.Warn("criteria contain characters that never occur in base58 addresses",
			"chars", string(chars), "prefix", criteria.Prefix, "suffix", criteria.Suffix)
	}

	searcher := vanity.NewSearcher(s.cfg.Search.Workers)
	token := vanity.NewToken()
	s.track(token)
	defer s.untrack(token)

	log.Info("search started", "prefix", criteria.Prefix, "suffix", criteria.Suffix,
		"maxTries", req.MaxTries, "workers", searcher.Workers())

	outcome, err := searcher.Generate(r.Context(), token, req.Prefix, req.Suffix, req.MaxTries)
	if err != nil {
		log.Error("search failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: true, Message: err.Error()})
		return
	}

	switch outcome.Kind {
	case vanity.Found:
		rec := &store.Record{
			Address:    outcome.Address,
			PrivateKey: outcome.PrivateKey,
			WIF:        outcome.WIF,
			Prefix:     criteria.Prefix,
			Suffix:     criteria.Suffix,
			Mode:       outcome.Encoding.String(),
		}
		if err := s.db.Put(rec); err != nil {
			log.Error("persist record failed", "address", outcome.Address, "err", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: true, Message: "failed to persist result", Tries: outcome.Tries})
			return
		}
		log.Info("search succeeded", "address", outcome.Address, "mode", outcome.Encoding.String(),
			"tries", outcome.Tries, "elapsed", outcome.Elapsed)
		writeJSON(w, http.StatusOK, foundResponse{
			Address:     outcome.Address,
			PrivateKey:  outcome.PrivateKey,
			WIF:         outcome.WIF,
			Tries:       outcome.Tries,
			TimeSeconds: outcome.Elapsed.Seconds(),
			Mode:        outcome.Encoding.String(),
		})
	case vanity.Stopped:
		log.Info("search stopped", "tries", outcome.Tries, "elapsed", outcome.Elapsed)
		writeJSON(w, http.StatusOK, stoppedResponse{
			Stopped:     true,
			Tries:       outcome.Tries,
			TimeSeconds: outcome.Elapsed.Seconds(),
		})
	case vanity.Exhausted:
		writeJSON(w, http.StatusOK, errorResponse{
			Error:   true,
			Message: "No matching address found. Try a shorter prefix or suffix, or a larger budget.",
			Tries:   outcome.Tries,
		})
	case vanity.Rejected:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   true,
			Message: outcome.Reason,
		})
	}
}

func (s *Server) stopHandler(w http.ResponseWriter, r *http.Request) {
	s.stopAll()
	writeJSON(w, http.StatusOK, map[string]bool{"stopped": true})
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: true, Message: err.Error()})
		return
	}
	if records == nil {
		records = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}
