package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/snowcodeer/perplexitree/store"
	"github.com/snowcodeer/perplexitree/transform"
	"github.com/snowcodeer/perplexitree/utils"
)

const maxBodyBytes = 10 << 20

var (
	errBadRequest = errors.New("bad request")
	errUpstream   = errors.New("upstream request failed")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, utils.ErrValidation),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, transform.ErrMalformedOutput),
		errors.Is(err, errUpstream):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrStoreUnavailable),
		errors.Is(err, transform.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// upstream marks a transform failure that is not one of its own sentinels as
// a failed upstream call.
func upstream(err error) error {
	if errors.Is(err, transform.ErrMalformedOutput) || errors.Is(err, transform.ErrNotConfigured) {
		return err
	}
	return fmt.Errorf("%w: %v", errUpstream, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error(op+": failed", "status", status, "error", err)
	} else {
		h.Log.Warn(op+": rejected", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON reads the request body into dst and runs struct validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return utils.ValidateStruct(dst)
}

func pathID(r *http.Request, name string) (uint, error) {
	id, ok := utils.PathID(r, name)
	if !ok {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, r.PathValue(name))
	}
	return id, nil
}
