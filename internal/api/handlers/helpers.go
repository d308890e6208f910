package handlers

import (
	"errors"
	"fmt"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"hotspot-finder-service/internal/services"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	msgMissingLatLng  = "Missing required latitude or longitude parameters."
	msgInvalidLatLng  = "Invalid latitude or longitude parameters."
	msgMissingLocID   = "Missing required locId parameter."
	msgUpstreamFailed = "Internal server error during fetch to eBird."

	upstreamDetailLimit = 200
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeUpstreamError maps a failed provider call to a response.
// Upstream status codes pass through with a truncated body.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, services.ErrInvalidReference) {
		writeError(w, r, http.StatusBadRequest, msgInvalidLatLng)
		return
	}

	var se *ports.StatusError
	if errors.As(err, &se) {
		zap.L().Warn("upstream rejected request",
			zap.String("op", op),
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Int("status", se.Code),
		)
		writeError(w, r, se.Code, fmt.Sprintf("eBird API Error: %d. Details: %s...",
			se.Code, truncateRunes(se.Body, upstreamDetailLimit)))
		return
	}

	zap.L().Error("upstream call failed",
		zap.String("op", op),
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, msgUpstreamFailed)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// parseRef reads the required lat/lng query parameters.
// ok is false when a response has already been written.
func parseRef(w http.ResponseWriter, r *http.Request) (domain.Point, bool) {
	q := r.URL.Query()
	rawLat := strings.TrimSpace(q.Get("lat"))
	rawLng := strings.TrimSpace(q.Get("lng"))
	if rawLat == "" || rawLng == "" {
		writeError(w, r, http.StatusBadRequest, msgMissingLatLng)
		return domain.Point{}, false
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lng, errLng := strconv.ParseFloat(rawLng, 64)
	if errLat != nil || errLng != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidLatLng)
		return domain.Point{}, false
	}

	ref := domain.PointAt(lat, lng)
	if !ref.Known {
		writeError(w, r, http.StatusBadRequest, msgInvalidLatLng)
		return domain.Point{}, false
	}

	return ref, true
}

// positiveIntParam returns def when the parameter is absent.
func positiveIntParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

// positiveFloatParam returns def when the parameter is absent.
func positiveFloatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(f > 0) || f > maxSearchDistKm {
		return 0, fmt.Errorf("%s must be a number in (0, %g]", name, maxSearchDistKm)
	}
	return f, nil
}
