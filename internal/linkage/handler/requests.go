package handler

import (
	"net/http"
	"strconv"

	dErrors "crosslink/pkg/domain-errors"
)

// Query parameter defaults per external convention.
const (
	defaultMinScore = 50
	defaultLimit    = 50
	defaultDepth    = 2
)

// SuspiciousParams are the parsed query parameters for the suspicious list.
type SuspiciousParams struct {
	MinScore int
	Limit    int
}

// ParseSuspiciousParams validates min_score and limit.
func ParseSuspiciousParams(r *http.Request) (SuspiciousParams, error) {
	params := SuspiciousParams{MinScore: defaultMinScore, Limit: defaultLimit}

	if raw := r.URL.Query().Get("min_score"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			return params, dErrors.New(dErrors.CodeValidation, "min_score must be an integer between 0 and 100")
		}
		params.MinScore = n
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return params, dErrors.New(dErrors.CodeValidation, "limit must be a non-negative integer")
		}
		params.Limit = n
	}
	return params, nil
}

// NetworkParams are the parsed query parameters for the network query.
type NetworkParams struct {
	Depth int
}

// ParseNetworkParams validates depth. Depth 0 is legal and returns only the
// seed node.
func ParseNetworkParams(r *http.Request) (NetworkParams, error) {
	params := NetworkParams{Depth: defaultDepth}

	if raw := r.URL.Query().Get("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return params, dErrors.New(dErrors.CodeValidation, "depth must be a non-negative integer")
		}
		params.Depth = n
	}
	return params, nil
}
