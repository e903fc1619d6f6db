package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
)

// getPathID extracts a positive task ID from the named URL path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be a positive integer",
			fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidID))
	}
	if err := domain.ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}
