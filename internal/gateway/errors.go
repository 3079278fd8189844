package gateway

import (
	"fmt"
	"net/http"
	"strings"

	"backoffice/internal/domain"
	"backoffice/pkg/sentinel"
)

// APIError is a non-2xx response from the backend together with the
// structured notification list it carried, surfaced verbatim for display.
// It matches the transport-level sentinels through errors.Is so callers can
// branch without looking at Status directly.
type APIError struct {
	Status        int
	Notifications []domain.Notification
}

func (e *APIError) Error() string {
	if len(e.Notifications) == 0 {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	parts := make([]string, 0, len(e.Notifications))
	for _, n := range e.Notifications {
		parts = append(parts, n.Key+": "+n.Value)
	}
	return fmt.Sprintf("api: status %d (%s)", e.Status, strings.Join(parts, "; "))
}

// Is reports sentinel equivalence for the well-known statuses.
func (e *APIError) Is(target error) bool {
	switch target {
	case sentinel.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case sentinel.ErrForbidden:
		return e.Status == http.StatusForbidden
	case sentinel.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
