package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoImage is returned when the provider answered successfully but the
// result list was empty or absent.
var ErrNoImage = errors.New("no image was generated")

// ProviderError carries the upstream status and whatever detail the provider
// included in its error body.
type ProviderError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: http %d: %s", e.Provider, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: http %d", e.Provider, e.Status)
}

// IsTimeout reports whether err was caused by the outbound call exceeding its
// deadline, either via context cancellation or a transport-level timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
