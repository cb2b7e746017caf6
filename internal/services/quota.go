package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// The service reports rate limiting as prose; matching is case-sensitive.
var quotaMarkers = []string{"429", "quota", "exceeded"}

// StatusError is an inference failure carrying a numeric status and/or code,
// for transports that do not surface googleapi or gRPC errors.
type StatusError struct {
	Status  int
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("inference request failed (status %d, code %d)", e.Status, e.Code)
}

// IsQuotaExceeded reports whether err signals a rate-limit or quota
// condition, by message text or by a 429 / RESOURCE_EXHAUSTED code anywhere
// in the wrap chain.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return hasQuotaCode(err)
}

func hasQuotaCode(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		if aerr.HTTPCode() == http.StatusTooManyRequests {
			return true
		}
		if st := aerr.GRPCStatus(); st != nil && st.Code() == codes.ResourceExhausted {
			return true
		}
	}

	var serr *StatusError
	if errors.As(err, &serr) && (serr.Status == http.StatusTooManyRequests || serr.Code == http.StatusTooManyRequests) {
		return true
	}

	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) && coded.StatusCode() == http.StatusTooManyRequests {
		return true
	}

	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		return true
	}

	return false
}
