package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
)

// statusCoder is implemented by SDK error types that expose an HTTP
// status code (anthropic-sdk-go and openai-go both do).
type statusCoder interface {
	StatusCode() int
}

// IsTransient reports whether err is worth retrying. Categorized
// errors are authoritative; otherwise it falls back to HTTP status
// codes and network-level heuristics.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce ai.CategorizedError
	if errors.As(err, &ce) {
		return ce.Retryable()
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return isTransientStatusCode(sc.StatusCode())
	}

	if code, ok := extractGoogleAPIErrorCode(err); ok {
		return isTransientStatusCode(code)
	}

	return isTransientNetworkError(err)
}

func isTransientStatusCode(code int) bool {
	switch {
	case code == 408, code == 429:
		return true
	case code >= 500 && code <= 599:
		return true
	}
	return false
}

// extractGoogleAPIErrorCode pulls the status code out of genai error
// strings of the form "googleapi: Error 429: ...". The genai SDK does
// not expose a typed error for this.
func extractGoogleAPIErrorCode(err error) (int, bool) {
	msg := err.Error()
	const prefix = "googleapi: Error "
	idx := strings.Index(msg, prefix)
	if idx < 0 {
		return 0, false
	}
	rest := msg[idx+len(prefix):]
	if len(rest) < 3 {
		return 0, false
	}
	code := 0
	for i := 0; i < 3; i++ {
		c := rest[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		code = code*10 + int(c-'0')
	}
	return code, true
}

func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET,
			syscall.ECONNREFUSED,
			syscall.ETIMEDOUT:
			return true
		}
	}

	// Message-pattern fallback for errors that lose their type
	// through fmt.Errorf without %w.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"bad gateway",
		"gateway timeout",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
