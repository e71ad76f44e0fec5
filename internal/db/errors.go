package db

import (
	"fmt"
	"strings"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// wrapConnectionError wraps raw driver connection errors with actionable guidance.
func wrapConnectionError(err error, kind mkdb.ProviderKind, ep endpoint) error {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - %s is not running or not listening on port %d
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, ep, kind, ep.port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w`, ep.host, err)

	case strings.Contains(errStr, "login failed") ||
		strings.Contains(errStr, "password authentication failed") ||
		strings.Contains(errStr, "access denied"):
		return fmt.Errorf(`authentication failed on %s

Possible causes:
  - Wrong password (check MKDB_<ID>_PASSWORD, credentials.yaml, or ~/.pgpass for PostgreSQL)
  - Wrong username
  - Expired cloud token or missing IAM grant

Original error: %w`, ep, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, ep, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls") || strings.Contains(errStr, "certificate"):
		return fmt.Errorf(`SSL/TLS connection error to %s

Possible causes:
  - Server requires encryption but the encrypt option is off
  - Certificate verification failed

Original error: %w`, ep, err)

	default:
		return fmt.Errorf("failed to connect to %s at %s: %w", kind, ep, err)
	}
}
