// Package httputil provides retry helpers for the VirusTotal client.
//
// # Retry
//
// [Retry] re-runs an operation when it fails with a [RetryableError]:
//
//   - Transport errors (connection refused, timeouts)
//   - 5xx server errors
//
// Any other error is returned immediately. The delay doubles after each
// failed attempt:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(ctx)
//	})
//
// A single attempt (the default for vtmaltego) never sleeps, which keeps the
// exporter's one-request-per-object behaviour unless retries are configured.
package httputil
