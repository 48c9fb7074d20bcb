// Package httputil provides caller-side HTTP helpers for octoscope.
//
// # Retry
//
// The GitHub client never retries on its own: whether a failure is worth
// another attempt is a decision for the caller. Suggestions, for example,
// degrade to an empty list instead, while the one-shot profile command can
// opt in with --retries.
//
// [Retry] runs a function with exponential backoff and consults a
// [Classifier] to decide which errors are transient:
//
//	err := httputil.Retry(ctx, 3, time.Second, github.IsTransient, func() error {
//	    profile, err = client.FetchProfile(ctx, "octocat")
//	    return err
//	})
//
// Rate limit, not-found and auth failures should never be classified as
// transient; retrying them only burns quota.
package httputil
