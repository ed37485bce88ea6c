package llm

import "context"

// UnknownPurpose labels requests made without WithPurpose.
const UnknownPurpose = "unknown"

type purposeKey struct{}

// WithPurpose labels every request made with ctx, e.g. "quiz-gen". The label
// ends up in the audit log and in log lines.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or UnknownPurpose.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return UnknownPurpose
}
