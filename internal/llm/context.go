package llm

import "context"

// Purposes recorded with each LLM request event and filtered on by
// "serenity llm list --purpose".
const (
	PurposeAffirmation = "affirmation"
	PurposeUnknown     = "unknown"
)

type purposeKey struct{}

// WithPurpose tags every provider call made with ctx so the recorder can
// attribute it.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown for
// untagged calls.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
