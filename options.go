package uview

import "github.com/rs/zerolog"

// UnknownTagPolicy decides what the leem data walk does after a tag
// without a decode rule. The record length of an unknown tag cannot be
// known, so both policies report an UnknownTag warning.
type UnknownTagPolicy int

const (
	// PolicyAbort stops the walk and keeps the fields decoded so far.
	PolicyAbort UnknownTagPolicy = iota
	// PolicySkip skips the tag byte plus the fallback width and resumes.
	PolicySkip
)

func (p UnknownTagPolicy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "abort"
}

// DecodeOption configures the behavior of the Decode functions.
type DecodeOption func(*options)

type options struct {
	logger       zerolog.Logger
	policy       UnknownTagPolicy
	fallbackSkip int
}

func newOptions(opts []DecodeOption) *options {
	o := &options{
		logger: zerolog.Nop(),
		policy: PolicyAbort,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger returns a DecodeOption logging every decoded field at debug
// level and every diagnostic at warn level.
func WithLogger(l zerolog.Logger) DecodeOption {
	return func(o *options) {
		o.logger = l
	}
}

// WithUnknownTagPolicy returns a DecodeOption selecting the policy applied
// to unknown leem data tags.
func WithUnknownTagPolicy(p UnknownTagPolicy) DecodeOption {
	return func(o *options) {
		o.policy = p
	}
}

// WithFallbackSkip returns a DecodeOption selecting PolicySkip with n
// payload bytes skipped after an unknown tag.
func WithFallbackSkip(n int) DecodeOption {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.policy = PolicySkip
		o.fallbackSkip = n
	}
}
