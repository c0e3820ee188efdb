package model

import "context"

// TextGenerator is the external AI text collaborator: a system context
// string plus a user prompt in, one completion out. Returned text is
// untrusted content; callers scan it, never execute it. Failures map to
// ErrUpstream and are never retried automatically.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// SpeechClient is the opaque speech-to-text / text-to-speech collaborator.
type SpeechClient interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// ProviderIdentity is the assertion returned by the external identity
// provider for a valid provider session.
type ProviderIdentity struct {
	Email        string
	Name         string
	Picture      *string
	SessionToken string
}

// IdentityProvider exchanges an opaque provider session ID for an identity
// assertion. Any non-success response is an authentication failure, never
// "no opinion".
type IdentityProvider interface {
	Exchange(ctx context.Context, providerSessionID string) (ProviderIdentity, error)
}
