package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/maaylex/maaylex-server/internal/model"
)

// Storage mocks the model.Storage interface.
type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc := args.Get(0); rc != nil {
		return rc.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// TextGenerator mocks the model.TextGenerator interface.
type TextGenerator struct {
	mock.Mock
}

func (m *TextGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

// SpeechClient mocks the model.SpeechClient interface.
type SpeechClient struct {
	mock.Mock
}

func (m *SpeechClient) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	args := m.Called(ctx, filename, audio)
	return args.String(0), args.Error(1)
}

func (m *SpeechClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	args := m.Called(ctx, text, voice)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// IdentityProvider mocks the model.IdentityProvider interface.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) Exchange(ctx context.Context, providerSessionID string) (model.ProviderIdentity, error) {
	args := m.Called(ctx, providerSessionID)
	return args.Get(0).(model.ProviderIdentity), args.Error(1)
}
