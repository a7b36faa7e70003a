package service

import (
	"bytes"
	"context"
	"fmt"

	"akaraka_backend/pkg/logger"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"go.uber.org/zap"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// Voice fallbacks for Dari content. Google has no Dari voice, so Pashto is
// tried first, then Urdu, then Iranian Persian, which is mutually
// intelligible with Dari.
var dariVoiceFallbacks = []string{"ps-AF", "ur-PK", "fa-IR"}

type TTSService struct {
	client  *texttospeech.Client
	storage StorageProvider
	enabled bool
}

// NewTTSService dials Google Cloud Text-to-Speech using application default
// credentials. With enabled false the service is a stub that reports itself
// unavailable instead of failing startup.
func NewTTSService(ctx context.Context, enabled bool, storage StorageProvider) (*TTSService, error) {
	s := &TTSService{storage: storage, enabled: enabled}
	if !enabled {
		return s, nil
	}

	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

func (s *TTSService) Enabled() bool {
	return s.enabled && s.client != nil
}

func (s *TTSService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// GenerateEnglish synthesizes US English speech and stores the MP3 under
// audio/. Returns the stored object name.
func (s *TTSService) GenerateEnglish(ctx context.Context, text, name string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("text-to-speech is disabled")
	}
	audio, err := s.synthesize(ctx, text, "en-US")
	if err != nil {
		return "", err
	}
	return s.store(ctx, name, audio)
}

// GenerateDari walks the Dari voice fallback chain until one synthesizes.
func (s *TTSService) GenerateDari(ctx context.Context, text, name string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("text-to-speech is disabled")
	}

	var lastErr error
	for _, code := range dariVoiceFallbacks {
		audio, err := s.synthesize(ctx, text, code)
		if err != nil {
			logger.Log.Warn("tts voice unavailable, trying next",
				zap.String("language", code), zap.Error(err))
			lastErr = err
			continue
		}
		return s.store(ctx, name, audio)
	}
	return "", fmt.Errorf("no dari-capable voice available: %w", lastErr)
}

func (s *TTSService) synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.AudioContent, nil
}

func (s *TTSService) store(ctx context.Context, name string, audio []byte) (string, error) {
	object := "audio/" + name + ".mp3"
	return s.storage.Upload(ctx, object, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
}
