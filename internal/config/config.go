// Package config reads the ema-voice settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGroq     = "groq"
	ProviderDeepgram = "deepgram"

	BackendMiniaudio = "miniaudio"
	BackendPortaudio = "portaudio"
)

type Config struct {
	OpenAIKey   string
	GroqKey     string
	DeepgramKey string

	Locale string

	CompletionProvider string
	CompletionModel    string

	SynthesisProvider string
	SynthesisModel    string
	SynthesisVoice    string

	AudioBackend string

	// SystemDirective is empty unless EMA_SYSTEM_DIRECTIVE_FILE is set.
	SystemDirective string

	ListenTimeout     time.Duration
	NoSpeechTimeout   time.Duration
	CompletionTimeout time.Duration
	SynthesisTimeout  time.Duration
}

// Load reads the environment and returns Config with defaults applied. A
// missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg := Config{
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		GroqKey:            os.Getenv("GROQ_API_KEY"),
		DeepgramKey:        os.Getenv("DEEPGRAM_API_KEY"),
		Locale:             getenv("EMA_LOCALE", "ko-KR"),
		CompletionProvider: strings.ToLower(getenv("EMA_COMPLETION_PROVIDER", ProviderOpenAI)),
		CompletionModel:    os.Getenv("EMA_COMPLETION_MODEL"),
		SynthesisProvider:  strings.ToLower(getenv("EMA_SYNTHESIS_PROVIDER", ProviderOpenAI)),
		SynthesisModel:     os.Getenv("EMA_SYNTHESIS_MODEL"),
		SynthesisVoice:     os.Getenv("EMA_SYNTHESIS_VOICE"),
		AudioBackend:       strings.ToLower(getenv("EMA_AUDIO_BACKEND", BackendMiniaudio)),
	}

	switch cfg.CompletionProvider {
	case ProviderOpenAI, ProviderGroq:
	default:
		return Config{}, fmt.Errorf("unknown completion provider %q", cfg.CompletionProvider)
	}
	switch cfg.SynthesisProvider {
	case ProviderOpenAI, ProviderDeepgram:
	default:
		return Config{}, fmt.Errorf("unknown synthesis provider %q", cfg.SynthesisProvider)
	}
	switch cfg.AudioBackend {
	case BackendMiniaudio, BackendPortaudio:
	default:
		return Config{}, fmt.Errorf("unknown audio backend %q", cfg.AudioBackend)
	}

	if path := os.Getenv("EMA_SYSTEM_DIRECTIVE_FILE"); path != "" {
		directive, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read system directive: %w", err)
		}
		cfg.SystemDirective = strings.TrimSpace(string(directive))
	}

	var err error
	if cfg.ListenTimeout, err = getDuration("EMA_LISTEN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.NoSpeechTimeout, err = getDuration("EMA_NO_SPEECH_TIMEOUT", 8*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CompletionTimeout, err = getDuration("EMA_COMPLETION_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SynthesisTimeout, err = getDuration("EMA_SYNTHESIS_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.DeepgramKey == "" {
		slog.Warn("DEEPGRAM_API_KEY not set, voice turns will report capture unavailable")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a positive duration such as 30s", key, value)
	}
	return duration, nil
}
