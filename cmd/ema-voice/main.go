// Command ema-voice runs voice turns from the terminal: press space or enter
// to speak, and the transcript grows as replies arrive.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	orchestration "github.com/koscakluka/ema-voiceturn/core"
	"github.com/koscakluka/ema-voiceturn/core/audio/miniaudio"
	"github.com/koscakluka/ema-voiceturn/core/audio/portaudio"
	"github.com/koscakluka/ema-voiceturn/core/events"
	"github.com/koscakluka/ema-voiceturn/core/llms"
	"github.com/koscakluka/ema-voiceturn/core/llms/groq"
	llmopenai "github.com/koscakluka/ema-voiceturn/core/llms/openai"
	sttdeepgram "github.com/koscakluka/ema-voiceturn/core/speechtotext/deepgram"
	ttsdeepgram "github.com/koscakluka/ema-voiceturn/core/texttospeech/deepgram"
	ttsopenai "github.com/koscakluka/ema-voiceturn/core/texttospeech/openai"
	"github.com/koscakluka/ema-voiceturn/internal/config"
)

const portaudioBufferSize = 1024

func main() {
	logPath := flag.String("log", "ema-voice.log", "file the log is written to")
	flag.Parse()

	if err := run(*logPath); err != nil {
		fmt.Fprintln(os.Stderr, "ema-voice:", err)
		os.Exit(1)
	}
}

func run(logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := []orchestration.OrchestratorOption{
		orchestration.WithLocale(cfg.Locale),
		orchestration.WithSystemDirective(cfg.SystemDirective),
		orchestration.WithListenTimeout(cfg.ListenTimeout),
		orchestration.WithNoSpeechTimeout(cfg.NoSpeechTimeout),
		orchestration.WithCompletionTimeout(cfg.CompletionTimeout),
		orchestration.WithSynthesisTimeout(cfg.SynthesisTimeout),
	}

	closeAudio, audioOpts, err := openAudio(cfg.AudioBackend)
	if err != nil {
		slog.Warn("audio devices unavailable, replies will be text only", "backend", cfg.AudioBackend, "error", err)
	} else {
		defer closeAudio()
		opts = append(opts, audioOpts...)
	}
	opts = append(opts, capabilityOptions(cfg)...)

	var program *tea.Program
	opts = append(opts, orchestration.WithEventHandler(func(event events.Event) {
		if program != nil {
			program.Send(turnEventMsg{event: event})
		}
	}))

	orchestrator := orchestration.NewOrchestrator(opts...)
	defer orchestrator.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program = tea.NewProgram(newModel(ctx, orchestrator), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}

func openAudio(backend string) (func(), []orchestration.OrchestratorOption, error) {
	switch backend {
	case config.BackendPortaudio:
		client, err := portaudio.NewClient(portaudioBufferSize)
		if err != nil {
			return nil, nil, err
		}
		return client.Close, []orchestration.OrchestratorOption{
			orchestration.WithAudioInput(client.Capture),
			orchestration.WithAudioOutput(client.Playback),
		}, nil
	default:
		client, err := miniaudio.NewClient()
		if err != nil {
			return nil, nil, err
		}
		return client.Close, []orchestration.OrchestratorOption{
			orchestration.WithAudioInput(client.Capture),
			orchestration.WithAudioOutput(client.Playback),
		}, nil
	}
}

// capabilityOptions wires the configured services. A service that cannot be
// built is left out; the orchestrator treats it as unavailable.
func capabilityOptions(cfg config.Config) []orchestration.OrchestratorOption {
	var opts []orchestration.OrchestratorOption

	if stt, err := sttdeepgram.NewTranscriptionClient(cfg.DeepgramKey); err != nil {
		slog.Warn("transcription unavailable", "error", err)
	} else {
		opts = append(opts, orchestration.WithSpeechToTextClient(stt))
	}

	switch cfg.CompletionProvider {
	case config.ProviderGroq:
		if completion, err := groq.NewClient(cfg.GroqKey, llms.WithModel(cfg.CompletionModel)); err != nil {
			slog.Warn("completion unavailable", "provider", cfg.CompletionProvider, "error", err)
		} else {
			opts = append(opts, orchestration.WithCompletionClient(completion))
		}
	default:
		if completion, err := llmopenai.NewClient(cfg.OpenAIKey, llms.WithModel(cfg.CompletionModel)); err != nil {
			slog.Warn("completion unavailable", "provider", cfg.CompletionProvider, "error", err)
		} else {
			opts = append(opts, orchestration.WithCompletionClient(completion))
		}
	}

	switch cfg.SynthesisProvider {
	case config.ProviderDeepgram:
		if synthesis, err := ttsdeepgram.NewTextToSpeechClient(cfg.DeepgramKey, cfg.SynthesisVoice); err != nil {
			slog.Warn("synthesis unavailable", "provider", cfg.SynthesisProvider, "error", err)
		} else {
			opts = append(opts, orchestration.WithTextToSpeechClient(synthesis))
		}
	default:
		synthesis, err := ttsopenai.NewSpeechClient(cfg.OpenAIKey, ttsopenai.SpeechClientOptions{
			Model: cfg.SynthesisModel,
			Voice: cfg.SynthesisVoice,
		})
		if err != nil {
			slog.Warn("synthesis unavailable", "provider", cfg.SynthesisProvider, "error", err)
		} else {
			opts = append(opts, orchestration.WithTextToSpeechClient(synthesis))
		}
	}

	return opts
}
