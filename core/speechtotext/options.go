package speechtotext

import (
	"time"

	"github.com/koscakluka/ema-voiceturn/core/audio"
)

const DefaultLocale = "ko-KR"

// TranscriptionOptions configures a single transcription session.
//
// A session reports at most one of ResultCallback, NoMatchCallback or
// ErrorCallback for the utterance, and always finishes with EndCallback,
// including when capture ends without any result.
type TranscriptionOptions struct {
	Locale string

	ResultCallback  func(transcript string)
	NoMatchCallback func()
	ErrorCallback   func(err error)
	EndCallback     func()

	// NoSpeechTimeout bounds how long the session waits for speech to start
	// before reporting no match. Zero leaves the choice to the client.
	NoSpeechTimeout time.Duration

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func NewTranscriptionOptions(opts ...TranscriptionOption) TranscriptionOptions {
	options := TranscriptionOptions{
		Locale:          DefaultLocale,
		ResultCallback:  func(string) {},
		NoMatchCallback: func() {},
		ErrorCallback:   func(error) {},
		EndCallback:     func() {},
		EncodingInfo:    audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func WithLocale(locale string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if locale != "" {
			o.Locale = locale
		}
	}
}

func WithResultCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if callback != nil {
			o.ResultCallback = callback
		}
	}
}

func WithNoMatchCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if callback != nil {
			o.NoMatchCallback = callback
		}
	}
}

func WithErrorCallback(callback func(err error)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if callback != nil {
			o.ErrorCallback = callback
		}
	}
}

func WithEndCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if callback != nil {
			o.EndCallback = callback
		}
	}
}

func WithNoSpeechTimeout(timeout time.Duration) TranscriptionOption {
	return func(o *TranscriptionOptions) { o.NoSpeechTimeout = timeout }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if encodingInfo.IsZero() {
			return
		}
		o.EncodingInfo = encodingInfo
	}
}
