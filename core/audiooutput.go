package orchestration

import (
	"context"

	"github.com/koscakluka/ema-voiceturn/core/audio"
)

// audioOutput hands reply audio to the playback sink. The sink holds one
// reply at a time, so the buffer is cleared before new audio is sent.
type audioOutput struct {
	client AudioOutput
}

func (a *audioOutput) set(client AudioOutput) {
	if a != nil {
		a.client = client
	}
}

func (a *audioOutput) isConfigured() bool { return a != nil && a.client != nil }

func (a *audioOutput) EncodingInfo() audio.EncodingInfo {
	if !a.isConfigured() {
		return audio.GetSpeechEncodingInfo()
	}
	if info := a.client.EncodingInfo(); !info.IsZero() {
		return info
	}
	return audio.GetSpeechEncodingInfo()
}

// play does not wait for playback to finish.
func (a *audioOutput) play(ctx context.Context, speech []byte) error {
	if !a.isConfigured() {
		return nil
	}

	return panicSafeNamedWorker("playback", func(context.Context) error {
		a.client.ClearBuffer()
		return a.client.SendAudio(speech)
	})(ctx)
}
