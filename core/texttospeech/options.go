package texttospeech

import "github.com/koscakluka/ema-voiceturn/core/audio"

type TextToSpeechOptions struct {
	// EncodingInfo is the raw audio format the playback sink expects.
	EncodingInfo audio.EncodingInfo
}

type TextToSpeechOption func(*TextToSpeechOptions)

func NewTextToSpeechOptions(opts ...TextToSpeechOption) TextToSpeechOptions {
	options := TextToSpeechOptions{EncodingInfo: audio.GetSpeechEncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TextToSpeechOption {
	return func(o *TextToSpeechOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
