package texttospeech

import (
	"testing"

	"github.com/koscakluka/ema-voiceturn/core/audio"
)

func TestDefaultsToSpeechEncoding(t *testing.T) {
	options := NewTextToSpeechOptions()
	if options.EncodingInfo != audio.GetSpeechEncodingInfo() {
		t.Fatalf("unexpected default encoding %+v", options.EncodingInfo)
	}
}

func TestWithEncodingInfoIgnoresZero(t *testing.T) {
	options := NewTextToSpeechOptions(WithEncodingInfo(audio.EncodingInfo{}))
	if options.EncodingInfo.IsZero() {
		t.Fatalf("expected zero encoding to be ignored")
	}

	custom := audio.GetSpeechEncodingInfo().WithSampleRate(16000)
	options = NewTextToSpeechOptions(WithEncodingInfo(custom))
	if options.EncodingInfo != custom {
		t.Fatalf("expected custom encoding, got %+v", options.EncodingInfo)
	}
}
