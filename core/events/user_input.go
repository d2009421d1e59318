package events

// KindUserTranscriptFinal identifies the utterance recorded as the user turn.
const KindUserTranscriptFinal Kind = "user_input.transcript_final"

// UserTranscriptFinal carries the terminal transcript for the utterance.
type UserTranscriptFinal struct {
	Base
	Transcript string
}

// NewUserTranscriptFinal creates a user transcript final event.
func NewUserTranscriptFinal(transcript string) UserTranscriptFinal {
	return UserTranscriptFinal{Base: NewBase(KindUserTranscriptFinal), Transcript: transcript}
}
