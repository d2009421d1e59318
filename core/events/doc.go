// Package events defines the typed voice turn event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - user_input.*
//   - assistant_response.*
//   - assistant_speech.*
//   - assistant_playback.*
//   - turn_state.*
//
// user_input events
//
//   - UserTranscriptFinal (user_input.transcript_final): transcript appended
//     as the user turn.
//
// assistant_response events
//
//   - AssistantResponseFinal (assistant_response.final): reply appended as the
//     assistant turn.
//
// assistant_speech events
//
//   - AssistantSpeechGenerated (assistant_speech.generated): synthesized reply
//     audio.
//
// assistant_playback events
//
//   - AssistantPlaybackStarted (assistant_playback.started): reply audio was
//     handed to the playback sink. Playback is not awaited.
//
// turn_state events
//
//   - TurnStateChanged (turn_state.changed): the turn moved between states.
//   - TurnFailed (turn_state.failed): a stage failed; carries the stage name
//     and error.
//   - TurnEnded (turn_state.ended): the orchestrator is idle again.
package events
