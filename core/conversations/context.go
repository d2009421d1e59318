package conversations

// ReadOnlyV0 exposes conversation history to collaborators that only render
// or forward it.
type ReadOnlyV0 interface {
	// Recorded turns only. Ordering: oldest -> newest.
	Snapshot() []Turn
	Len() int
}
