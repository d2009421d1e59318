package orchestration

import events "github.com/koscakluka/ema-voiceturn/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

// emit shields the turn from panicking handlers.
func (e eventEmitter) emit(event events.Event) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("event handler panicked", "kind", string(event.Kind()), "panic", recovered)
		}
	}()
	e(event)
}
