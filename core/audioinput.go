package orchestration

import (
	"context"
	"fmt"
	"sync"

	"github.com/koscakluka/ema-voiceturn/core/audio"
)

// audioInput owns the capture device. At most one capture session holds it;
// starting a new session releases the previous one first.
type audioInput struct {
	client AudioInput

	// deviceMu serializes StartCapture and StopCapture so a stale release
	// cannot stop a device a newer session already started.
	deviceMu sync.Mutex

	mu     sync.Mutex
	active *captureSession
}

func (a *audioInput) set(client AudioInput) {
	if a != nil {
		a.client = client
	}
}

func (a *audioInput) isConfigured() bool { return a != nil && a.client != nil }

func (a *audioInput) EncodingInfo() audio.EncodingInfo {
	if !a.isConfigured() {
		return audio.GetDefaultEncodingInfo()
	}
	if info := a.client.EncodingInfo(); !info.IsZero() {
		return info
	}
	return audio.GetDefaultEncodingInfo()
}

func (a *audioInput) start(ctx context.Context, session *captureSession, onAudio func([]byte)) error {
	if !a.isConfigured() {
		return nil
	}

	a.deviceMu.Lock()
	defer a.deviceMu.Unlock()

	a.mu.Lock()
	previous := a.active
	a.active = session
	a.mu.Unlock()

	if previous != nil {
		if err := a.client.StopCapture(); err != nil {
			logger.Warn("failed to stop previous capture", "error", err)
		}
	}

	if err := panicSafeNamedWorker("capture", func(ctx context.Context) error {
		return a.client.StartCapture(ctx, onAudio)
	})(ctx); err != nil {
		a.mu.Lock()
		if a.active == session {
			a.active = nil
		}
		a.mu.Unlock()
		return fmt.Errorf("%w: failed to start capture: %w", ErrCaptureUnavailable, err)
	}
	return nil
}

// release stops capture if session still holds the device.
func (a *audioInput) release(session *captureSession) error {
	if !a.isConfigured() {
		return nil
	}

	a.deviceMu.Lock()
	defer a.deviceMu.Unlock()

	a.mu.Lock()
	if a.active != session {
		a.mu.Unlock()
		return nil
	}
	a.active = nil
	a.mu.Unlock()

	return a.client.StopCapture()
}

func (a *audioInput) isCapturing() bool {
	if a == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active != nil
}
