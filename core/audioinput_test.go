package orchestration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/koscakluka/ema-voiceturn/core/audio"
)

func TestAudioInputReleaseOnlyStopsOwningSession(t *testing.T) {
	stub := &audioInputStub{}
	input := audioInput{client: stub}

	first := newCaptureSession()
	second := newCaptureSession()
	if err := input.start(context.Background(), first, func([]byte) {}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if err := input.start(context.Background(), second, func([]byte) {}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if stub.stops.Load() != 1 {
		t.Fatalf("expected previous capture to be stopped, got %d stops", stub.stops.Load())
	}

	if err := input.release(first); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if stub.stops.Load() != 1 || !input.isCapturing() {
		t.Fatalf("expected stale release to leave the new capture running")
	}

	if err := input.release(second); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if stub.stops.Load() != 2 || input.isCapturing() {
		t.Fatalf("expected capture to stop, got %d stops", stub.stops.Load())
	}
}

func TestAudioInputStartFailure(t *testing.T) {
	input := audioInput{client: &audioInputStub{startErr: errors.New("busy")}}

	session := newCaptureSession()
	if err := input.start(context.Background(), session, func([]byte) {}); !errors.Is(err, ErrCaptureUnavailable) {
		t.Fatalf("expected capture unavailable, got %v", err)
	}
	if input.isCapturing() {
		t.Fatalf("expected failed start to leave no active capture")
	}
}

func TestAudioInputUnconfigured(t *testing.T) {
	var input audioInput

	if err := input.start(context.Background(), newCaptureSession(), func([]byte) {}); err != nil {
		t.Fatalf("expected unconfigured start to be a no-op, got %v", err)
	}
	if input.EncodingInfo() != audio.GetDefaultEncodingInfo() {
		t.Fatalf("expected default encoding, got %+v", input.EncodingInfo())
	}
}

// slowStopDevice takes a while to apply StopCapture, like a real device
// draining its buffers.
type slowStopDevice struct {
	mu        sync.Mutex
	capturing bool
	stopping  chan struct{}
}

func (d *slowStopDevice) EncodingInfo() audio.EncodingInfo { return audio.GetDefaultEncodingInfo() }

func (d *slowStopDevice) StartCapture(context.Context, func([]byte)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.capturing = true
	return nil
}

func (d *slowStopDevice) StopCapture() error {
	select {
	case d.stopping <- struct{}{}:
	default:
	}
	time.Sleep(30 * time.Millisecond)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.capturing = false
	return nil
}

func (d *slowStopDevice) isCapturing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capturing
}

func TestAudioInputStaleReleaseDoesNotStopNewerCapture(t *testing.T) {
	device := &slowStopDevice{stopping: make(chan struct{}, 1)}
	input := audioInput{client: device}

	first := newCaptureSession()
	if err := input.start(context.Background(), first, func([]byte) {}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	released := make(chan error, 1)
	go func() { released <- input.release(first) }()

	select {
	case <-device.stopping:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for release to stop capture")
	}

	second := newCaptureSession()
	if err := input.start(context.Background(), second, func([]byte) {}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	select {
	case err := <-released:
		if err != nil {
			t.Fatalf("unexpected release error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for release")
	}

	if !input.isCapturing() || !device.isCapturing() {
		t.Fatalf("expected the newer session to keep capturing, tracked %v device %v",
			input.isCapturing(), device.isCapturing())
	}
}
