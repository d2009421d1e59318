package miniaudio

import (
	"fmt"

	"github.com/gen2brain/malgo"
)

// Client owns the miniaudio context together with one capture and one
// playback device.
type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext

	Playback *PlaybackDevice
	Capture  *CaptureDevice
}

func NewClient() (*Client, error) {
	audioCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("malgo context init failed: %w", err)
	}

	client := Client{
		audioContext: audioCtx,
		Playback:     &PlaybackDevice{},
		Capture:      &CaptureDevice{},
	}

	if err := client.Playback.init(audioCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := client.Playback.start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	if err := client.Capture.init(audioCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture device: %w", err)
	}

	return &client, nil
}

func (c *Client) Close() {
	_ = c.Capture.uninit()
	_ = c.Playback.uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}
