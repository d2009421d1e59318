package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/koscakluka/ema-voiceturn/core/audio"
)

// Client owns the PortAudio session with one blocking input stream for
// capture and one blocking output stream for playback.
type Client struct {
	Capture  *CaptureStream
	Playback *PlaybackStream
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	capture, err := newCaptureStream(bufferSize)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	playback, err := newPlaybackStream(bufferSize)
	if err != nil {
		capture.stream.Close()
		portaudio.Terminate()
		return nil, err
	}

	return &Client{Capture: capture, Playback: playback}, nil
}

func (c *Client) Close() {
	_ = c.Capture.StopCapture()
	c.Capture.stream.Close()
	c.Playback.close()
	portaudio.Terminate()
}

type CaptureStream struct {
	stream *portaudio.Stream
	in     []int16

	mu      sync.Mutex
	onAudio func(audio []byte)
	cancel  context.CancelFunc
	done    chan struct{}
}

func newCaptureStream(bufferSize int) (*CaptureStream, error) {
	in := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, audio.DefaultSampleRate, bufferSize, in)
	if err != nil {
		return nil, fmt.Errorf("failed to open PortAudio input stream: %w", err)
	}
	return &CaptureStream{stream: stream, in: in}, nil
}

func (c *CaptureStream) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
	}
}

func (c *CaptureStream) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onAudio = onAudio
	if c.cancel != nil {
		return nil
	}

	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start PortAudio stream: %w", err)
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.read(ctx, c.done)
	return nil
}

func (c *CaptureStream) read(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := c.stream.Read(); err != nil {
			logger.Warn("failed to read from PortAudio stream", "error", err)
			continue
		}

		audioBuffer := bytes.Buffer{}
		_ = binary.Write(&audioBuffer, binary.LittleEndian, c.in)

		c.mu.Lock()
		onAudio := c.onAudio
		c.mu.Unlock()
		if onAudio != nil {
			onAudio(audioBuffer.Bytes())
		}
	}
}

func (c *CaptureStream) StopCapture() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done, c.onAudio = nil, nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop PortAudio stream: %w", err)
	}
	return nil
}

// PlaybackStream writes one queued buffer of speech at a time. Sending audio
// after ClearBuffer replaces whatever was still queued.
type PlaybackStream struct {
	stream *portaudio.Stream
	out    []int16

	mu      sync.Mutex
	pending []byte
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

func newPlaybackStream(bufferSize int) (*PlaybackStream, error) {
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, audio.SpeechSampleRate, bufferSize, out)
	if err != nil {
		return nil, fmt.Errorf("failed to open PortAudio output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to start PortAudio output stream: %w", err)
	}

	p := &PlaybackStream{
		stream: stream,
		out:    out,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.write()
	return p, nil
}

func (p *PlaybackStream) EncodingInfo() audio.EncodingInfo {
	return audio.GetSpeechEncodingInfo()
}

func (p *PlaybackStream) SendAudio(audio []byte) error {
	p.mu.Lock()
	p.pending = append(p.pending, audio...)
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
	return nil
}

func (p *PlaybackStream) ClearBuffer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
}

func (p *PlaybackStream) nextFrame() bool {
	frameSize := len(p.out) * 2

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return false
	}

	frame := make([]byte, frameSize)
	n := copy(frame, p.pending)
	p.pending = p.pending[n:]
	_ = binary.Read(bytes.NewReader(frame), binary.LittleEndian, p.out)
	return true
}

func (p *PlaybackStream) write() {
	defer close(p.done)
	for {
		if p.nextFrame() {
			if err := p.stream.Write(); err != nil {
				logger.Warn("failed to write to PortAudio stream", "error", err)
			}
			continue
		}

		select {
		case <-p.stop:
			return
		case <-p.wake:
		}
	}
}

func (p *PlaybackStream) close() {
	close(p.stop)
	<-p.done
	_ = p.stream.Stop()
	p.stream.Close()
}
