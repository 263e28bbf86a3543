package playback

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"bami/internal/voice"
)

// Engine turns a track source into opus frames on a voice transport by
// piping `yt-dlp -f bestaudio -o -` through ffmpeg into a gopus encoder.
// Decoding stays in the external processes; this package only moves PCM.
type Engine struct {
	ytdlpPath  string
	ffmpegPath string
	log        *zap.Logger
}

// NewEngine creates a playback engine using the given tool binaries
func NewEngine(ytdlpPath, ffmpegPath string, log *zap.Logger) *Engine {
	return &Engine{
		ytdlpPath:  ytdlpPath,
		ffmpegPath: ffmpegPath,
		log:        log,
	}
}

// Start launches the pipeline for one track and streams it until it ends
// or the returned handle stops it. Implements voice.Engine.
func (e *Engine) Start(transport voice.Transport, track *voice.TrackEntry, onStarted func(), onDone func(error)) (voice.Handle, error) {
	ctx, cancel := context.WithCancel(context.Background())

	ytdlp := exec.CommandContext(ctx, e.ytdlpPath,
		"-f", "bestaudio",
		"-o", "-",
		"--quiet",
		"--no-playlist",
		track.Source,
	)
	ytdlp.Stderr = io.Discard

	audioOut, err := ytdlp.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("yt-dlp stdout pipe: %w", err)
	}

	ffmpeg := exec.CommandContext(ctx, e.ffmpegPath,
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)
	ffmpeg.Stdin = audioOut
	ffmpeg.Stderr = io.Discard

	pcmOut, err := ffmpeg.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}

	if err := ytdlp.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("starting yt-dlp: %w", err)
	}
	if err := ffmpeg.Start(); err != nil {
		cancel()
		_ = ytdlp.Wait()
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}

	encoder, err := newOpusEncoder()
	if err != nil {
		cancel()
		_ = ytdlp.Wait()
		_ = ffmpeg.Wait()
		return nil, fmt.Errorf("creating opus encoder: %w", err)
	}

	e.log.Debug("playback pipeline started",
		zap.String("track_id", track.ID),
		zap.Int("ytdlp_pid", ytdlp.Process.Pid),
		zap.Int("ffmpeg_pid", ffmpeg.Process.Pid),
	)

	r := &run{
		cancel:    cancel,
		loopDone:  make(chan struct{}),
		onStarted: onStarted,
		onDone:    onDone,
	}

	go func() {
		err := r.loop(ctx, transport, pcmOut, encoder)
		// CommandContext killed the processes on cancel; reap them either way.
		_ = ytdlp.Wait()
		_ = ffmpeg.Wait()
		close(r.loopDone)
		if !r.stopped.Load() {
			r.onDone(err)
		}
	}()

	return r, nil
}

// run is one in-flight pipeline; it implements voice.Handle
type run struct {
	cancel    context.CancelFunc
	loopDone  chan struct{}
	onStarted func()
	onDone    func(error)

	paused  atomic.Bool
	stopped atomic.Bool
	started atomic.Bool
}

func (r *run) Pause() {
	r.paused.Store(true)
}

func (r *run) Resume() {
	r.paused.Store(false)
}

// Stop kills the pipeline and waits for the loop to wind down. Callbacks
// are suppressed from here on, so a skip never races a completion.
func (r *run) Stop() {
	r.stopped.Store(true)
	r.cancel()
	<-r.loopDone
}

// loop reads 20ms PCM frames, encodes and ships them until the stream ends
// or the context is cancelled
func (r *run) loop(ctx context.Context, transport voice.Transport, pcm io.Reader, encoder *opusEncoder) error {
	_ = transport.Speaking(true)
	defer func() { _ = transport.Speaking(false) }()

	buf := make([]byte, frameBytes)
	for {
		if ctx.Err() != nil {
			return nil
		}

		if r.paused.Load() {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(20 * time.Millisecond):
			}
			continue
		}

		n, err := io.ReadFull(pcm, buf)
		if err == io.EOF {
			return nil
		}
		if err == io.ErrUnexpectedEOF {
			// Final partial frame: pad with silence and send it out.
			for i := n; i < frameBytes; i++ {
				buf[i] = 0
			}
			err = nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading pcm: %w", err)
		}

		packet, err := encoder.encode(buf)
		if err != nil {
			return fmt.Errorf("encoding opus: %w", err)
		}

		if r.started.CompareAndSwap(false, true) && !r.stopped.Load() {
			r.onStarted()
		}

		select {
		case transport.Send() <- packet:
		case <-ctx.Done():
			return nil
		}
	}
}
