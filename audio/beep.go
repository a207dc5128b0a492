package audio

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	sampleRate      beep.SampleRate = 44100
	resampleQuality                 = 4
	bufferSize                      = 10 // buffers per second
)

type beepTrack struct {
	stream beep.StreamSeekCloser
	format beep.Format
}

func (t *beepTrack) Close() error {
	return t.stream.Close()
}

// BeepEngine plays sounds through the system speaker.
type BeepEngine struct {
	current *beepTrack
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	initErr error
	once    sync.Once
}

// NewBeepEngine returns an engine backed by gopxl/beep. The speaker is
// initialised on first playback.
func NewBeepEngine() *BeepEngine {
	return &BeepEngine{}
}

func (e *BeepEngine) init() error {
	e.once.Do(func() {
		e.initErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Second/bufferSize),
		)
	})

	return e.initErr
}

func (e *BeepEngine) Load(
	_ context.Context,
	r io.ReadCloser,
	ext string,
) (Track, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(r)
	case ".mp3":
		stream, format, err = mp3.Decode(r)
	case ".flac":
		stream, format, err = flac.Decode(r)
	case ".wav":
		stream, format, err = wav.Decode(r)
	default:
		_ = r.Close()
		return nil, errUnsupportedFormat.Fmt(ext)
	}

	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return &beepTrack{stream: stream, format: format}, nil
}

// gain converts a linear volume in [0,1] to the exponent used by
// effects.Volume with base 2.
func gain(v float64) (volume float64, silent bool) {
	if v <= 0 {
		return 0, true
	}

	return math.Log2(v), false
}

func (e *BeepEngine) Play(t Track, v float64, loop bool) error {
	track, ok := t.(*beepTrack)
	if !ok {
		return errPlayback.Fmt("unknown track")
	}

	if err := e.init(); err != nil {
		return err
	}

	speaker.Clear()

	var s beep.Streamer = track.stream
	if loop {
		s = beep.Loop(-1, track.stream)
	}

	if track.format.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, track.format.SampleRate, sampleRate, s)
	}

	ctrl := &beep.Ctrl{Streamer: s}

	vol, silent := gain(v)

	volume := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   vol,
		Silent:   silent,
	}

	speaker.Lock()
	e.current, e.ctrl, e.volume = track, ctrl, volume
	speaker.Unlock()

	speaker.Play(volume)

	return nil
}

func (e *BeepEngine) setPaused(paused bool) error {
	speaker.Lock()
	defer speaker.Unlock()

	if e.ctrl != nil {
		e.ctrl.Paused = paused
	}

	return nil
}

func (e *BeepEngine) Pause() error {
	return e.setPaused(true)
}

func (e *BeepEngine) Resume() error {
	return e.setPaused(false)
}

func (e *BeepEngine) SetVolume(v float64) error {
	speaker.Lock()
	defer speaker.Unlock()

	if e.volume != nil {
		e.volume.Volume, e.volume.Silent = gain(v)
	}

	return nil
}

func (e *BeepEngine) Stop() error {
	if e.current == nil {
		return nil
	}

	speaker.Clear()

	track := e.current
	e.current, e.ctrl, e.volume = nil, nil, nil

	return track.Close()
}
