package audio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ayoisaiah/slumber/internal/apperr"
)

const (
	// DefaultLoadTimeout bounds how long a sound may take to load.
	DefaultLoadTimeout = 15 * time.Second
	// DefaultAttempts is the number of tries PlayWithRetry and Retry make.
	DefaultAttempts = 2
	DefaultVolume   = 0.5
)

// State is a snapshot of the player.
type State struct {
	Err     error
	ID      string
	Name    string
	Volume  float64
	Playing bool
	Loaded  bool
	Loading bool
}

type request struct {
	id     string
	source string
	name   string
}

// Player owns the single sound that may be playing. It is safe for
// concurrent use. Sounds load without holding the lock, so State never
// waits on the network.
type Player struct {
	engine   Engine
	client   *http.Client
	log      *slog.Logger
	last     *request
	dir      string
	state    State
	timeout  time.Duration
	attempts int
	retries  int
	gen      uint64
	mu       sync.Mutex
}

type Option func(*Player)

// WithTimeout sets the load timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithAttempts sets the number of load attempts.
func WithAttempts(n int) Option {
	return func(p *Player) {
		if n > 0 {
			p.attempts = n
		}
	}
}

// WithHTTPClient sets the client used for streaming and downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) {
		p.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		p.log = l
	}
}

// WithVolume sets the initial volume.
func WithVolume(v float64) Option {
	return func(p *Player) {
		p.state.Volume = clamp(v)
	}
}

// NewPlayer returns a player that caches downloaded sounds in dir.
func NewPlayer(engine Engine, dir string, opts ...Option) *Player {
	p := &Player{
		engine:   engine,
		dir:      dir,
		client:   http.DefaultClient,
		log:      slog.Default(),
		timeout:  DefaultLoadTimeout,
		attempts: DefaultAttempts,
		state:    State{Volume: DefaultVolume},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}

// LocalPath returns where a downloaded copy of a sound is cached.
func (p *Player) LocalPath(id, source string) string {
	return filepath.Join(p.dir, id+Ext(source))
}

// open returns a reader for the sound, preferring the cached copy.
func (p *Player) open(
	ctx context.Context,
	id, source string,
) (io.ReadCloser, error) {
	local := p.LocalPath(id, source)

	f, err := os.Open(local)
	if err == nil {
		return f, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	switch {
	case isURL(source):
		b, err := fetch(ctx, p.client, source)
		if err != nil {
			return nil, err
		}

		return memFile{bytes.NewReader(b)}, nil
	case source != "":
		return os.Open(source)
	default:
		return nil, errInvalidSource.Fmt(id)
	}
}

// load opens and decodes a sound within the load timeout.
func (p *Player) load(ctx context.Context, id, source string) (Track, error) {
	ext := Ext(source)
	if !Supported(ext) {
		return nil, errUnsupportedFormat.Fmt(ext)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	track, err := race(ctx, func(ctx context.Context) (Track, error) {
		r, err := p.open(ctx, id, source)
		if err != nil {
			return nil, err
		}

		return p.engine.Load(ctx, r, ext)
	}, func(t Track) {
		_ = t.Close()
	})
	if err != nil {
		return nil, classify(err, id)
	}

	return track, nil
}

// Play unloads the current sound and starts looping the requested one.
// It makes a single attempt; Retry repeats it on the user's request.
func (p *Player) Play(ctx context.Context, id, source, name string) error {
	req := request{id: id, source: source, name: name}

	p.mu.Lock()
	p.last = &req
	p.retries = 0
	gen := p.begin(req)
	p.mu.Unlock()

	return p.play(ctx, req, gen)
}

// begin stops the current sound and marks req as loading. The returned
// generation must still be current when the load completes.
func (p *Player) begin(req request) uint64 {
	_ = p.stopLocked()

	p.gen++
	p.state.ID, p.state.Name = req.id, req.name
	p.state.Err = nil
	p.state.Loading = true

	return p.gen
}

// play loads req and starts it unless a newer request or Stop came in
// meanwhile, in which case the loaded track is dropped.
func (p *Player) play(ctx context.Context, req request, gen uint64) error {
	track, err := p.load(ctx, req.id, req.source)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		if track != nil {
			_ = track.Close()
		}

		p.log.DebugContext(ctx, "superseded sound discarded",
			slog.String("id", req.id),
		)

		return nil
	}

	p.state.Loading = false

	if err != nil {
		p.state.Err = err
		p.log.WarnContext(ctx, "sound load failed",
			slog.String("id", req.id),
			slog.Any("error", err),
		)

		return err
	}

	if err := p.engine.Play(track, p.state.Volume, true); err != nil {
		_ = track.Close()

		perr := classify(err, req.id)
		p.state.Err = perr

		return perr
	}

	p.state.Loaded = true
	p.state.Playing = true

	return nil
}

// PlayWithRetry is Play with up to attempts tries. Only errors flagged as
// retryable are retried.
func (p *Player) PlayWithRetry(
	ctx context.Context,
	id, source, name string,
	attempts int,
) error {
	if attempts < 1 {
		attempts = 1
	}

	req := request{id: id, source: source, name: name}

	p.mu.Lock()
	p.last = &req
	p.retries = 0
	gen := p.begin(req)
	p.mu.Unlock()

	for {
		err := p.play(ctx, req, gen)
		if err == nil || !apperr.Retryable(err) || ctx.Err() != nil {
			return err
		}

		p.mu.Lock()

		if gen != p.gen || p.retries+1 >= attempts {
			p.mu.Unlock()
			return err
		}

		p.retries++
		gen = p.begin(req)
		p.mu.Unlock()
	}
}

// Retry replays the last requested sound. It gives up once the configured
// number of attempts has been used.
func (p *Player) Retry(ctx context.Context) error {
	p.mu.Lock()

	if p.last == nil {
		p.mu.Unlock()
		return errNothingToRetry
	}

	req := *p.last

	if made := p.retries + 1; made >= p.attempts {
		p.mu.Unlock()
		return errRetriesExhausted.Fmt(req.name, made)
	}

	p.retries++
	gen := p.begin(req)
	p.mu.Unlock()

	return p.play(ctx, req, gen)
}

// CanRetry reports whether the last failure can be retried by the user.
func (p *Player) CanRetry() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.Err != nil &&
		apperr.Retryable(p.state.Err) &&
		p.retries+1 < p.attempts
}

// Pause pauses playback. It is a no-op when nothing is loaded.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.Loaded {
		return nil
	}

	if err := p.engine.Pause(); err != nil {
		return errPlayback.Fmt(p.state.ID).Wrap(err)
	}

	p.state.Playing = false

	return nil
}

// Resume resumes a paused sound. It is a no-op when nothing is loaded.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.Loaded {
		return nil
	}

	if err := p.engine.Resume(); err != nil {
		return errPlayback.Fmt(p.state.ID).Wrap(err)
	}

	p.state.Playing = true

	return nil
}

// Toggle pauses a playing sound and resumes a paused one.
func (p *Player) Toggle() error {
	if p.State().Playing {
		return p.Pause()
	}

	return p.Resume()
}

// Stop unloads the current sound. The player always ends up stopped, even
// when the engine fails; the engine error is logged and returned.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// drops a sound that is still loading
	p.gen++
	p.state.Loading = false

	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	if !p.state.Loaded {
		p.state.Playing = false
		return nil
	}

	err := p.engine.Stop()

	p.state.Loaded = false
	p.state.Playing = false

	if err != nil {
		p.log.Warn("stopping sound failed",
			slog.String("id", p.state.ID),
			slog.Any("error", err),
		)

		return errPlayback.Fmt(p.state.ID).Wrap(err)
	}

	return nil
}

// SetVolume sets the volume, clamped to [0,1].
func (p *Player) SetVolume(v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Volume = clamp(v)

	if !p.state.Loaded {
		return nil
	}

	if err := p.engine.SetVolume(p.state.Volume); err != nil {
		return errPlayback.Fmt(p.state.ID).Wrap(err)
	}

	return nil
}

// State returns a snapshot of the player.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Download fetches a sound into the cache directory and returns its path.
func (p *Player) Download(ctx context.Context, id, url string) (string, error) {
	if !isURL(url) {
		return "", errInvalidSource.Fmt(id)
	}

	ext := Ext(url)
	if !Supported(ext) {
		return "", errUnsupportedFormat.Fmt(ext)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	b, err := race(ctx, func(ctx context.Context) ([]byte, error) {
		return fetch(ctx, p.client, url)
	}, nil)
	if err != nil {
		return "", classify(err, id)
	}

	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return "", classify(err, id)
	}

	path := p.LocalPath(id, url)

	if err := writeFileAtomic(path, b); err != nil {
		return "", classify(err, id)
	}

	return path, nil
}
