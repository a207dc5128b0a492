// Package audio plays ambient sounds and the alarm through a pluggable
// engine, with one sound playing at a time.
package audio

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExt is assumed for sounds referenced without an extension.
const DefaultExt = ".ogg"

var supportedExts = []string{".ogg", ".mp3", ".flac", ".wav"}

// Track is a decoded sound ready to be played.
type Track interface {
	io.Closer
}

// Engine is the playback boundary. Implementations play a single track at a
// time.
type Engine interface {
	// Load decodes r according to the file extension ext.
	Load(ctx context.Context, r io.ReadCloser, ext string) (Track, error)
	// Play starts t at volume v in [0,1], replacing whatever was playing.
	Play(t Track, volume float64, loop bool) error
	Pause() error
	Resume() error
	// Stop halts playback and releases the current track.
	Stop() error
	SetVolume(v float64) error
}

// Ext returns the lower-cased extension of a sound name, defaulting to
// DefaultExt.
func Ext(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultExt
	}

	return ext
}

// Supported reports whether ext can be decoded.
func Supported(ext string) bool {
	return slices.Contains(supportedExts, ext)
}
