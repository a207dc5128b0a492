package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayoisaiah/slumber/internal/apperr"
)

// maxSoundSize caps the size of a downloaded sound.
const maxSoundSize = 64 << 20

type httpStatusError struct {
	url    string
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.url, http.StatusText(e.status))
}

// memFile is an in-memory sound. Decoders need to seek in order to loop, so
// network sources are read fully before decoding.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}

// fetch downloads url into memory.
func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{url: url, status: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxSoundSize))
	if err != nil {
		return nil, err
	}

	return b, nil
}

// classify converts a load failure into the audio error taxonomy.
func classify(err error, id string) *Error {
	if e, ok := apperr.As(err); ok {
		return e
	}

	var (
		statusErr *httpStatusError
		netErr    net.Error
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errTimeout.Wrap(err)
	case errors.As(err, &statusErr):
		switch statusErr.status {
		case http.StatusNotFound, http.StatusGone:
			return errNotFound.Fmt(id).Wrap(err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errPermission.Fmt(id).Wrap(err)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return errTimeout.Wrap(err)
		default:
			return errNetwork.Wrap(err)
		}
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return errTimeout.Wrap(err)
		}

		return errNetwork.Wrap(err)
	case errors.Is(err, fs.ErrNotExist):
		return errNotFound.Fmt(id).Wrap(err)
	case errors.Is(err, fs.ErrPermission):
		return errPermission.Fmt(id).Wrap(err)
	default:
		return errPlayback.Fmt(id).Wrap(err)
	}
}

// race runs fn and waits for it or for ctx to be done, whichever comes
// first. A result that arrives after the deadline is handed to discard.
func race[T any](
	ctx context.Context,
	fn func(ctx context.Context) (T, error),
	discard func(T),
) (T, error) {
	type result struct {
		err error
		v   T
	}

	ch := make(chan result, 1)

	go func() {
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		go func() {
			r := <-ch
			if r.err == nil && discard != nil {
				discard(r.v)
			}
		}()

		var zero T

		return zero, ctx.Err()
	}
}

// writeFileAtomic writes b to path through a temporary file so that a
// partial download never looks like a cached sound.
func writeFileAtomic(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
