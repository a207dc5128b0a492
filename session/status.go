package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/mitchellh/go-ps"
)

var findProcess = ps.FindProcess

// Status describes the session shown by a running Slumber screen.
type Status struct {
	StartTime time.Time `json:"start_time"`
	AlarmTime time.Time `json:"alarm_time"`
	Trigger   time.Time `json:"trigger"`
	SessionID string    `json:"session_id"`
	Sound     string    `json:"sound,omitempty"`
	PID       int       `json:"pid"`
}

// Running reports whether the process that wrote the status still exists.
func (s *Status) Running() bool {
	p, err := findProcess(s.PID)

	return err == nil && p != nil
}

// WriteStatus records st at path.
func WriteStatus(path string, st *Status) (err error) {
	statusFile, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil && err == nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(st)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReadStatus returns the recorded status, or nil when none was written.
func ReadStatus(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, errStatusFile.Wrap(err)
	}

	var st Status

	if err := json.Unmarshal(b, &st); err != nil {
		return nil, errStatusFile.Wrap(err)
	}

	return &st, nil
}
