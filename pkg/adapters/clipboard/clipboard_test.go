package clipboard

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func fakeSystem(env map[string]string, sysErr error) (*System, *bytes.Buffer) {
	var tty bytes.Buffer
	return &System{
		writeAll: func(string) error { return sysErr },
		openTTY:  func() (io.WriteCloser, error) { return nopCloser{&tty}, nil },
		getenv:   func(k string) string { return env[k] },
	}, &tty
}

func TestWriteText_System(t *testing.T) {
	s, tty := fakeSystem(nil, nil)
	require.NoError(t, s.WriteText("PUBLICATC"))
	assert.Equal(t, MethodSystem, s.LastMethod())
	assert.Zero(t, tty.Len())
}

func TestWriteText_FallsBackToOSC52(t *testing.T) {
	s, tty := fakeSystem(map[string]string{"TERM": "xterm-256color"}, errors.New("exit status 1"))
	require.NoError(t, s.WriteText("31xxRy8Zpy"))
	assert.Equal(t, MethodOSC52, s.LastMethod())
	assert.Contains(t, tty.String(), "\x1b]52;")
}

func TestWriteText_TmuxWritesBoth(t *testing.T) {
	s, tty := fakeSystem(map[string]string{"TERM": "screen", "TMUX": "/tmp/tmux-0/default"}, errors.New("no helper"))
	require.NoError(t, s.WriteText("x"))
	assert.Equal(t, 2, bytes.Count(tty.Bytes(), []byte("]52;")))
	assert.Contains(t, tty.String(), "\x1bPtmux;")
}

func TestWriteText_BothFail(t *testing.T) {
	s, _ := fakeSystem(map[string]string{"TERM": "dumb"}, errors.New("exit status 1"))
	err := s.WriteText("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no GUI clipboard available")

	s, _ = fakeSystem(map[string]string{"TERM": "xterm", DisableOSC52Env: "yes", "DISPLAY": ":0"}, errors.New("exit status 1"))
	err = s.WriteText("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard helper exited with status 1")
	assert.Contains(t, err.Error(), "OSC52 unavailable")
}
