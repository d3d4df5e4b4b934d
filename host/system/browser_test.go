package system

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/grovetools/deck/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	args []string
	err  error
}

func (r *recorder) start(name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestOpenPlatformCommand(t *testing.T) {
	t.Setenv("BROWSER", "")

	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{"https://claude.ai"}},
		{"windows", "cmd", []string{"/c", "start", "", "https://claude.ai"}},
		{"linux", "xdg-open", []string{"https://claude.ai"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recorder{}
			b := &Browser{Start: rec.start, GOOS: tt.goos}
			require.NoError(t, b.Open("https://claude.ai", "popup_claude_x", nil))
			assert.Equal(t, tt.name, rec.name)
			assert.Equal(t, tt.args, rec.args)
		})
	}
}

func TestOpenHonorsBrowserEnv(t *testing.T) {
	t.Setenv("BROWSER", "firefox --new-window")
	rec := &recorder{}
	b := &Browser{Start: rec.start, GOOS: "linux"}

	require.NoError(t, b.Open("https://poe.com", "_blank", nil))
	assert.Equal(t, "firefox", rec.name)
	assert.Equal(t, []string{"--new-window", "https://poe.com"}, rec.args)
}

func TestOpenErrors(t *testing.T) {
	t.Setenv("BROWSER", "")
	b := &Browser{Start: (&recorder{err: stderrors.New("not found")}).start, GOOS: "linux"}

	err := b.Open("https://poe.com", "_blank", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeHostUnavailable))

	err = b.Open("  ", "_blank", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name        string
		assumeYes   bool
		interactive bool
		input       string
		want        bool
	}{
		{"assume yes", true, false, "", true},
		{"non-interactive denies", false, false, "y\n", false},
		{"yes", false, true, "y\n", true},
		{"full yes", false, true, "YES\n", true},
		{"no", false, true, "n\n", false},
		{"empty defaults to no", false, true, "\n", false},
		{"eof", false, true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			b := &Browser{
				AssumeYes:     tt.assumeYes,
				In:            strings.NewReader(tt.input),
				Out:           &out,
				IsInteractive: func() bool { return tt.interactive },
			}
			assert.Equal(t, tt.want, b.Confirm("Attempting to open 2 new tabs."))
			if tt.interactive && !tt.assumeYes {
				assert.Equal(t, "Attempting to open 2 new tabs. [y/N] ", out.String())
			}
		})
	}
}
