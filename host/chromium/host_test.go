package chromium

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	args   []string
	url    string
	closed bool
}

func (w *fakeWindow) Goto(url string) error {
	w.url = url
	return nil
}

func (w *fakeWindow) Close() error {
	w.closed = true
	return nil
}

type fakeBrowser struct {
	windows []*fakeWindow
	err     error
}

func (f *fakeBrowser) launch(args []string) (Window, error) {
	if f.err != nil {
		return nil, f.err
	}
	w := &fakeWindow{args: args}
	f.windows = append(f.windows, w)
	return w, nil
}

type answer bool

func (a answer) Confirm(string) bool { return bool(a) }

func TestArgs(t *testing.T) {
	assert.Nil(t, Args(nil))
	assert.Equal(t, []string{"--window-position=500,400", "--window-size=500,400"},
		Args(&launcher.Rect{X: 500, Y: 400, Width: 500, Height: 400}))
}

func TestOpenPlacesWindow(t *testing.T) {
	fb := &fakeBrowser{}
	h := NewWithLauncher(answer(true), nil, fb.launch)

	geo := &launcher.Rect{X: 0, Y: 0, Width: 640, Height: 480}
	require.NoError(t, h.Open("https://claude.ai", "popup_claude_1", geo))

	require.Len(t, fb.windows, 1)
	assert.Equal(t, "https://claude.ai", fb.windows[0].url)
	assert.Contains(t, fb.windows[0].args, "--window-size=640,480")
	assert.Equal(t, 1, h.Len())
}

func TestReopenSameNameReplaces(t *testing.T) {
	fb := &fakeBrowser{}
	h := NewWithLauncher(answer(true), nil, fb.launch)

	require.NoError(t, h.Open("https://claude.ai", "llm_claude", nil))
	require.NoError(t, h.Open("https://claude.ai", "llm_claude", nil))

	require.Len(t, fb.windows, 2)
	assert.True(t, fb.windows[0].closed)
	assert.False(t, fb.windows[1].closed)
	assert.Equal(t, 1, h.Len())
}

func TestTabsNeverReplace(t *testing.T) {
	fb := &fakeBrowser{}
	h := NewWithLauncher(answer(true), nil, fb.launch)

	require.NoError(t, h.Open("https://a.example.com", launcher.TabTarget, nil))
	require.NoError(t, h.Open("https://b.example.com", launcher.TabTarget, nil))
	assert.Equal(t, 2, h.Len())
}

func TestOpenFailure(t *testing.T) {
	h := NewWithLauncher(answer(true), nil, (&fakeBrowser{err: stderrors.New("no display")}).launch)

	err := h.Open("https://claude.ai", "llm_claude", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeHostUnavailable))
	assert.Equal(t, 0, h.Len())
}

func TestCloseShutsEverything(t *testing.T) {
	fb := &fakeBrowser{}
	h := NewWithLauncher(answer(true), nil, fb.launch)
	require.NoError(t, h.Open("https://a.example.com", "popup_a_1", nil))
	require.NoError(t, h.Open("https://b.example.com", "popup_b_1", nil))

	require.NoError(t, h.Close())
	assert.Equal(t, 0, h.Len())
	for _, w := range fb.windows {
		assert.True(t, w.closed)
	}
}

func TestConfirmDelegates(t *testing.T) {
	assert.True(t, NewWithLauncher(answer(true), nil, nil).Confirm("go?"))
	assert.False(t, NewWithLauncher(answer(false), nil, nil).Confirm("go?"))
	assert.False(t, NewWithLauncher(nil, nil, nil).Confirm("go?"))
}

func TestDistinctHandlesKeepBothWindows(t *testing.T) {
	fb := &fakeBrowser{}
	h := NewWithLauncher(answer(true), nil, fb.launch)

	require.NoError(t, h.Open("https://a.example.com", "popup_a_tok1", nil))
	require.NoError(t, h.Open("https://a.example.com", "popup_a_tok2", nil))

	assert.Equal(t, 2, h.Len())
	for _, w := range fb.windows {
		assert.False(t, w.closed)
	}
}

// gatedBrowser blocks each launch until release is closed.
type gatedBrowser struct {
	entered chan struct{}
	release chan struct{}

	mu      sync.Mutex
	windows []*fakeWindow
}

func newGatedBrowser() *gatedBrowser {
	return &gatedBrowser{entered: make(chan struct{}, 4), release: make(chan struct{})}
}

func (g *gatedBrowser) launch(args []string) (Window, error) {
	g.entered <- struct{}{}
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	w := &fakeWindow{args: args}
	g.windows = append(g.windows, w)
	return w, nil
}

func TestSlowLaunchDoesNotHoldHost(t *testing.T) {
	gb := newGatedBrowser()
	h := NewWithLauncher(answer(true), nil, gb.launch)

	done := make(chan error, 1)
	go func() { done <- h.Open("https://a.example.com", "popup_a_tok", nil) }()
	<-gb.entered

	lenDone := make(chan int, 1)
	go func() { lenDone <- h.Len() }()
	select {
	case n := <-lenDone:
		assert.Equal(t, 0, n)
	case <-time.After(time.Second):
		t.Fatal("Len blocked behind a launch")
	}

	close(gb.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.Len())
}

func TestCloseDuringLaunchDiscardsWindow(t *testing.T) {
	gb := newGatedBrowser()
	h := NewWithLauncher(answer(true), nil, gb.launch)

	done := make(chan error, 1)
	go func() { done <- h.Open("https://a.example.com", "popup_a_tok", nil) }()
	<-gb.entered

	require.NoError(t, h.Close())
	close(gb.release)

	err := <-done
	assert.True(t, errors.Is(err, errors.ErrCodeHostUnavailable))
	assert.Equal(t, 0, h.Len())
	gb.mu.Lock()
	defer gb.mu.Unlock()
	require.Len(t, gb.windows, 1)
	assert.True(t, gb.windows[0].closed)

	assert.Error(t, h.Open("https://b.example.com", "popup_b_tok", nil), "closed host opens nothing")
}
