package engine

import (
	"testing"
	"time"

	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/launcher/launchertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, answer bool) (*Controller, *launchertest.Scheduler, *launchertest.Host) {
	t.Helper()
	store, err := catalog.Default()
	require.NoError(t, err)
	sched, host := launchertest.New(answer)
	l := launcher.New(host, launcher.WithScheduler(sched))
	return NewController(store, catalog.DefaultPageSize, l, nil), sched, host
}

func TestControllerClearCancelsPendingLaunch(t *testing.T) {
	c, sched, host := newController(t, true)
	for _, id := range []string{"chatgpt", "claude", "gemini"} {
		c.Dispatch(Action{Kind: Add, ID: id})
	}

	batch := c.Launch(launcher.ModeTabs)
	require.Equal(t, 3, batch.Len())

	sched.Advance(0)
	c.Dispatch(Action{Kind: Clear})
	sched.Advance(time.Second)

	assert.Len(t, host.Opened(), 1)
}

func TestControllerRemoveCancelsItemLaunch(t *testing.T) {
	c, sched, host := newController(t, true)
	for _, id := range []string{"chatgpt", "claude"} {
		c.Dispatch(Action{Kind: Add, ID: id})
	}

	c.StartLaunch(launcher.ModePopups)
	c.Dispatch(Action{Kind: Remove, ID: "claude"})
	sched.Advance(time.Second)

	opened := host.Opened()
	require.Len(t, opened, 1)
	assert.Contains(t, opened[0].Name, "popup_chatgpt_")
}

func TestControllerEmptyLaunch(t *testing.T) {
	c, _, host := newController(t, true)

	assert.Equal(t, "", c.PromptLaunch(launcher.ModeTabs))
	assert.Nil(t, c.Launch(launcher.ModeTabs))
	assert.Empty(t, host.Prompts())
}

func TestControllerPromptThenStart(t *testing.T) {
	c, sched, host := newController(t, false)
	c.Dispatch(Action{Kind: Add, ID: "claude"})

	assert.Equal(t, "Attempting to open 1 new tabs. Please ensure pop-ups are enabled for this site.",
		c.PromptLaunch(launcher.ModeTabs))
	c.StartLaunch(launcher.ModeTabs)
	sched.Advance(0)

	assert.Len(t, host.Opened(), 1)
	assert.Empty(t, host.Prompts(), "two-phase launch skips the host confirmation")
}

func TestControllerStaleProposalIsNotStarted(t *testing.T) {
	c, sched, host := newController(t, false)
	c.Dispatch(Action{Kind: Add, ID: "claude"})

	p, ok := c.ProposeLaunch(launcher.ModeTabs)
	require.True(t, ok)
	c.Dispatch(Action{Kind: Add, ID: "gemini"})

	batch, current := c.StartProposal(p)
	assert.False(t, current)
	assert.Nil(t, batch)
	sched.Advance(time.Second)
	assert.Empty(t, host.Opened())

	p, ok = c.ProposeLaunch(launcher.ModeTabs)
	require.True(t, ok)
	assert.Contains(t, p.Message, "2 new tabs")
	batch, current = c.StartProposal(p)
	assert.True(t, current)
	assert.Equal(t, 2, batch.Len())

	_, ok = c.ProposeLaunch(launcher.ModeTabs)
	assert.True(t, ok)
	c.Dispatch(Action{Kind: Clear})
	_, ok = c.ProposeLaunch(launcher.ModeTabs)
	assert.False(t, ok)
}

func TestControllerSubscribe(t *testing.T) {
	c, _, _ := newController(t, true)

	var versions []uint64
	unsubscribe := c.Subscribe(func(s State) { versions = append(versions, s.Version) })

	c.Dispatch(Action{Kind: Add, ID: "claude"})
	c.Dispatch(Action{Kind: Add, ID: "claude"})
	c.Dispatch(Action{Kind: SetQuery, Value: "gem"})
	unsubscribe()
	c.Dispatch(Action{Kind: Clear})

	assert.Equal(t, []uint64{1, 2}, versions)
	assert.Equal(t, uint64(3), c.State().Version)
}

func TestControllerClose(t *testing.T) {
	c, sched, host := newController(t, true)
	c.Dispatch(Action{Kind: Add, ID: "claude"})
	c.Dispatch(Action{Kind: Add, ID: "gemini"})
	c.StartLaunch(launcher.ModeTabs)

	c.Close()
	sched.Advance(time.Second)
	assert.Empty(t, host.Opened())

	s := c.Dispatch(Action{Kind: Add, ID: "grok"})
	assert.Equal(t, 2, s.Set.Len())
	assert.Nil(t, c.StartLaunch(launcher.ModeTabs))
}
