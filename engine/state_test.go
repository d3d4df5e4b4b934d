package engine

import (
	"testing"

	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultState(t *testing.T) State {
	t.Helper()
	store, err := catalog.Default()
	require.NoError(t, err)
	return NewState(store, catalog.DefaultPageSize)
}

func ids(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestReduceDragAndDrop(t *testing.T) {
	s := defaultState(t)

	s = Reduce(s, Action{Kind: BeginDrag, ID: "claude"})
	assert.Equal(t, transfer.Armed, s.Transfer.State())
	assert.Equal(t, uint64(1), s.Version)

	s = Reduce(s, Action{Kind: Drop, Valid: true})
	assert.Equal(t, transfer.Idle, s.Transfer.State())
	assert.Equal(t, []string{"claude"}, ids(s.Set.Items()))

	t.Run("invalid target discards", func(t *testing.T) {
		next := Reduce(Reduce(s, Action{Kind: BeginDrag, ID: "gemini"}), Action{Kind: Drop})
		assert.Equal(t, []string{"claude"}, ids(next.Set.Items()))
		assert.Equal(t, transfer.Idle, next.Transfer.State())
	})

	t.Run("drop while idle is a no-op", func(t *testing.T) {
		next := Reduce(s, Action{Kind: Drop, Valid: true})
		assert.Equal(t, s.Version, next.Version)
	})

	t.Run("cancel", func(t *testing.T) {
		next := Reduce(Reduce(s, Action{Kind: BeginDrag, ID: "gemini"}), Action{Kind: CancelDrag})
		assert.Equal(t, transfer.Idle, next.Transfer.State())
		assert.Equal(t, 1, next.Set.Len())
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		next := Reduce(s, Action{Kind: BeginDrag, ID: "nope"})
		assert.Equal(t, s.Version, next.Version)
		assert.Equal(t, transfer.Idle, next.Transfer.State())
	})
}

func TestReduceWorkspace(t *testing.T) {
	s := defaultState(t)
	for _, id := range []string{"chatgpt", "claude", "chatgpt", "gemini"} {
		s = Reduce(s, Action{Kind: Add, ID: id})
	}
	assert.Equal(t, []string{"chatgpt", "claude", "gemini"}, ids(s.Set.Items()))
	assert.Equal(t, uint64(3), s.Version, "duplicate add does not bump the version")

	removed := Reduce(s, Action{Kind: Remove, ID: "claude"})
	assert.Equal(t, []string{"chatgpt", "gemini"}, ids(removed.Set.Items()))
	again := Reduce(removed, Action{Kind: Remove, ID: "claude"})
	assert.Equal(t, removed.Version, again.Version)

	cleared := Reduce(s, Action{Kind: Clear})
	assert.True(t, cleared.Set.Empty())
	assert.Equal(t, 3, s.Set.Len(), "input state is untouched")
}

func TestReduceView(t *testing.T) {
	s := defaultState(t)

	s = Reduce(s, Action{Kind: SetQuery, Value: "CLAUDE"})
	snap := s.Snapshot()
	assert.Equal(t, []string{"claude"}, ids(snap.Visible))

	s = Reduce(s, Action{Kind: SetQuery, Value: ""})
	s = Reduce(s, Action{Kind: SetCategory, Value: "Major"})
	snap = s.Snapshot()
	assert.Equal(t, "Major", snap.Category)
	for _, item := range snap.Visible {
		assert.Equal(t, "Major", item.Category)
	}

	t.Run("next page needs more items", func(t *testing.T) {
		next := Reduce(s, Action{Kind: NextPage})
		assert.Equal(t, 0, next.View.Page)
		assert.Equal(t, s.Version, next.Version)
	})
}

func TestReducePagination(t *testing.T) {
	s := defaultState(t)
	s.View = catalog.NewView(10)

	s = Reduce(s, Action{Kind: NextPage})
	assert.Equal(t, 1, s.View.Page)
	snap := s.Snapshot()
	assert.Equal(t, 11, snap.First)
	assert.True(t, snap.HasPrev)

	s = Reduce(s, Action{Kind: SetQuery, Value: "a"})
	assert.Equal(t, 0, s.View.Page, "query change resets the page")

	s = Reduce(s, Action{Kind: PrevPage})
	assert.Equal(t, 0, s.View.Page)
}

func TestSnapshotGrid(t *testing.T) {
	s := defaultState(t)
	assert.Nil(t, s.Snapshot().Grid)

	for _, id := range []string{"chatgpt", "claude", "gemini", "copilot", "grok"} {
		s = Reduce(s, Action{Kind: Add, ID: id})
	}
	grid := s.Snapshot().Grid
	require.NotNil(t, grid)
	assert.Equal(t, 3, grid.Columns)
	assert.Equal(t, 2, grid.Rows)
}

func TestUnknownActionKind(t *testing.T) {
	s := defaultState(t)
	assert.Equal(t, s, Reduce(s, Action{Kind: "shuffle"}))
}
