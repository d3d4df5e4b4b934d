package transfer

import (
	"testing"

	"github.com/grovetools/deck/catalog"
	"github.com/stretchr/testify/assert"
)

var (
	claude  = catalog.Item{ID: "claude", Name: "Claude"}
	chatgpt = catalog.Item{ID: "chatgpt", Name: "ChatGPT"}
)

func TestZeroValueIsIdle(t *testing.T) {
	var c Channel
	assert.Equal(t, Idle, c.State())
	_, ok := c.Pending()
	assert.False(t, ok)
}

func TestBeginThenValidDrop(t *testing.T) {
	c := Channel{}.Begin(claude)
	assert.Equal(t, Armed, c.State())

	next, item, ok := c.Drop(true)
	assert.True(t, ok)
	assert.Equal(t, "claude", item.ID)
	assert.Equal(t, Idle, next.State())

	// a second drop has nothing to consume
	_, _, ok = next.Drop(true)
	assert.False(t, ok)
}

func TestInvalidDropDiscards(t *testing.T) {
	c := Channel{}.Begin(claude)
	next, _, ok := c.Drop(false)
	assert.False(t, ok)
	assert.Equal(t, Idle, next.State())
}

func TestDropWhileIdle(t *testing.T) {
	next, _, ok := Channel{}.Drop(true)
	assert.False(t, ok)
	assert.Equal(t, Idle, next.State())
}

func TestBeginOverwritesPending(t *testing.T) {
	c := Channel{}.Begin(claude).Begin(chatgpt)
	item, ok := c.Pending()
	assert.True(t, ok)
	assert.Equal(t, "chatgpt", item.ID)
}

func TestCancel(t *testing.T) {
	c := Channel{}.Begin(claude).Cancel()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, "idle", c.State().String())
	assert.Equal(t, "armed", Channel{}.Begin(claude).State().String())
}

func TestBeginCopiesItem(t *testing.T) {
	item := claude
	c := Channel{}.Begin(item)
	item.Name = "changed"

	pending, _ := c.Pending()
	assert.Equal(t, "Claude", pending.Name)
}
