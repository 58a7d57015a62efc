package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/driver"
)

func model(items ...string) *progressModel {
	return NewProgressModel("binding", items, make(chan Event)).(*progressModel)
}

func TestApplyEventTracksPhases(t *testing.T) {
	m := model("a.toml", "b.toml")

	m.applyEvent(PhaseEvent("a.toml", driver.PhaseEvent{Name: "bind", Status: driver.PhaseStart}))
	assert.Equal(t, "bind", m.items[0].label())
	assert.Equal(t, "queued", m.items[1].label())
	assert.InDelta(t, 0.375, m.percent(), 1e-9)

	m.applyEvent(Event{Item: "a.toml", Status: StatusDone})
	m.applyEvent(Event{Item: "b.toml", Status: StatusError})
	assert.InDelta(t, 1.0, m.percent(), 1e-9)
	assert.Equal(t, "error", m.items[1].label())

	assert.Nil(t, m.applyEvent(Event{Item: "unknown.toml", Status: StatusDone}))
}

func TestViewListsItems(t *testing.T) {
	m := model("a.toml", "b.toml")
	m.applyEvent(Event{Item: "b.toml", Status: StatusCached})
	view := m.View()
	assert.Contains(t, view, "binding")
	assert.Contains(t, view, "a.toml")
	assert.Contains(t, view, "cached")
	assert.Contains(t, view, "queued")
}

func TestClosedChannelQuits(t *testing.T) {
	events := make(chan Event)
	close(events)
	m := NewProgressModel("binding", []string{"a.toml"}, events).(*progressModel)

	msg := m.listenForEvent()()
	_, ok := msg.(doneMsg)
	require.True(t, ok)

	m.Update(msg)
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "done: binding")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdef...", truncate("abcdefghijklmnop", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
