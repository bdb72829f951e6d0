package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docweave/internal/driver"
	"docweave/internal/observ"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	files := []string{"a.py", "b.py"}
	m := NewProgressModel("docweave", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.py", Status: driver.StatusWorking, Phase: observ.PhaseScan})
	assert.Equal(t, "scanning", m.items[0].status)
	assert.InDelta(t, 0.2, m.percent(), 1e-9)

	m.applyEvent(driver.Event{File: "a.py", Status: driver.StatusDone, Inserted: 3})
	m.applyEvent(driver.Event{File: "b.py", Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "zzz.py", Status: driver.StatusDone, Inserted: 9})
	assert.InDelta(t, 1.0, m.percent(), 1e-9)
	assert.Equal(t, 3, m.inserted)
	assert.Equal(t, 1, m.failed)

	m.done = true
	view := m.View()
	require.NotEmpty(t, view)
	assert.Contains(t, view, "done: docweave (3 blocks, 1 failed)")
	assert.Contains(t, view, "a.py (+3)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate(strings.Repeat("x", 30), 10)
	assert.Equal(t, 10, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestEventsChannelCloseEndsModel(t *testing.T) {
	ch := make(chan driver.Event)
	close(ch)
	m := NewProgressModel("t", []string{"a.py"}, ch).(*progressModel)
	msg := m.listenForEvent()()
	_, ok := msg.(doneMsg)
	assert.True(t, ok)
}
