package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardMount(t *testing.T) {
	b := NewBoard()

	first := b.Mount("chart1", "Revenue by item")
	again := b.Mount("chart1", "ignored")
	b.Mount("chart2", "Revenue by group")

	assert.Same(t, first, again)
	assert.Equal(t, "Revenue by item", again.Title)

	ids := make([]string, 0)
	for _, target := range b.Targets() {
		ids = append(ids, target.ID)
	}
	assert.Equal(t, []string{"chart1", "chart2"}, ids)

	found, ok := b.Lookup("chart2")
	require.True(t, ok)
	assert.Equal(t, "Revenue by group", found.Title)
	_, ok = b.Lookup("chart3")
	assert.False(t, ok)
}

func TestBoardAllocate(t *testing.T) {
	b := NewBoard()
	b.Mount("chart9", "Item share")
	b.Mount("chart10", "Monthly item share")

	g1, err := b.Allocate("chart9", "G1 - Fruit", 600, 300)
	require.NoError(t, err)
	g1Again, err := b.Allocate("chart10", "G1 - Fruit", 600, 300)
	require.NoError(t, err)
	g2, err := b.Allocate("chart9", "G2 - Veg", 600, 300)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(g1.ID, "chart-G1-Fruit-"), g1.ID)
	assert.NotEqual(t, g1.ID, g1Again.ID)
	assert.Equal(t, "chart9", g1.Parent)

	children := b.Children("chart9")
	require.Len(t, children, 2)
	assert.Same(t, g1, children[0])
	assert.Same(t, g2, children[1])

	all := b.All()
	require.Len(t, all, 5)
	assert.Equal(t, "chart9", all[0].ID)
	assert.Equal(t, "chart10", all[3].ID)
	assert.Len(t, b.Targets(), 2)
}

func TestBoardAllocateErrors(t *testing.T) {
	b := NewBoard()

	_, err := b.Allocate("missing", "G1", 0, 0)
	assert.ErrorIs(t, err, ErrUnknownTarget)

	b.Mount("chart9", "")
	b.newID = func() string { return "fixed" }
	_, err = b.Allocate("chart9", "G1", 0, 0)
	require.NoError(t, err)
	_, err = b.Allocate("chart9", "G1", 0, 0)
	assert.ErrorIs(t, err, ErrDuplicateTarget)
}

func TestTargetClear(t *testing.T) {
	target := NewBoard().Mount("chart1", "")
	assert.True(t, target.Empty())

	target.Draw(&Scene{Kind: SceneBar})
	assert.False(t, target.Empty())

	target.Clear()
	assert.Nil(t, target.Scene())
}
