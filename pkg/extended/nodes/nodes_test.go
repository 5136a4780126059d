package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadashi-aikawa/hibou/pkg/extended/nodes"
	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
)

func TestGenerate(t *testing.T) {
	ruby := "しぶや"
	details := []gtfsjp.StopDetail{
		{StopID: "P1", StopName: "Shibuya Platform 1", ParentStation: "S1"},
		{StopID: "S1", StopName: "Shibuya", StopRuby: &ruby},
		{StopID: "S2", StopName: "Shinjuku"},
	}

	got := nodes.Generate(details)

	require.Len(t, got, 2)
	assert.Equal(t, nodes.Node{ID: 1, Name: "Shibuya", Ruby: &ruby}, got[0])
	assert.Equal(t, nodes.Node{ID: 2, Name: "Shinjuku"}, got[1])
}

func TestGenerateOnlyChildStops(t *testing.T) {
	details := []gtfsjp.StopDetail{
		{StopID: "P1", StopName: "Platform 1", ParentStation: "S1"},
		{StopID: "P2", StopName: "Platform 2", ParentStation: "S1"},
	}

	assert.Empty(t, nodes.Generate(details))
}

func TestGenerateEmpty(t *testing.T) {
	assert.Empty(t, nodes.Generate(nil))
}
