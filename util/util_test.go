package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mid", "b.MIDI", "notes.txt", "nested/c.mid"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		require.NoError(t, os.WriteFile(path, []byte{}, 0644))
	}

	assert := assert.New(t)

	all, err := GatherAllMidiPaths(dir, 0)
	require.NoError(t, err)
	assert.ElementsMatch([]string{
		filepath.Join(dir, "a.mid"),
		filepath.Join(dir, "b.MIDI"),
		filepath.Join(dir, "nested/c.mid"),
	}, all)

	limited, err := GatherAllMidiPaths(dir, 2)
	require.NoError(t, err)
	assert.Len(limited, 2)

	single, err := GatherAllMidiPaths(filepath.Join(dir, "a.mid"), 0)
	require.NoError(t, err)
	assert.Equal([]string{filepath.Join(dir, "a.mid")}, single)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "missing"), 0)
	assert.Error(err)
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "rickroll", TitleFromPath("songs/rickroll.mid"))
	assert.Equal(t, "a.b", TitleFromPath("a.b.midi"))
}

func TestTitleFromRelPath(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("a_x", TitleFromRelPath("songs", filepath.Join("songs", "a", "x.mid")))
	assert.Equal("x", TitleFromRelPath("songs", filepath.Join("songs", "x.midi")))
	assert.Equal("x", TitleFromRelPath("songs/x.mid", "songs/x.mid"))
}

func TestGenericHelpers(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Min(2, 3))
	assert.Equal([]uint8{1, 5, 9}, GetKeysSorted(map[uint8]bool{9: true, 1: true, 5: false}))
}
