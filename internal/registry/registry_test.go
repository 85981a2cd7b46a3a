package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/procne/internal/level"
)

func TestRegisterAndCreate(t *testing.T) {
	Register("registry-test-b", func() level.Manifest {
		return level.Manifest{Episode: 91, ID: "registry-test-b", Title: "B"}
	})
	Register("registry-test-a", func() level.Manifest {
		return level.Manifest{Episode: 90, ID: "registry-test-a", Title: "A", Zone: "Z"}
	})

	assert.True(t, Exists("registry-test-a"))
	m, err := Create("registry-test-a")
	require.NoError(t, err)
	assert.Equal(t, "A", m.Title)

	byNum, err := ByNumber(91)
	require.NoError(t, err)
	assert.Equal(t, "registry-test-b", byNum.ID)

	list := List()
	var order []string
	for _, info := range list {
		order = append(order, info.ID)
	}
	assert.Less(t, indexOf(order, "registry-test-a"), indexOf(order, "registry-test-b"), "sorted by episode number")
	assert.Contains(t, list, EpisodeInfo{ID: "registry-test-a", Episode: 90, Title: "A", Zone: "Z"})
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-episode")
	require.Error(t, err)

	_, err = ByNumber(-1)
	require.Error(t, err)
	assert.False(t, Exists("no-such-episode"))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func() level.Manifest { return level.Manifest{Episode: 99, ID: "registry-test-dup"} }
	Register("registry-test-dup", f)
	assert.Panics(t, func() { Register("registry-test-dup", f) })
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
