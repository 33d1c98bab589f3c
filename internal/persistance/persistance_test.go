package persistance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mrview/internal/pkg/fs"
	"mrview/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*XDGPersistanceRepo, string) {
	path := filepath.Join(t.TempDir(), "nested", "state")
	repo := NewXDGPersistanceRepo(path, fs.OS{})

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return repo, path
}

func TestXDGPersistanceRepo_GetVisited(t *testing.T) {
	t.Run("returns nothing without a state file", func(t *testing.T) {
		repo, _ := newTestRepo(t)

		visited, err := repo.GetVisited()
		require.NoError(t, err)
		assert.Empty(t, visited)
	})

	t.Run("fails on a corrupted state file", func(t *testing.T) {
		repo, path := newTestRepo(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

		_, err := repo.GetVisited()
		assert.ErrorContains(t, err, "cannot load state file")
	})

	t.Run("fails when the file cannot be read", func(t *testing.T) {
		repo := NewXDGPersistanceRepo("/state", mocks.FS{Err: errors.New("denied")})

		_, err := repo.GetVisited()
		assert.EqualError(t, err, "denied")
	})
}

func TestXDGPersistanceRepo_AddVisited(t *testing.T) {
	t.Run("creates the state directory and file", func(t *testing.T) {
		repo, path := newTestRepo(t)

		err := repo.AddVisited("http://localhost:8000", "1", "First")
		require.NoError(t, err)

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("lists the most recent visit first", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		require.NoError(t, repo.AddVisited("s", "1", "First"))
		require.NoError(t, repo.AddVisited("s", "2", "Second"))

		visited, err := repo.GetVisited()
		require.NoError(t, err)
		require.Len(t, visited, 2)
		assert.Equal(t, "2", visited[0].ID)
		assert.Equal(t, "1", visited[1].ID)
	})

	t.Run("updates an existing entry instead of adding one", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		require.NoError(t, repo.AddVisited("s", "1", "Old title"))
		require.NoError(t, repo.AddVisited("s", "2", "Second"))
		require.NoError(t, repo.AddVisited("s", "1", "New title"))

		visited, err := repo.GetVisited()
		require.NoError(t, err)
		require.Len(t, visited, 2)
		assert.Equal(t, "1", visited[0].ID)
		assert.Equal(t, "New title", visited[0].Title)
	})

	t.Run("keeps entries of different servers apart", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		require.NoError(t, repo.AddVisited("a", "1", ""))
		require.NoError(t, repo.AddVisited("b", "1", ""))

		visited, err := repo.GetVisited()
		require.NoError(t, err)
		assert.Len(t, visited, 2)
	})

	t.Run("keeps a bounded history", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		for i := 0; i < maxVisited+5; i++ {
			require.NoError(t, repo.AddVisited("s", string(rune('a'+i)), ""))
		}

		visited, err := repo.GetVisited()
		require.NoError(t, err)
		assert.Len(t, visited, maxVisited)
		assert.Equal(t, string(rune('a'+maxVisited+4)), visited[0].ID)
	})
}

func TestSortByLastVisited(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	visited := []*VisitedMergeRequest{
		{ID: "old", LastVisited: t0},
		{ID: "same-1", LastVisited: t0.Add(time.Hour)},
		{ID: "new", LastVisited: t0.Add(2 * time.Hour)},
		{ID: "same-2", LastVisited: t0.Add(time.Hour)},
	}

	sortByLastVisited(visited)

	ids := make([]string, 0, len(visited))
	for _, v := range visited {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"new", "same-1", "same-2", "old"}, ids)
}
