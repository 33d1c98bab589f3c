package recent

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"mrview/internal/persistance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	visited []*persistance.VisitedMergeRequest
	err     error
}

func (r *fakeRepo) AddVisited(string, string, string) error {
	return r.err
}

func (r *fakeRepo) GetVisited() ([]*persistance.VisitedMergeRequest, error) {
	return r.visited, r.err
}

func Test_execute(t *testing.T) {
	t.Run("lists visited merge requests in the given order", func(t *testing.T) {
		out := &bytes.Buffer{}
		repo := &fakeRepo{visited: []*persistance.VisitedMergeRequest{
			{ID: "2", Title: "Second", Server: "http://mr", LastVisited: time.Now()},
			{ID: "1", Title: "First", Server: "http://mr", LastVisited: time.Now()},
		}}

		err := execute(repo, out)
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "TITLE")
		assert.Less(t, strings.Index(text, "Second"), strings.Index(text, "First"))
	})

	t.Run("says when nothing was viewed", func(t *testing.T) {
		out := &bytes.Buffer{}

		err := execute(&fakeRepo{}, out)
		require.NoError(t, err)
		assert.Equal(t, "No merge requests viewed yet\n", out.String())
	})

	t.Run("returns state errors", func(t *testing.T) {
		vErr := errors.New("corrupted")

		err := execute(&fakeRepo{err: vErr}, &bytes.Buffer{})
		assert.Equal(t, vErr, err)
	})
}
