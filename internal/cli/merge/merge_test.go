package merge

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"mrview/internal/errcodes"
	"mrview/internal/pkg/client"
	"mrview/mocks"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_fillCmdParams(t *testing.T) {
	defer viper.Set("general.confirmMerge", nil)

	t.Run("fails without an id", func(t *testing.T) {
		err := fillCmdParams(&mocks.FlagSet{}, []string{""}, &cmdParams{})
		assert.ErrorIs(t, err, errcodes.ErrMissingID)
	})

	t.Run("asks for confirmation when configured", func(t *testing.T) {
		viper.Set("general.confirmMerge", true)
		params := &cmdParams{}

		err := fillCmdParams(&mocks.FlagSet{}, []string{"5"}, params)
		require.NoError(t, err)
		assert.Equal(t, client.MergeRequestID("5"), params.ID)
		assert.True(t, params.Confirm)
	})

	t.Run("skips confirmation with --yes", func(t *testing.T) {
		viper.Set("general.confirmMerge", true)
		params := &cmdParams{}

		err := fillCmdParams(&mocks.FlagSet{Values: map[string]interface{}{"yes": true}}, []string{"5"}, params)
		require.NoError(t, err)
		assert.False(t, params.Confirm)
	})

	t.Run("skips confirmation when disabled", func(t *testing.T) {
		viper.Set("general.confirmMerge", false)
		params := &cmdParams{}

		err := fillCmdParams(&mocks.FlagSet{}, []string{"5"}, params)
		require.NoError(t, err)
		assert.False(t, params.Confirm)
	})
}

func Test_execute(t *testing.T) {
	oldPromptConfirm := promptConfirm
	defer func() { promptConfirm = oldPromptConfirm }()

	t.Run("merges on a 2xx answer", func(t *testing.T) {
		out := &bytes.Buffer{}
		c := &mocks.Client{MergeResponse: &client.MergeResponse{StatusCode: http.StatusOK}}

		err := execute(context.Background(), c, &cmdParams{ID: "9"}, out)
		require.NoError(t, err)
		assert.Equal(t, []client.MergeRequestID{"9"}, c.MergeCalls())
		assert.Contains(t, out.String(), "Done")
	})

	t.Run("fails when the server refuses", func(t *testing.T) {
		c := &mocks.Client{MergeResponse: &client.MergeResponse{StatusCode: http.StatusConflict}}

		err := execute(context.Background(), c, &cmdParams{ID: "9"}, &bytes.Buffer{})
		assert.ErrorIs(t, err, errcodes.ErrMergeRejected)
		assert.Contains(t, err.Error(), "status 409")
	})

	t.Run("fails when the server cannot be reached", func(t *testing.T) {
		c := &mocks.Client{ErrorValue: errors.New("connection refused")}

		err := execute(context.Background(), c, &cmdParams{ID: "9"}, &bytes.Buffer{})
		assert.ErrorIs(t, err, errcodes.ErrTransport)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("does not merge when the prompt is declined", func(t *testing.T) {
		promptConfirm = func(string, bool) (bool, error) { return false, nil }
		c := &mocks.Client{}

		err := execute(context.Background(), c, &cmdParams{ID: "9", Confirm: true}, &bytes.Buffer{})
		assert.Equal(t, errcodes.ErrAborted, err)
		assert.Empty(t, c.MergeCalls())
	})

	t.Run("merges after the prompt is accepted", func(t *testing.T) {
		message := ""
		promptConfirm = func(m string, _ bool) (bool, error) {
			message = m
			return true, nil
		}
		c := &mocks.Client{MergeResponse: &client.MergeResponse{StatusCode: http.StatusNoContent}}

		err := execute(context.Background(), c, &cmdParams{ID: "9", Confirm: true}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "Merge #9?", message)
		assert.Len(t, c.MergeCalls(), 1)
	})
}
