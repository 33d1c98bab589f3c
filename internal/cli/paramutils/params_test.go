package paramutils

import (
	"testing"

	"mrview/internal/errcodes"
	"mrview/internal/pkg/client"
	"mrview/mocks"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPFlagSetWrapper(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server", "", "")
	flags.Bool("yes", false, "")
	require.NoError(t, flags.Parse([]string{"--server", "http://a", "--yes"}))
	w := NewFlagRepo(flags)

	t.Run("returns set values", func(t *testing.T) {
		assert.Equal(t, "http://a", w.GetStringOrDefault("server", "d"))
		assert.True(t, w.GetBoolOrDefault("yes", false))
	})

	t.Run("returns defaults for unknown flags", func(t *testing.T) {
		assert.Equal(t, "d", w.GetStringOrDefault("unknown", "d"))
		assert.True(t, w.GetBoolOrDefault("unknown", true))
	})
}

func TestFillServerParams(t *testing.T) {
	viper.Set("server.url", "http://configured")
	defer viper.Set("server.url", nil)

	t.Run("prefers the flag", func(t *testing.T) {
		params := &ServerParams{}
		FillServerParams(&mocks.FlagSet{Values: map[string]interface{}{"server": " http://flag "}}, params)
		assert.Equal(t, "http://flag", params.URL)
	})

	t.Run("falls back to the configuration", func(t *testing.T) {
		params := &ServerParams{}
		FillServerParams(&mocks.FlagSet{}, params)
		assert.Equal(t, "http://configured", params.URL)
	})
}

func TestValidateServerParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
		err  error
	}{
		{"accepts http", "http://localhost:8000", nil},
		{"accepts https", "https://mr.example.com", nil},
		{"rejects an empty url", "", errcodes.ErrMissingServer},
		{"rejects other schemes", "ftp://mr", errcodes.ErrServerURLMustBeHTTP},
		{"rejects a bare host", "localhost:8000", errcodes.ErrServerURLMustBeHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServerParams(&ServerParams{URL: tt.url})
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestGetClient(t *testing.T) {
	defer viper.Set("server.url", nil)

	t.Run("uses the flag server", func(t *testing.T) {
		c, err := GetClient(&mocks.FlagSet{Values: map[string]interface{}{"server": "http://flag"}})
		require.NoError(t, err)
		assert.Equal(t, "http://flag", c.ServerURL())
	})

	t.Run("fails on an invalid server", func(t *testing.T) {
		_, err := GetClient(&mocks.FlagSet{Values: map[string]interface{}{"server": "flag"}})
		assert.ErrorIs(t, err, errcodes.ErrServerURLMustBeHTTP)
	})
}

func TestParseIDArg(t *testing.T) {
	assert.Equal(t, client.MergeRequestID(""), ParseIDArg(nil))
	assert.Equal(t, client.MergeRequestID("12"), ParseIDArg([]string{" 12 ", "x"}))

	_, err := RequireIDArg([]string{"  "})
	assert.ErrorIs(t, err, errcodes.ErrMissingID)

	id, err := RequireIDArg([]string{"7"})
	require.NoError(t, err)
	assert.Equal(t, client.MergeRequestID("7"), id)
}
