package paramutils

import (
	"strings"

	"mrview/internal/errcodes"
	"mrview/internal/pkg/client"
	"mrview/internal/pkg/mrapi"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type FlagRepo interface {
	GetStringOrDefault(flag, d string) string
	GetBoolOrDefault(flag string, d bool) bool
}

func NewFlagRepo(flags *pflag.FlagSet) FlagRepo {
	return &PFlagSetWrapper{Flags: flags}
}

type PFlagSetWrapper struct {
	Flags *pflag.FlagSet
}

func (fs *PFlagSetWrapper) GetStringOrDefault(flag, d string) string {
	s, err := fs.Flags.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetBoolOrDefault(flag string, d bool) bool {
	s, err := fs.Flags.GetBool(flag)
	if err != nil {
		return d
	}

	return s
}

type ServerParams struct {
	URL string
}

// FillServerParams takes the server from the --server flag, falling back to
// the configured server.url.
func FillServerParams(flags FlagRepo, params *ServerParams) {
	params.URL = strings.TrimSpace(
		flags.GetStringOrDefault("server", viper.GetString("server.url")),
	)
}

func ValidateServerParams(params *ServerParams) error {
	if params.URL == "" {
		return errcodes.ErrMissingServer
	}

	if !strings.HasPrefix(params.URL, "http://") && !strings.HasPrefix(params.URL, "https://") {
		return errcodes.ErrServerURLMustBeHTTP
	}

	return nil
}

// GetClient returns a client for the server chosen by flags and config.
func GetClient(flags FlagRepo) (*mrapi.Client, error) {
	params := &ServerParams{}
	FillServerParams(flags, params)

	err := ValidateServerParams(params)
	if err != nil {
		return nil, err
	}

	viper.Set("server.url", params.URL)

	return mrapi.DefaultClient()
}

func ParseIDArg(args []string) client.MergeRequestID {
	id := ""
	if len(args) > 0 {
		id = strings.TrimSpace(args[0])
	}

	return client.MergeRequestID(id)
}

// RequireIDArg is ParseIDArg failing on a missing id.
func RequireIDArg(args []string) (client.MergeRequestID, error) {
	id := ParseIDArg(args)
	if id.IsEmpty() {
		return "", errcodes.ErrMissingID
	}

	return id, nil
}
