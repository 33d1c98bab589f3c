package config

import (
	"fmt"
	"io"

	"mrview/internal/cli/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func runCmd(cmd *cobra.Command, args []string) error {
	return execute(viper.AllSettings(), cmd.OutOrStdout())
}

func execute(settings map[string]interface{}, out io.Writer) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, string(data))
	return err
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Prints the configuration after merging defaults, config files, .env and MRVIEW_ variables`,
		Args:  cobra.NoArgs,
		Run:   utils.RunCommandWrapper(runCmd),
	}

	return cmd
}
