package cli

import (
	"fmt"
	"io"
	"os"

	configcmd "mrview/internal/cli/config"
	filescmd "mrview/internal/cli/files"
	mergecmd "mrview/internal/cli/merge"
	"mrview/internal/cli/paramutils"
	recentcmd "mrview/internal/cli/recent"
	"mrview/internal/cli/utils"
	"mrview/internal/configutils"
	"mrview/internal/logutils"
	"mrview/internal/persistance"
	"mrview/internal/systemcodes"
	"mrview/internal/tui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logCloser io.Closer

func setup(cmd *cobra.Command) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())

	err := configutils.LoadGlobal(flags.GetStringOrDefault("config", ""))
	if err != nil {
		return err
	}

	logCloser, err = logutils.Setup(
		flags.GetStringOrDefault("log-level", viper.GetString("log.level")),
		viper.GetString("log.file"),
	)
	if err != nil {
		return err
	}

	log.Debug().Str("command", cmd.Name()).Msg("starting")

	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	id, err := paramutils.RequireIDArg(args)
	if err != nil {
		return err
	}

	c, err := paramutils.GetClient(paramutils.NewFlagRepo(cmd.Flags()))
	if err != nil {
		return err
	}

	return tui.Run(&tui.RunOptions{
		Client:    c,
		ID:        id,
		ServerURL: c.ServerURL(),
		Config:    viper.GetViper(),
		Visited:   persistance.GetRepo(),
	})
}

func New() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "mrview ID",
		Short:   "mrview terminal viewer for merge requests",
		Long:    `Shows a merge request with its changed files and lets you merge it.`,
		Version: fmt.Sprintf("%v, commit %v, built at %v", version, commit, date),
		Args:    cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			err := setup(cmd)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				os.Exit(systemcodes.ErrorCodeConfig)
			}
		},
		Run: utils.RunCommandWrapper(runCmd),
	}

	rootCmd.AddCommand(
		filescmd.New(),
		mergecmd.New(),
		configcmd.New(),
		recentcmd.New(),
	)

	rootCmd.PersistentFlags().StringP("server", "s", "", "merge request server url, e.g. http://localhost:8000")
	rootCmd.PersistentFlags().String("config", "", "config path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	return rootCmd
}

func Execute() {
	err := New().Execute()

	if logCloser != nil {
		logCloser.Close()
	}

	if err != nil {
		os.Exit(systemcodes.ErrorCodeGeneric)
	}
}
