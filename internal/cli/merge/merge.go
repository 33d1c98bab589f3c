package merge

import (
	"context"
	"fmt"
	"io"

	"mrview/internal/cli/paramutils"
	"mrview/internal/cli/utils"
	"mrview/internal/errcodes"
	"mrview/internal/pkg/client"

	"github.com/gosuri/uilive"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var promptConfirm = utils.PromptConfirm

type cmdParams struct {
	ID      client.MergeRequestID
	Confirm bool
}

func fillCmdParams(flags paramutils.FlagRepo, args []string, params *cmdParams) error {
	id, err := paramutils.RequireIDArg(args)
	if err != nil {
		return err
	}

	params.ID = id
	params.Confirm = viper.GetBool("general.confirmMerge") && !flags.GetBoolOrDefault("yes", false)

	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())

	params := &cmdParams{}
	err := fillCmdParams(flags, args, params)
	if err != nil {
		return err
	}

	c, err := paramutils.GetClient(flags)
	if err != nil {
		return err
	}

	return execute(cmd.Context(), c, params, cmd.OutOrStdout())
}

func execute(ctx context.Context, c client.Client, params *cmdParams, out io.Writer) error {
	if params.Confirm {
		ok, err := promptConfirm(fmt.Sprintf("Merge #%s?", params.ID), false)
		if err != nil {
			return err
		}

		if !ok {
			return errcodes.ErrAborted
		}
	}

	writer := uilive.New()
	writer.Out = out
	writer.Start()
	defer writer.Stop()

	fmt.Fprintf(writer, "Merging #%s...\n", params.ID)

	res, err := c.Merge(ctx, &client.MergeOptions{ID: params.ID})
	if err != nil {
		log.Error().Err(err).Str("id", params.ID.String()).Msg("merge request failed")
		fmt.Fprintf(writer, "Merging #%s... Error\n", params.ID)
		return errors.Wrapf(errcodes.ErrTransport, "cannot merge #%s: %v", params.ID, err)
	}

	if !res.IsSuccess() {
		log.Warn().Str("id", params.ID.String()).Int("status", res.StatusCode).Msg("merge was not accepted")
		fmt.Fprintf(writer, "Merging #%s... Rejected\n", params.ID)
		return errors.Wrapf(errcodes.ErrMergeRejected, "#%s: %s", params.ID, res)
	}

	log.Info().Str("id", params.ID.String()).Msg("merged")
	fmt.Fprintf(writer, "Merging #%s... Done\n", params.ID)

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge ID",
		Short: "Merge a merge request",
		Long:  `Asks the server to merge a merge request. Exits with a non-zero code when the server refuses or cannot be reached`,
		Args:  cobra.ExactArgs(1),
		Run:   utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().BoolP("yes", "y", false, "merge without asking for confirmation")

	return cmd
}
