package files

import (
	"fmt"
	"io"

	"mrview/internal/cli/paramutils"
	"mrview/internal/cli/utils"
	"mrview/internal/pkg/client"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func runCmd(cmd *cobra.Command, args []string) error {
	id, err := paramutils.RequireIDArg(args)
	if err != nil {
		return err
	}

	c, err := paramutils.GetClient(paramutils.NewFlagRepo(cmd.Flags()))
	if err != nil {
		return err
	}

	return execute(cmd, c, id, cmd.OutOrStdout())
}

func execute(cmd *cobra.Command, c client.Client, id client.MergeRequestID, out io.Writer) error {
	files, err := c.GetFiles(cmd.Context(), &client.GetFilesOptions{ID: id})
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintf(out, "No changed files in #%s\n", id)
		return nil
	}

	table := uitable.New()
	table.AddRow("#", "FILE")
	table.AddRow("-", "----")
	for i, f := range files {
		table.AddRow(i+1, f)
	}

	fmt.Fprintln(out, table.String())

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files ID",
		Aliases: []string{"f", "ls"},
		Short:   "List changed files",
		Long:    `Prints the files changed by a merge request in the order the server returns them`,
		Args:    cobra.ExactArgs(1),
		Run:     utils.RunCommandWrapper(runCmd),
	}

	return cmd
}
