package recent

import (
	"fmt"
	"io"

	"mrview/internal/cli/utils"
	"mrview/internal/persistance"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

const timeFormat = "2006-01-02 15:04"

func runCmd(cmd *cobra.Command, args []string) error {
	return execute(persistance.GetRepo(), cmd.OutOrStdout())
}

func execute(repo persistance.PersistanceRepo, out io.Writer) error {
	visited, err := repo.GetVisited()
	if err != nil {
		return err
	}

	if len(visited) == 0 {
		fmt.Fprintln(out, "No merge requests viewed yet")
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("#", "TITLE", "SERVER", "VISITED")
	table.AddRow("-", "-----", "------", "-------")
	for _, v := range visited {
		table.AddRow(v.ID, v.Title, v.Server, v.LastVisited.Local().Format(timeFormat))
	}

	fmt.Fprintln(out, table.String())

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recent",
		Aliases: []string{"r"},
		Short:   "List recently viewed merge requests",
		Args:    cobra.NoArgs,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	return cmd
}
