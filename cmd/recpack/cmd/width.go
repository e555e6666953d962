package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// widthCmd represents the width command
var widthCmd = &cobra.Command{
	Use:   "width <layout>",
	Short: "Show the record width and field offsets of a layout",
	Long: `Show the byte width of one record and where each field lives in it.

Example:
  recpack width vertex
  recpack width ./layouts/vertex.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWidth(args[0], cmd.OutOrStdout())
	},
}

func runWidth(ref string, w io.Writer) error {
	l, err := loadLayout(container, ref)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(l.Fields()))
	for _, f := range l.Fields() {
		rows = append(rows, []string{
			f.Name,
			f.Type,
			strconv.Itoa(f.Count),
			strconv.Itoa(f.Offset),
			strconv.Itoa(f.Width),
		})
	}

	if _, err := fmt.Fprintf(w, "%s: %d bytes per record\n", l.Name(), l.Width()); err != nil {
		return err
	}
	return renderTable(w, []string{"FIELD", "TYPE", "COUNT", "OFFSET", "WIDTH"}, rows)
}

func init() {
	rootCmd.AddCommand(widthCmd)
}
