package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ssargent/recpack/pkg/codec"
	"github.com/ssargent/recpack/pkg/layout"
)

type packOptions struct {
	output  string
	archive bool
}

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <layout> <records.yaml>...",
	Short: "Encode records from YAML into a binary file",
	Long: `Encode records listed in one or more YAML files into a binary file.

Input files are concatenated in the order given. Each input file is a list of
field mappings; fields left out are written as zero.

Example:
  recpack pack vertex -o mesh.bin verts.yaml
  recpack pack vertex -o mesh.bin part1.yaml part2.yaml --archive`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := packOptions{}
		opts.output, _ = cmd.Flags().GetString("output")
		opts.archive, _ = cmd.Flags().GetBool("archive")
		return runPack(args[0], args[1:], opts, cmd.OutOrStdout())
	},
}

func runPack(layoutRef string, inputs []string, opts packOptions, w io.Writer) error {
	if opts.output == "" && !opts.archive {
		return fmt.Errorf("nothing to do: set --output and/or --archive")
	}

	l, err := loadLayout(container, layoutRef)
	if err != nil {
		return err
	}

	// Parse inputs concurrently.
	parts := make([][]layout.Row, len(inputs))
	var g errgroup.Group
	for i, path := range inputs {
		i, path := i, path
		g.Go(func() error {
			data, err := loadFile(container, path)
			if err != nil {
				return err
			}
			rows, err := l.ParseRows(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parts[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, rows := range parts {
		total += len(rows)
	}
	buf := make([]byte, l.Schema().Span(total))

	// Each input owns a disjoint region of buf with its own cursor.
	var enc errgroup.Group
	start := 0
	for i, rows := range parts {
		region := buf[start : start+l.Schema().Span(len(rows))]
		start += len(region)
		i, rows := i, rows
		enc.Go(func() error {
			var cursor codec.Offset
			if err := encodeRows(container, l, region, rows, &cursor); err != nil {
				return fmt.Errorf("%s: %w", inputs[i], err)
			}
			return nil
		})
	}
	if err := enc.Wait(); err != nil {
		return err
	}

	container.GetLogger().Info("records packed",
		zap.String("layout", l.Name()),
		zap.Int("inputs", len(inputs)),
		zap.Int("records", total),
		zap.Int("bytes", len(buf)))

	if opts.output != "" {
		if err := storeFile(container, opts.output, buf); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Wrote %d records (%d bytes) to %s\n", total, len(buf), opts.output); err != nil {
			return err
		}
	}

	if opts.archive {
		id, err := archiveBuffer(buf)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Archived %d bytes as %s\n", len(buf), id); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringP("output", "o", "", "Output file")
	packCmd.Flags().Bool("archive", false, "Also store the packed buffer in the archive")
}
