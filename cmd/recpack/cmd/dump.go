package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/recpack/pkg/codec"
)

type dumpOptions struct {
	offset  uint32
	budget  int
	format  string
	archive bool
	strict  bool
}

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <layout> <file>",
	Short: "Decode records from a binary file",
	Long: `Decode a run of records from a binary file and print them.

The run starts at --offset and covers --budget bytes (default: the rest of the
file). Bytes after the last whole record are ignored unless strict budgets are
enabled, in which case a budget that is not a multiple of the record width is
an error.

Example:
  recpack dump vertex mesh.bin
  recpack dump vertex mesh.bin --offset 64 --budget 160 --format yaml
  recpack dump vertex 2mZ8Hn3bWXk3u2fQhWq4aC2N0JA --archive`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := dumpOptions{}
		opts.offset, _ = cmd.Flags().GetUint32("offset")
		opts.budget, _ = cmd.Flags().GetInt("budget")
		opts.format, _ = cmd.Flags().GetString("format")
		opts.archive, _ = cmd.Flags().GetBool("archive")
		opts.strict, _ = cmd.Flags().GetBool("strict")
		return runDump(args[0], args[1], opts, cmd.OutOrStdout())
	},
}

func runDump(layoutRef, source string, opts dumpOptions, w io.Writer) error {
	l, err := loadLayout(container, layoutRef)
	if err != nil {
		return err
	}

	var buf []byte
	if opts.archive {
		buf, err = loadArchived(source)
	} else {
		buf, err = loadFile(container, source)
	}
	if err != nil {
		return err
	}

	budget := opts.budget
	if budget < 0 {
		budget = len(buf) - int(opts.offset)
	}

	cursor := codec.Offset(opts.offset)
	rows, err := decodeRows(container, l, buf, &cursor, budget, opts.strict)
	if err != nil {
		return err
	}

	switch opts.format {
	case "yaml":
		out, err := l.MarshalRows(rows)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "table":
		headers := []string{"#", "OFFSET"}
		for _, f := range l.Fields() {
			headers = append(headers, f.Name)
		}
		table := make([][]string, len(rows))
		for i, row := range rows {
			at := int(opts.offset) + i*l.Width()
			table[i] = append([]string{strconv.Itoa(i), strconv.Itoa(at)}, row.Strings()...)
		}
		if err := renderTable(w, headers, table); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d records, cursor %d\n", len(rows), cursor)
		return err
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func loadArchived(ref string) ([]byte, error) {
	id, err := ksuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid archive id %q: %w", ref, err)
	}

	archive, err := container.OpenArchive()
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	return archive.Get(id)
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Uint32("offset", 0, "Byte offset of the first record")
	dumpCmd.Flags().Int("budget", -1, "Number of bytes to decode (-1 for the rest of the file)")
	dumpCmd.Flags().String("format", "table", "Output format (table, yaml)")
	dumpCmd.Flags().Bool("archive", false, "Treat <file> as an archive id")
	dumpCmd.Flags().Bool("strict", false, "Fail when the budget is not a multiple of the record width")
}
