package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage archived buffers",
	Long: `Store binary buffers in the local archive and get them back by id.

Example:
  recpack archive put mesh.bin
  recpack archive get 2mZ8Hn3bWXk3u2fQhWq4aC2N0JA -o mesh.bin
  recpack archive list`,
}

var archivePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store a file in the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArchivePut(args[0], cmd.OutOrStdout())
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Write an archived buffer to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return runArchiveGet(args[0], output, cmd.OutOrStdout())
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived buffers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArchiveList(cmd.OutOrStdout())
	},
}

func archiveBuffer(buf []byte) (ksuid.KSUID, error) {
	archive, err := container.OpenArchive()
	if err != nil {
		return ksuid.Nil, err
	}
	defer archive.Close()

	id, err := archive.Put(buf)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to archive buffer: %w", err)
	}
	container.GetLogger().Info("buffer archived", zap.Stringer("id", id), zap.Int("bytes", len(buf)))
	return id, nil
}

func runArchivePut(path string, w io.Writer) error {
	buf, err := loadFile(container, path)
	if err != nil {
		return err
	}

	id, err := archiveBuffer(buf)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, id)
	return err
}

func runArchiveGet(ref, output string, w io.Writer) error {
	if output == "" {
		return fmt.Errorf("--output is required")
	}

	buf, err := loadArchived(ref)
	if err != nil {
		return err
	}

	if err := storeFile(container, output, buf); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Wrote %d bytes to %s\n", len(buf), output)
	return err
}

func runArchiveList(w io.Writer) error {
	archive, err := container.OpenArchive()
	if err != nil {
		return err
	}
	defer archive.Close()

	entries, err := archive.List()
	if err != nil {
		return err
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.ID.String(), strconv.Itoa(e.Size), e.Created.UTC().Format("2006-01-02 15:04:05")}
	}
	return renderTable(w, []string{"ID", "BYTES", "CREATED"}, rows)
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveGetCmd, archiveListCmd)
	archiveGetCmd.Flags().StringP("output", "o", "", "Output file")
}
