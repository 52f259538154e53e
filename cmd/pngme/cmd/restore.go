package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <file> <stash-id>",
	Short: "Put a stashed chunk back into a file",
	Long: `Append a chunk kept by 'pngme remove --stash' to a PNG file and drop it
from the stash.

Example:
  pngme restore image.png 2JLtIdRqpHd1gYVPqTWZG9CM2fQ`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runRestore(a, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(a *app, imagePath, stashID string) error {
	id, err := ksuid.Parse(stashID)
	if err != nil {
		return fmt.Errorf("invalid stash id %q: %w", stashID, err)
	}

	s, err := storage.Open(a.config.Stash.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	entry, err := s.Get(id)
	if err != nil {
		return err
	}

	image, err := a.load(imagePath)
	if err != nil {
		return err
	}
	image.AppendChunk(entry.Chunk)
	if err := a.save(imagePath, image); err != nil {
		return err
	}

	if err := s.Delete(id); err != nil {
		return err
	}

	if entry.Source != imagePath {
		a.logger.Info("restored into a different file", "source", entry.Source, "path", imagePath)
	}
	fmt.Fprintf(a.out, "Restored chunk %s from stash %s into %s.\n", entry.Chunk.Type(), id, imagePath)
	return nil
}
