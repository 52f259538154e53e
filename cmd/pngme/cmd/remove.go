package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/png"
	"github.com/ssargent/pngme/pkg/storage"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <file> <chunk-type>",
	Short: "Remove a chunk",
	Long: `Remove the first chunk of the given type and write the file back.

With --stash the removed chunk is kept in the stash so it can be put back
later with 'pngme restore'.

Example:
  pngme remove image.png ruSt
  pngme remove --stash image.png ruSt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		stash, _ := cmd.Flags().GetBool("stash")
		return runRemove(a, args[0], args[1], stash)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().Bool("stash", false, "Keep the removed chunk in the stash")
}

func runRemove(a *app, imagePath, chunkType string, stash bool) error {
	if _, err := png.ParseChunkType(chunkType); err != nil {
		return err
	}

	image, err := a.load(imagePath)
	if err != nil {
		return err
	}

	removed, err := image.RemoveChunk(chunkType)
	if err != nil {
		return err
	}

	if !stash {
		if err := a.save(imagePath, image); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Successfully removed chunk with pattern %s in file %s.\n", chunkType, imagePath)
		return nil
	}

	s, err := storage.Open(a.config.Stash.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.Put(imagePath, removed)
	if err != nil {
		return err
	}
	if err := a.save(imagePath, image); err != nil {
		if delErr := s.Delete(id); delErr != nil {
			a.logger.Error("failed to drop stash entry", "id", id.String(), "error", delErr)
		}
		return err
	}

	a.logger.Info("chunk stashed", "id", id.String(), "type", chunkType, "dir", a.config.Stash.DataDir)
	fmt.Fprintf(a.out, "Successfully removed chunk with pattern %s in file %s.\n", chunkType, imagePath)
	fmt.Fprintf(a.out, "Stashed as %s\n", id)
	return nil
}
