package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/storage"
)

// stashCmd represents the stash command
var stashCmd = &cobra.Command{
	Use:   "stash",
	Short: "List chunks kept by 'remove --stash'",
	Long: `List the stashed chunks, oldest first, with the ID needed by 'pngme restore'.

Example:
  pngme stash`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runStashList(a)
	},
}

func init() {
	rootCmd.AddCommand(stashCmd)
}

func runStashList(a *app) error {
	s, err := storage.Open(a.config.Stash.DataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "The stash is empty.")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(a.out, "%s  %s  %s  %s (%d bytes)\n",
			entry.ID, entry.RemovedAt.Local().Format(time.DateTime), entry.Chunk.Type(), entry.Source, entry.Chunk.Length())
	}
	return nil
}
