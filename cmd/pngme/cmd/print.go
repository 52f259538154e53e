package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "List the chunks of a file",
	Long: `List every chunk of a PNG file with its index, type and data length.

Example:
  pngme print image.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		return runPrint(a, args[0], verbose)
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().BoolP("verbose", "v", false, "Also show CRC and property bits")
}

func runPrint(a *app, imagePath string, verbose bool) error {
	image, err := a.load(imagePath)
	if err != nil {
		return err
	}

	for i, chunk := range image.Chunks() {
		fmt.Fprintf(a.out, "Chunk %d; Type: %s; Data Length: %d Byte\n", i, chunk.Type(), chunk.Length())
		if verbose {
			t := chunk.Type()
			fmt.Fprintf(a.out, "    CRC: %08x; Critical: %t; Public: %t; Safe to copy: %t; Valid: %t\n",
				chunk.CRC(), t.IsCritical(), t.IsPublic(), t.IsSafeToCopy(), t.IsValid())
		}
	}
	return nil
}
