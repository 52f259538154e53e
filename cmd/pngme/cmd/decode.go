package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/png"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file> <chunk-type>",
	Short: "Print the message stored in a chunk",
	Long: `Print the payload of the first chunk of the given type as text.

Example:
  pngme decode image.png ruSt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runDecode(a, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(a *app, imagePath, chunkType string) error {
	if _, err := png.ParseChunkType(chunkType); err != nil {
		return err
	}

	image, err := a.load(imagePath)
	if err != nil {
		return err
	}

	chunk, ok := image.ChunkByType(chunkType)
	if !ok {
		return &png.NotFoundError{Type: chunkType}
	}
	message, err := chunk.DataAsString()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "The message is:\n%s\n", message)
	return nil
}
