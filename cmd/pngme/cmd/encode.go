package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/png"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <file> <chunk-type> <message> [output]",
	Short: "Hide a message in a new chunk",
	Long: `Append a chunk of the given type holding message to a PNG file.

The file is overwritten in place unless an output path is given.

Example:
  pngme encode image.png ruSt "meet at dawn"
  pngme encode image.png ruSt "meet at dawn" secret.png`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		output := ""
		if len(args) == 4 {
			output = args[3]
		}
		return runEncode(a, args[0], args[1], args[2], output)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(a *app, imagePath, chunkType, message, outputPath string) error {
	ct, err := png.ParseChunkType(chunkType)
	if err != nil {
		return err
	}
	if !ct.IsValid() {
		a.logger.Warn("chunk type has the reserved bit set", "type", ct.String())
	}
	if ct.IsCritical() {
		a.logger.Warn("chunk type is critical; decoders that do not know it will reject the image", "type", ct.String())
	}

	image, err := a.load(imagePath)
	if err != nil {
		return err
	}

	chunk, err := png.NewChunk(ct, []byte(message))
	if err != nil {
		return err
	}
	image.AppendChunk(chunk)

	if outputPath == "" {
		outputPath = imagePath
	}
	if err := a.save(outputPath, image); err != nil {
		return err
	}

	a.logger.Info("chunk appended", "type", ct.String(), "length", chunk.Length(), "path", outputPath)
	fmt.Fprintln(a.out, "The message has been encoded into the file.")
	return nil
}
