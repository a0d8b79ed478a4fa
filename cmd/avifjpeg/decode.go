package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/letion/libavif/internal/ir"
	"github.com/letion/libavif/internal/pipeline"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a JPEG to raw planar YUV (plus JSON sidecar)",
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringP("input", "i", "", "Input JPEG file")
	decodeCmd.Flags().StringP("output", "o", "", "Output raw planar YUV file")
	decodeCmd.Flags().String("yuv", "420", "Chroma subsampling (444, 422, 420, 400)")
	decodeCmd.Flags().Int("depth", 8, "Bit depth (8-16)")
	decodeCmd.MarkFlagRequired("input")
	decodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(decodeCmd)
}

type decodeMeta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Depth  int    `json:"depth"`
	Format string `json:"format"`
	ICC    int    `json:"iccBytes"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	yuvStr, _ := cmd.Flags().GetString("yuv")
	depth, _ := cmd.Flags().GetInt("depth")

	format, err := ir.ParsePixelFormat(yuvStr)
	if err != nil {
		return err
	}

	img, err := pipeline.DecodeJPEGToImage(inputPath, format, depth)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()
	for _, plane := range img.YUV {
		if plane == nil {
			continue
		}
		if _, err := out.Write(plane); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
	}

	meta := decodeMeta{
		Width:  img.Width,
		Height: img.Height,
		Depth:  img.Depth,
		Format: strings.ToLower(img.Format.String()),
		ICC:    len(img.ICC),
	}
	sidecarPath := outputPath + ".json"
	sidecar, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(sidecarPath, sidecar, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", sidecarPath, err)
	}

	log.Infof("decoded %s: %dx%d %s, sidecar %s", inputPath, img.Width, img.Height, img.Format, sidecarPath)
	return nil
}
