package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/letion/libavif/internal/color"
	"github.com/letion/libavif/internal/ir"
	"github.com/letion/libavif/internal/pipeline"
)

var recompressCmd = &cobra.Command{
	Use:   "recompress",
	Short: "Decode a JPEG to planar YUV and encode it back",
	RunE:  runRecompress,
}

func init() {
	recompressCmd.Flags().StringP("input", "i", "", "Input JPEG file")
	recompressCmd.Flags().StringP("output", "o", "", "Output JPEG file")
	recompressCmd.Flags().Int("quality", 90, "JPEG quality (0-100)")
	recompressCmd.Flags().String("yuv", "420", "Chroma subsampling (444, 422, 420, 400)")
	recompressCmd.Flags().Int("depth", 8, "Intermediate bit depth (8-16)")
	recompressCmd.Flags().String("upsampling", "automatic", "Chroma upsampling (automatic, fastest, nearest, best, bilinear)")
	recompressCmd.Flags().String("icc", "", "ICC profile file overriding the embedded one")
	recompressCmd.MarkFlagRequired("input")
	recompressCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(recompressCmd)
}

func runRecompress(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")
	yuvStr, _ := cmd.Flags().GetString("yuv")
	depth, _ := cmd.Flags().GetInt("depth")
	upsamplingStr, _ := cmd.Flags().GetString("upsampling")
	iccPath, _ := cmd.Flags().GetString("icc")

	format, err := ir.ParsePixelFormat(yuvStr)
	if err != nil {
		return err
	}
	upsampling, err := ir.ParseChromaUpsampling(upsamplingStr)
	if err != nil {
		return err
	}

	img, err := pipeline.DecodeJPEGToImage(inputPath, format, depth)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"format": img.Format.String(),
		"depth":  img.Depth,
		"icc":    len(img.ICC),
	}).Debugf("decoded %dx%d from %s", img.Width, img.Height, inputPath)

	if iccPath != "" {
		profile, err := color.LoadProfile(iccPath)
		if err != nil {
			return err
		}
		img.SetProfileICC(profile)
	}

	if err := pipeline.EncodeImageToJPEG(img, outputPath, quality, upsampling); err != nil {
		return err
	}
	log.Infof("wrote JPEG: %s (%dx%d, quality %d)", outputPath, img.Width, img.Height, quality)
	return nil
}
