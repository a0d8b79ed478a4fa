package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/letion/libavif/internal/jpeg"
)

var iccCmd = &cobra.Command{
	Use:   "icc",
	Short: "Extract the embedded ICC profile from a JPEG",
	RunE:  runICC,
}

func init() {
	iccCmd.Flags().StringP("input", "i", "", "Input JPEG file")
	iccCmd.Flags().StringP("output", "o", "", "Output ICC profile file")
	iccCmd.MarkFlagRequired("input")
	iccCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(iccCmd)
}

func runICC(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	info, err := jpeg.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}
	if len(info.ICC) == 0 {
		return fmt.Errorf("%s has no embedded ICC profile", inputPath)
	}
	if err := os.WriteFile(outputPath, info.ICC, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	log.Infof("extracted ICC profile: %s (%d bytes)", outputPath, len(info.ICC))
	return nil
}
