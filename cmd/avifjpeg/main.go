package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "avifjpeg",
	Short: "Bridge baseline JPEG files to and from planar YUV images",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
