package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/talking-blobs/pipeline/config"
	"github.com/talking-blobs/pipeline/orchestrator"
)

func main() {
	var (
		cfgPath    string
		scriptPath string
		outPath    string
		fps        int
	)

	root := &cobra.Command{
		Use:   "blobs",
		Short: "Render conversations as energy-driven talking blob videos",
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config yaml")

	renderCmd := &cobra.Command{
		Use:   "render [script.yaml]",
		Short: "Synthesize a conversation script and render the blob video",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scriptPath == "" && len(args) > 0 {
				scriptPath = args[0]
			}
			if scriptPath == "" {
				return fmt.Errorf("usage: blobs render [-s script.yaml] <script.yaml>")
			}

			conf, err := cfg.Load(cfgPath)
			if err != nil {
				return err
			}
			if fps > 0 {
				conf.Video.FPS = fps
			}
			if lvl, err := logrus.ParseLevel(conf.Pipeline.LogLvl); err == nil {
				logrus.SetLevel(lvl)
			}

			p := orchestrator.NewPipeline(conf)
			return p.Run(cmd.Context(), scriptPath, outPath)
		},
	}
	renderCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "conversation script yaml")
	renderCmd.Flags().StringVarP(&outPath, "output", "o", "talking_blobs.mp4", "output video path")
	renderCmd.Flags().IntVar(&fps, "fps", 0, "override video fps")
	root.AddCommand(renderCmd)

	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
