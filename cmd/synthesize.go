package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sfstoolbox/sfs-go/internal/app"
)

var (
	synthOutputFile string
	synthPlotFile   string
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [scenario.yaml]",
	Short: "Compute the sound field of a synthesis scenario",
	Long: `Compute the monochromatic sound field described by a scenario file.

The scenario defines the evaluation grid, the secondary-source array, the
driving signals and the source model. The resulting complex field is written
together with its evaluation coordinates, and can optionally be rendered as
a heatmap.`,
	Args: cobra.ExactArgs(1),
	RunE: runSynthesize,
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)

	synthesizeCmd.Flags().StringVarP(&synthOutputFile, "output-file", "f", "",
		"write the field to this file instead of stdout")
	synthesizeCmd.Flags().StringVarP(&synthPlotFile, "plot", "p", "",
		"render the field to this image file (implies plotting enabled)")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appCtx := &app.Context{
		ScenarioFile: args[0],
		OutputFile:   synthOutputFile,
		OutputFormat: outputFormat,
		PlotFile:     synthPlotFile,
		Verbose:      verbose,
		Quiet:        quiet,
	}

	synthApp, err := app.NewSynthesisApp(appCtx)
	if err != nil {
		return err
	}
	return synthApp.Run(ctx)
}
