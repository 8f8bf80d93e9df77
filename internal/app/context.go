package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/sfstoolbox/sfs-go/configs"
	"github.com/sfstoolbox/sfs-go/internal/output"
	"github.com/sfstoolbox/sfs-go/pkg/geometry"
	"github.com/sfstoolbox/sfs-go/pkg/greens"
	"github.com/sfstoolbox/sfs-go/pkg/soundplot"
	"github.com/sfstoolbox/sfs-go/pkg/synthesis"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ScenarioFile string
	OutputFile   string
	OutputFormat string
	PlotFile     string
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger *zap.Logger
	Config *configs.Config
}

// SynthesisApp handles the synthesis application lifecycle
type SynthesisApp struct {
	ctx    *Context
	config *configs.Config
	logger *zap.Logger
}

// NewSynthesisApp creates a new synthesis application
func NewSynthesisApp(ctx *Context) (*SynthesisApp, error) {
	// Set up logging
	logger, err := setupLogging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	ctx.Logger = logger

	// Load configuration and merge CLI overrides
	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger.Debug("synthesis application initialized",
		zap.String("scenario_file", ctx.ScenarioFile),
		zap.String("output_format", config.OutputFormat),
		zap.Int("resolution", config.Synthesis.Resolution),
	)

	return &SynthesisApp{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// Run executes one synthesis scenario
func (app *SynthesisApp) Run(ctx context.Context) error {
	sc, err := LoadScenario(app.ctx.ScenarioFile)
	if err != nil {
		return err
	}

	model, err := sc.ParseModel()
	if err != nil {
		return err
	}
	convention, err := greens.ParseConvention(app.config.Synthesis.TimeConvention)
	if err != nil {
		return err
	}

	g, err := sc.BuildGrid(app.config.Synthesis.Resolution)
	if err != nil {
		return fmt.Errorf("failed to build evaluation grid: %w", err)
	}
	sources, err := sc.BuildArray()
	if err != nil {
		return fmt.Errorf("failed to build secondary-source array: %w", err)
	}
	driving, err := sc.BuildDriving(len(sources))
	if err != nil {
		return fmt.Errorf("failed to build driving signals: %w", err)
	}

	app.logger.Info("running synthesis scenario",
		zap.String("name", sc.Name),
		zap.Stringer("model", model),
		zap.Float64("frequency_hz", sc.FrequencyHz),
		zap.Int("sources", len(sources)),
		zap.Int("grid_points", g.Len()),
	)

	var progress synthesis.ProgressFunc
	if app.config.Synthesis.ShowProgress && !app.ctx.Quiet {
		progress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rsecondary source %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	engine := synthesis.NewEngine(&synthesis.EngineConfig{
		SpeedOfSound: app.config.Synthesis.SpeedOfSound,
		Convention:   convention,
		Workers:      app.config.Synthesis.Workers,
		Progress:     progress,
		Logger:       app.logger,
	})

	res, err := engine.Synthesize(ctx, g, sources, driving, model, sc.FrequencyHz)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}
	if !res.Finite() {
		app.logger.Warn("field contains non-finite values; an evaluation point coincides with a secondary source")
	}

	if err := app.outputResults(sc, res); err != nil {
		return fmt.Errorf("failed to output results: %w", err)
	}

	if app.config.Plot.Enabled || app.ctx.PlotFile != "" {
		if err := app.renderPlot(sc, sources, res); err != nil {
			return fmt.Errorf("failed to render plot: %w", err)
		}
	}

	return nil
}

// outputResults serializes the field and writes it to the configured sink
func (app *SynthesisApp) outputResults(sc *Scenario, res *synthesis.Result) error {
	doc := output.NewDocument(res, sc.Model, sc.FrequencyHz, app.config.Synthesis.SpeedOfSound)

	formatter, err := output.NewFormatter(app.config.OutputFormat)
	if err != nil {
		return err
	}
	data, err := formatter.Format(doc, app.config.Output.Pretty)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}

	if app.config.Output.File != "" {
		return app.writeToFile(app.config.Output.File, data)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// renderPlot writes a heatmap of the field next to the serialized output
func (app *SynthesisApp) renderPlot(sc *Scenario, sources []geometry.SecondarySource, res *synthesis.Result) error {
	path := app.ctx.PlotFile
	if path == "" {
		path = app.config.Plot.File
	}
	if path == "" {
		path = "soundfield.png"
	}

	opts := &soundplot.Options{
		Mode:    soundplot.Mode(app.config.Plot.Mode),
		Title:   sc.Name,
		Sources: sources,
	}
	width := vg.Length(app.config.Plot.WidthInches) * vg.Inch
	height := vg.Length(app.config.Plot.HeightInches) * vg.Inch
	if err := soundplot.Save(res, opts, path, width, height); err != nil {
		return err
	}

	app.logger.Info("sound field plot written", zap.String("plot_file", path))
	return nil
}

// writeToFile writes data to the specified output file
func (app *SynthesisApp) writeToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Info("results written to file",
		zap.String("output_file", path),
		zap.Int("size_bytes", len(data)),
	)
	return nil
}

// setupLogging configures logging based on context
func setupLogging(ctx *Context) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if ctx.Verbose {
		level = zapcore.DebugLevel
	} else if ctx.Quiet {
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadAndMergeConfig loads configuration from viper and merges CLI flags
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	// CLI flags win over the config file
	if ctx.OutputFormat != "" {
		config.OutputFormat = ctx.OutputFormat
	}
	if ctx.OutputFile != "" {
		config.Output.File = ctx.OutputFile
	}
	if ctx.PlotFile != "" {
		config.Plot.Enabled = true
		config.Plot.File = ctx.PlotFile
	}

	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
