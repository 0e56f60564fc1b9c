package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/pitchlab/passmap/internal/config"
	"github.com/pitchlab/passmap/internal/logging"
	intOtel "github.com/pitchlab/passmap/internal/otel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric"
)

// AppName prefixes log files and identifies the service to OTel.
const AppName = "passmap"

// app holds the state shared by all subcommands for one invocation.
type app struct {
	configDir string
	noLogFile bool

	sessionStart time.Time
	logs         *logging.SlogManager
	logger       *slog.Logger
	logFile      *os.File
	telemetry    *intOtel.Provider
	graylog      *gelf.Writer
}

func newApp() *app {
	return &app{
		configDir:    ".",
		sessionStart: time.Now(),
		logs:         logging.NewSlogManager(),
		logger:       slog.Default(),
	}
}

// setup loads config and wires logging for the command about to run.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Load(a.configDir); err != nil {
		// Defaults remain registered; a missing file is not fatal.
		a.logger.Debug("Failed to load config, using defaults", "error", err)
	}

	level := viper.GetString("logLevel")

	var file io.Writer
	if !a.noLogFile {
		f, err := logging.OpenLogFile(viper.GetString("logsDir"), AppName, a.sessionStart)
		if err != nil {
			return err
		}
		a.logFile = f
		file = f
	}

	var sinks logging.Sinks
	var gelfErr error
	if viper.GetBool("graylog.enabled") {
		w, err := logging.NewGELFWriter(viper.GetString("graylog.address"))
		if err != nil {
			gelfErr = err
		} else {
			a.graylog = w
			sinks.Graylog = w
		}
	}

	var otelErr error
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var logWriter io.Writer
		if a.logFile != nil {
			logWriter = a.logFile
		}
		a.telemetry, otelErr = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			BatchTimeout:   otelCfg.BatchTimeout,
			MetricInterval: otelCfg.MetricInterval,
			LogWriter:      logWriter,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
	}
	if a.telemetry != nil {
		sinks.OTel = a.telemetry.LoggerProvider()
	}

	run := logging.Run{Command: cmd.Name()}
	cmd.SetContext(logging.WithRun(cmd.Context(), run))
	a.logs.SetRun(run)
	a.logs.Setup(file, level, sinks)
	a.logger = a.logs.Logger()

	if gelfErr != nil {
		a.logger.Warn("Graylog output disabled", "error", gelfErr)
	}
	if otelErr != nil {
		a.logger.Error("Failed to initialize OTel provider", "error", otelErr)
	}
	return nil
}

// meter returns the run's meter, or nil to fall back to the global provider.
func (a *app) meter(name string) metric.Meter {
	if a.telemetry == nil {
		return nil
	}
	return a.telemetry.Meter(name)
}

// teardown flushes telemetry and closes the log file.
func (a *app) teardown(ctx context.Context) error {
	if err := a.logs.Flush(ctx); err != nil {
		a.logger.Warn("Failed to flush logs", "error", err)
	}
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(ctx); err != nil {
			a.logger.Warn("Failed to shut down OTel provider", "error", err)
		}
	}
	if a.graylog != nil {
		if err := a.graylog.Close(); err != nil {
			a.logger.Warn("Failed to close graylog writer", "error", err)
		}
		a.graylog = nil
	}
	if a.logFile != nil {
		err := a.logFile.Close()
		a.logFile = nil
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:   AppName,
		Short: "Classify football passes and draw per-player pass maps",
		Long: `passmap labels every event of a match as a progressive, normal, backwards,
unknown or non-pass, aggregates per-player passing numbers and renders a
player's passes onto a pitch as an SVG pass map.

Events are read from a local file (JSON event feed or flattened CSV) or
fetched from an open-data source by match id.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", ".", "directory containing "+config.FileName)
	root.PersistentFlags().BoolVar(&a.noLogFile, "no-log-file", false, "log to stderr instead of the logs directory")

	root.AddCommand(newClassifyCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newRenderCmd(a))

	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
