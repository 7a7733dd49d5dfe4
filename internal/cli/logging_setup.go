package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
)

// setupLogging builds the logger from config plus CLI overrides and installs
// a traced context on the command. Interactive runs route logs to a file so
// the TUI keeps the terminal to itself.
func setupLogging(cmd *cobra.Command, cfg config.Config) (logging.Result, error) {
	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
		File:   cfg.Logging.File,
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.Output = "stderr"
	}

	// A TUI about to own the terminal must not share stderr with the log
	// stream; divert to the default file unless the user chose otherwise.
	if !debug && logCfg.Output != "file" && isTerminal(os.Stdout) {
		if path, err := config.DefaultLogPath(); err == nil {
			logCfg.Output = "file"
			logCfg.File = path
		}
	}
	if logCfg.Output == "file" && logCfg.File == "" {
		path, err := config.DefaultLogPath()
		if err != nil {
			return logging.Result{}, err
		}
		logCfg.File = path
	}

	result := logging.New(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackReason != "" {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	ctx = logging.ContextWithTraceID(ctx, logging.GetOrGenerateTraceID(ctx))
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return result, nil
}
