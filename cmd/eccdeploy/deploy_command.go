package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eccdeploy/internal/deploy"
	"eccdeploy/internal/logging"
	"eccdeploy/internal/notify"
	"eccdeploy/internal/pipeline"
)

func runDeploy(cmd *cobra.Command, ctx *commandContext, overrides map[string]string, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	in := ctx.stepInputs().Override(overrides)

	sink := notify.New(cfg, cmd.OutOrStdout(), logger)
	if fwd, ok := sink.(*notify.Forwarder); ok {
		fwd.WithTitle(in.InstanceName)
	}

	client := deploy.NewClient(cfg.Deploy.Endpoint,
		deploy.WithTimeout(cfg.UploadTimeout()),
		deploy.WithUserAgent(userAgent()),
		deploy.WithLogger(logger),
	)

	logger.Debug("configuration loaded",
		logging.String("config_path", ctx.configPath),
		logging.Bool("config_file", ctx.configExists),
		logging.String("endpoint", cfg.Deploy.Endpoint),
		logging.Bool("dry_run", dryRun),
	)

	outcome := pipeline.Run(cmd.Context(), pipeline.Deps{
		Inputs:      in,
		Env:         cfg.Env,
		ArchiveName: cfg.Deploy.ArchiveName,
		Uploader:    client,
		Sink:        sink,
		Logger:      logger,
		DryRun:      dryRun,
	})
	if outcome.Failed {
		return errReported
	}
	return nil
}
