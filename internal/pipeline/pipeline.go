package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eccdeploy/internal/archive"
	"eccdeploy/internal/config"
	"eccdeploy/internal/deploy"
	"eccdeploy/internal/inputs"
	"eccdeploy/internal/logging"
	"eccdeploy/internal/notify"
	"eccdeploy/internal/packages"
	"eccdeploy/internal/preflight"
	"eccdeploy/internal/stage"
	"eccdeploy/internal/workspace"
)

// DefaultArchiveName is used when Deps.ArchiveName is empty.
const DefaultArchiveName = "packages.zip"

// Uploader sends a deployment request.
type Uploader interface {
	Upload(ctx context.Context, req deploy.Request) (deploy.Result, error)
}

// Deps carries everything a run needs.
type Deps struct {
	Inputs      inputs.Inputs
	Env         config.Environment
	ArchiveName string
	Uploader    Uploader
	Sink        notify.Sink
	Logger      *slog.Logger
	// DryRun stops after the archive is written.
	DryRun bool
	// RunID overrides the generated run identifier.
	RunID string
}

type run struct {
	deps    Deps
	logger  *slog.Logger
	outcome Outcome
}

// Run executes one deployment and reports its outcome through deps.Sink.
func Run(ctx context.Context, deps Deps) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps.Sink == nil {
		deps.Sink = &notify.Recorder{}
	}
	if deps.ArchiveName == "" {
		deps.ArchiveName = DefaultArchiveName
	}
	runID := strings.TrimSpace(deps.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = stage.WithRunID(ctx, runID)

	r := &run{
		deps:    deps,
		logger:  logging.NewComponentLogger(deps.Logger, "pipeline"),
		outcome: Outcome{RunID: runID, State: StateStart},
	}
	r.execute(ctx)
	return r.outcome
}

func (r *run) execute(ctx context.Context) {
	in := r.deps.Inputs
	sink := r.deps.Sink
	sink.Debug("Starting deployment")

	inputsCtx := stage.WithStage(ctx, stage.Inputs)
	if err := in.Validate(); err != nil {
		r.fail(inputsCtx, fmt.Sprintf("Input validation failed: %s", err.Error()), err)
		return
	}
	r.advance(inputsCtx, StateInputsValidated)

	resolveCtx := stage.WithStage(ctx, stage.Context)
	resolved := workspace.ResolveContext(in, r.deps.Env)
	r.outcome.Context = resolved
	sink.Debug(fmt.Sprintf("Base directory determined: %s", resolved.BaseDir))
	sink.Debug(fmt.Sprintf("Tag determined: %s", resolved.Tag))
	sink.Debug(fmt.Sprintf("Inputs summary: BASE_DIR=%s PACKAGE_DIR=%s INSTANCE_NAME=%s TAGS=%s DESCRIPTION=%s",
		resolved.BaseDir, in.PackageDir, in.InstanceName, resolved.Tag, in.Description))
	logging.WithContext(resolveCtx, r.logger).Debug("context resolved",
		logging.String("base_dir", resolved.BaseDir),
		logging.String("tag", resolved.Tag),
		logging.String("instance_name", in.InstanceName),
		logging.Secret("access_token", in.AccessToken),
	)
	r.advance(resolveCtx, StateContextResolved)

	packagesCtx := stage.WithStage(ctx, stage.Packages)
	set, err := packages.Validate(resolved.BaseDir, in.PackageDir)
	if err != nil {
		r.fail(packagesCtx, packageFailure(err), err)
		return
	}
	names := set.Packages()
	r.outcome.Packages = names
	sink.Debug(fmt.Sprintf("Found %d entries; %d package directories", len(set.Entries), len(names)))
	sink.Info(fmt.Sprintf("Found %d package(s) in /%s:", len(names), in.PackageDir))
	for _, name := range names {
		sink.Info("- " + name)
	}
	r.advance(packagesCtx, StatePackageValidated)

	archiveCtx := stage.WithStage(ctx, stage.Archive)
	zipPath := filepath.Join(resolved.BaseDir, r.deps.ArchiveName)
	if err := preflight.FirstFailure(preflight.RunAll(resolved.BaseDir, set.Root)); err != nil {
		wrapped := stage.Wrap(stage.ErrArchive, stage.Archive, "preflight", "", err)
		r.fail(archiveCtx, fmt.Sprintf("Archiving failed: %s", err.Error()), wrapped)
		return
	}
	sink.Info(fmt.Sprintf("Archiving packages to %s...", zipPath))
	written, err := archive.Zip(archiveCtx, set.Root, zipPath)
	if err != nil {
		r.fail(archiveCtx, fmt.Sprintf("Archiving failed: %s", err.Error()), err)
		return
	}
	r.outcome.Archive = written
	sink.Debug(fmt.Sprintf("Archive finalized: %d bytes written (%s)", written.Size, written.Digest))
	r.advance(archiveCtx, StateArchived)

	if r.deps.DryRun {
		r.notice(archiveCtx, fmt.Sprintf("Dry run: archive written to %s (%d bytes, %s); upload skipped", written.Path, written.Size, written.Digest))
		return
	}

	uploadCtx := stage.WithStage(ctx, stage.Upload)
	if r.deps.Uploader == nil {
		err := stage.Wrap(stage.ErrConfiguration, stage.Upload, "", "uploader not configured", nil)
		r.fail(uploadCtx, fmt.Sprintf("Upload failed: %s", err.Error()), err)
		return
	}
	sink.Info("Uploading packages to ECC...")
	result, err := r.deps.Uploader.Upload(uploadCtx, deploy.Request{
		Credential:   in.AccessToken,
		InstanceName: in.InstanceName,
		Tags:         resolved.Tag,
		Description:  in.Description,
		ArchivePath:  written.Path,
	})
	if err != nil {
		r.fail(uploadCtx, fmt.Sprintf("Upload failed: %s", err.Error()), err)
		return
	}
	r.outcome.Result = result
	r.advance(uploadCtx, StateUploaded)

	reportCtx := stage.WithStage(ctx, stage.Report)
	r.outcome.State = StateReported
	if result.Succeeded() {
		r.notice(reportCtx, result.Summary())
		return
	}
	r.fail(reportCtx, result.Summary(), nil)
}

func (r *run) advance(ctx context.Context, state State) {
	r.outcome.State = state
	logging.WithContext(ctx, r.logger).Debug("state reached", logging.String("state", string(state)))
}

func (r *run) notice(ctx context.Context, message string) {
	r.outcome.Message = message
	logging.WithContext(ctx, r.logger).Info("deployment finished",
		logging.String("state", string(r.outcome.State)),
		logging.Int("code", r.outcome.Result.Code),
	)
	r.deps.Sink.Notice(message)
}

func (r *run) fail(ctx context.Context, message string, err error) {
	r.outcome.Message = message
	r.outcome.Err = err
	r.outcome.Failed = true
	attrs := []logging.Attr{logging.String("state", string(r.outcome.State))}
	if err != nil {
		attrs = append(attrs, logging.String("error_kind", stage.Kind(err)), logging.Error(err))
	} else {
		attrs = append(attrs, logging.String("error_kind", "response"), logging.Int("code", r.outcome.Result.Code))
	}
	logging.WithContext(ctx, r.logger).Warn("deployment failed", logging.Args(attrs...)...)
	r.deps.Sink.Fail(message)
}

// packageFailure returns the user-facing message for a package root error.
func packageFailure(err error) string {
	var notFound *packages.NotFoundError
	var empty *packages.EmptyPackageError
	switch {
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &empty):
		return empty.Error()
	default:
		return err.Error()
	}
}
