package sitecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-pagegen/internal/commands"
	"github.com/goliatone/go-pagegen/internal/generator"
	"github.com/goliatone/go-pagegen/internal/logging"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

// ErrServiceRequired is returned when a handler executes without a generator.
var ErrServiceRequired = errors.New("sitecmd: generator service is required")

// BuildSiteHandler orchestrates generator builds using the shared command
// handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.Build(ctx, generator.BuildOptions{
			DryRun:     msg.DryRun,
			Permalinks: normalizePermalinks(msg.Permalinks),
		})
		if err != nil {
			return err
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
			},
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Permalinks) > 0 {
				fields["permalinks"] = len(msg.Permalinks)
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PreviewSiteHandler runs dry-run builds.
type PreviewSiteHandler struct {
	inner *commands.Handler[PreviewSiteCommand]
}

// NewPreviewSiteHandler constructs a handler that performs dry-run builds.
func NewPreviewSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PreviewSiteCommand]) *PreviewSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PreviewSiteCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.Build(ctx, generator.BuildOptions{
			DryRun:     true,
			Permalinks: normalizePermalinks(msg.Permalinks),
		})
		if err != nil {
			return err
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "preview",
			},
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[PreviewSiteCommand]{
		commands.WithLogger[PreviewSiteCommand](baseLogger),
		commands.WithOperation[PreviewSiteCommand]("site.preview"),
		commands.WithMessageFields(func(msg PreviewSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Permalinks) > 0 {
				fields["permalinks"] = len(msg.Permalinks)
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PreviewSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PreviewSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PreviewSiteCommand].
func (h *PreviewSiteHandler) Execute(ctx context.Context, msg PreviewSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generator artifacts.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that cleans generator output.
func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		return service.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("site.clean"),
		commands.WithTelemetry(commands.DefaultTelemetry[CleanSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
