package sitecmd

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-pagegen/internal/commands"
	"github.com/goliatone/go-pagegen/internal/generator"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the site command handlers produced by RegisterSiteCommands.
type HandlerSet struct {
	Build   *BuildSiteHandler
	Preview *PreviewSiteHandler
	Clean   *CleanSiteHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	buildHandlerOpts   []commands.HandlerOption[BuildSiteCommand]
	previewHandlerOpts []commands.HandlerOption[PreviewSiteCommand]
	cleanHandlerOpts   []commands.HandlerOption[CleanSiteCommand]
}

// WithBuildHandlerOptions forwards options to the BuildSiteHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildSiteCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// WithPreviewHandlerOptions forwards options to the PreviewSiteHandler constructor.
func WithPreviewHandlerOptions(opts ...commands.HandlerOption[PreviewSiteCommand]) Option {
	return func(cfg *options) {
		cfg.previewHandlerOpts = append(cfg.previewHandlerOpts, opts...)
	}
}

// WithCleanHandlerOptions forwards options to the CleanSiteHandler constructor.
func WithCleanHandlerOptions(opts ...commands.HandlerOption[CleanSiteCommand]) Option {
	return func(cfg *options) {
		cfg.cleanHandlerOpts = append(cfg.cleanHandlerOpts, opts...)
	}
}

// RegisterSiteCommands builds site command handlers and registers them with
// the provided registry. The returned HandlerSet lets callers wire additional
// integrations (dispatcher, cron) as needed.
func RegisterSiteCommands(reg CommandRegistry, service generator.Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("sitecmd: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "site")

	set := &HandlerSet{
		Build:   NewBuildSiteHandler(service, logger, cfg.buildHandlerOpts...),
		Preview: NewPreviewSiteHandler(service, logger, cfg.previewHandlerOpts...),
		Clean:   NewCleanSiteHandler(service, logger, cfg.cleanHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Build, set.Preview, set.Clean} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, fmt.Errorf("sitecmd: register handler: %w", err)
			}
		}
	}
	return set, nil
}

var (
	_ command.Commander[BuildSiteCommand]   = (*BuildSiteHandler)(nil)
	_ command.Commander[PreviewSiteCommand] = (*PreviewSiteHandler)(nil)
	_ command.Commander[CleanSiteCommand]   = (*CleanSiteHandler)(nil)
)
