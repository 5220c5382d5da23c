// Package cli реализует команды tourplan-client поверх движка синхронизации.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/tourplan/internal/client/api"
	"github.com/iudanet/tourplan/internal/client/iocli"
	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/client/storage"
	"github.com/iudanet/tourplan/internal/client/sync"
	"github.com/iudanet/tourplan/internal/config"
	"github.com/iudanet/tourplan/internal/models"
)

// ErrRejected возвращается, когда сервер отклонил часть записей.
// main переводит его в ненулевой код выхода.
var ErrRejected = errors.New("some records were rejected by the server")

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "yaml"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Server        string
	Token         string
	Format        string // "text" | "yaml"
	RequiredKinds []models.Kind
	Timeout       time.Duration
	Verbose       bool
}

// Authenticator обменивает учетные данные на токен
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Deps внешние зависимости команд, подменяемые в тестах
type Deps struct {
	IO               iocli.IO
	Stderr           io.Writer
	NewService       func(opts *RootOptions, logger *slog.Logger) sync.Service
	NewAuthenticator func(opts *RootOptions) Authenticator
	// Sessions хранит токены после login; nil отключает сохранение
	Sessions storage.SessionStorage
}

// DefaultDeps wires the commands to the HTTP client and the terminal.
// sessions may be nil when the session file could not be opened.
func DefaultDeps(sessions storage.SessionStorage) Deps {
	return Deps{
		IO:       iocli.NewStdio(),
		Stderr:   os.Stderr,
		Sessions: sessions,
		NewService: func(opts *RootOptions, logger *slog.Logger) sync.Service {
			client := api.NewClient(opts.Server)
			client.SetToken(opts.Token)
			store := snapshot.NewStore(logger, snapshot.WithRequiredKinds(opts.RequiredKinds...))
			return sync.NewService(client, store, sync.Config{CallTimeout: opts.Timeout}, logger)
		},
		NewAuthenticator: func(opts *RootOptions) Authenticator {
			return api.NewClient(opts.Server)
		},
	}
}

// NewRootCommand creates the root command for the tourplan client.
// cfg supplies flag defaults loaded from the environment.
func NewRootCommand(cfg *config.ClientConfig, deps Deps) *cobra.Command {
	opts := &RootOptions{RequiredKinds: cfg.RequiredKinds}

	cmd := &cobra.Command{
		Use:           "tourplan-client",
		Short:         "tourplan - tour schedule working copy",
		Long:          "Fetches the tour schedule, applies local edits to a working copy and uploads the changes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Timeout <= 0 {
				return fmt.Errorf("timeout must be positive")
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Server, "server", cfg.ServerURL, "server URL")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", cfg.Token, "API token (see login)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", cfg.CallTimeout, "timeout of a single server call")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|yaml)")

	// Add subcommands
	cmd.AddCommand(NewLoginCommand(opts, deps))
	cmd.AddCommand(NewLogoutCommand(opts, deps))
	cmd.AddCommand(NewStatusCommand(opts, deps))
	cmd.AddCommand(NewApplyCommand(opts, deps))
	cmd.AddCommand(NewVersionCommand(opts, deps))

	return cmd
}

// newService подставляет сохраненный токен, если --token и TOURPLAN_TOKEN пусты,
// и создает движок синхронизации
func (o *RootOptions) newService(cmd *cobra.Command, deps Deps, logger *slog.Logger) (sync.Service, error) {
	if o.Token == "" && deps.Sessions != nil {
		session, err := deps.Sessions.GetSession(commandContext(cmd), o.Server)
		switch {
		case err == nil:
			o.Token = session.Token
			logger.Debug("Using saved session", "server", o.Server, "username", session.Username)
		case errors.Is(err, storage.ErrSessionNotFound):
			logger.Debug("No saved session", "server", o.Server)
		default:
			return nil, fmt.Errorf("failed to read saved session: %w", err)
		}
	}
	return deps.NewService(o, logger), nil
}

// Logger строит логгер команды: предупреждения по умолчанию, debug с --verbose.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// writeYAML печатает v в YAML формате
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func contextWithTimeout(cmd *cobra.Command, o *RootOptions) (context.Context, context.CancelFunc) {
	return context.WithTimeout(commandContext(cmd), o.Timeout)
}
