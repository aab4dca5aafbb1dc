// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dalzilio/robdd/internal/server"
	"github.com/dalzilio/robdd/internal/service"
)

// ServeOptions holds the flags of the serve command.
type ServeOptions struct {
	Addr  string // overrides the address of the configuration
	Trace bool   // print spans on the error stream
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server. Generated diagrams are kept in a cache of
formulas; the export endpoints work on the cached diagrams.

The listen address comes from --addr, the ROBDD_ADDR variable, the
configuration file, or defaults to :8000.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, opts, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address, such as :8000")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print spans on the error stream")

	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, opts *ServeOptions, stderr io.Writer) error {
	cfg := rootOpts.Settings()
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	if opts.Trace {
		tp, err := newTracerProvider(stderr)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot start tracing", err)
		}
		otel.SetTracerProvider(tp)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Warn("Tracer shutdown failed", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, service.New(cfg)); err != nil {
		return WrapExitError(ExitFailure, "server failed", err)
	}
	return nil
}

// newTracerProvider returns a provider that prints every span on w.
func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
