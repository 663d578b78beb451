package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/isdmx/resumebox/config"
	"github.com/isdmx/resumebox/logger"
	"github.com/isdmx/resumebox/mcpserver"
	"github.com/isdmx/resumebox/renderer"
	"github.com/isdmx/resumebox/workspace"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "resumebox",
		Short:        "MCP server that renders resumes to PDF into a sandboxed workspace",
		Version:      mcpserver.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(config.Options{File: configFile, Flags: cmd.Flags()})
			app.Run()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "path to a YAML config file (default: ./config.yaml or ./config/config.yaml)")
	flags.String("transport", "stdio", "MCP transport: stdio or http")
	flags.Int("http-port", 8080, "listen port for the http transport")
	flags.String("root-dir", "resumes", "workspace root directory")

	return cmd
}

func newApp(opts config.Options) *fx.App {
	return fx.New(
		fx.Options(appOptions(opts)...),

		// Use the application logger for fx logs
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)
}

func appOptions(opts config.Options) []fx.Option {
	return []fx.Option{
		fx.Supply(opts),

		fx.Provide(
			config.New,
			logger.NewFromConfig,
			workspace.NewFromConfig,
			renderer.NewFromConfig,
			mcpserver.New,
		),

		fx.Invoke(startTransport),
	}
}

// startTransport serves the configured transport for the lifetime of the app.
// When the transport stops on its own the app is shut down.
func startTransport(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, server *mcpserver.MCPServer, log *zap.Logger) {
	switch cfg.Server.Transport {
	case "stdio":
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					if err := server.ServeStdio(); err != nil {
						log.Error("stdio transport stopped", zap.Error(err))
					}
					_ = shutdowner.Shutdown()
				}()
				return nil
			},
		})
	case "http":
		httpServer := server.HTTPServer()
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				ln, err := net.Listen("tcp", httpServer.Addr)
				if err != nil {
					return err
				}
				log.Info("starting MCP server on HTTP",
					zap.String("addr", ln.Addr().String()),
					zap.String("endpoint", mcpserver.MCPPath))
				go func() {
					if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("http transport stopped", zap.Error(err))
						_ = shutdowner.Shutdown(fx.ExitCode(1))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return httpServer.Shutdown(ctx)
			},
		})
	default:
		// config validation rejects anything else
		panic("unsupported transport: " + cfg.Server.Transport)
	}
}
