package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/isdmx/resumebox/config"
	"github.com/isdmx/resumebox/logger"
	"github.com/isdmx/resumebox/renderer"
	"github.com/isdmx/resumebox/workspace"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "resumebox"

// Version is reported to MCP clients during initialization.
var Version = "0.3.0"

// MCPServer represents the MCP server
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	workspace *workspace.Workspace
	renderer  renderer.Renderer
	mcpServer *server.MCPServer
}

// New creates a new MCPServer with every tool registered
func New(cfg *config.Config, logger *zap.Logger, ws *workspace.Workspace, r renderer.Renderer) (*MCPServer, error) {
	s := &MCPServer{
		config:    cfg,
		logger:    logger,
		workspace: ws,
		renderer:  r,
	}

	logger.Info("configuration loaded",
		zap.String("server.transport", cfg.Server.Transport),
		zap.Int("server.http_port", cfg.Server.HTTPPort),
		zap.String("workspace.root", ws.Root()),
		zap.String("workspace.artifact_ext", ws.ArtifactExt()),
		zap.String("renderer.url", cfg.Renderer.URL),
		zap.Bool("renderer.api_key_set", cfg.Renderer.APIKey != ""),
		zap.Int("renderer.timeout_sec", cfg.Renderer.TimeoutSec),
		zap.Int("renderer.max_artifact_size_mb", cfg.Renderer.MaxArtifactSizeMB),
	)

	s.mcpServer = server.NewMCPServer(ServerName, Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// ServeStdio serves MCP over stdin/stdout until stdin closes
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer, server.WithErrorLogger(logger.StdLog(s.logger)))
}

// GetMCPServer returns the underlying MCP server
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
