package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/platform"
)

const (
	ServerName    = "paneshift"
	ServerVersion = "0.1.0"
)

// Server exposes window arrangement as MCP tools over stdio. It drives the
// backend in-process rather than going through the daemon socket, so it works
// whether or not the daemon is running.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   platform.Backend
	arranger  *arrange.Arranger
	cfg       *config.Config
	log       zerolog.Logger
}

// NewServer creates an MCP server around a window backend.
func NewServer(cfg *config.Config, backend platform.Backend, log zerolog.Logger) *Server {
	s := &Server{
		backend:  backend,
		arranger: arrange.New(backend, log),
		cfg:      cfg,
		log:      log,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Str("server", ServerName).Msg("MCP server starting on stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "arrange_windows",
		Description: "Arrange terminal windows on a monitor into a layout preset. Presets are configured names (grid, columns, split, main, focus, ...) or raw specs such as 2x3, columns:4, left-right, main-side:0.66. Windows are placed into slots front-to-back by stacking order; extra windows stack on the last slot. Returns per-window outcomes.",
	}, s.handleArrangeWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo_arrange",
		Description: "Restore the window geometry recorded before the last arrangement pass on a monitor. The snapshot is consumed; a second undo without a new pass fails.",
	}, s.handleUndoArrange)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows an arrangement pass would touch on a monitor, frontmost first, with geometry and process names.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their full bounds and the usable area left after panels and docks.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_presets",
		Description: "List the configured layout presets and which one is the default.",
	}, s.handleListPresets)
}
