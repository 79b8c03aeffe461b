package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/internal/dto"
	"github.com/aretw0/goban/internal/logging"
	"github.com/aretw0/goban/internal/service"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Server exposes the stateless game operations as MCP tools. Games travel as
// SGF in every call, so an agent keeps the record in its own context.
type Server struct {
	svc       *service.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server. The game options apply to every game
// a tool opens.
func NewServer(version string, gameOpts []goban.Option, opts ...Option) *Server {
	s := &Server{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.svc = service.New(append([]goban.Option{goban.WithLogger(s.logger)}, gameOpts...)...)
	s.mcpServer = server.NewMCPServer("goban-mcp", strings.TrimSpace(version),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on the given port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func gameParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("sgf", mcp.Description("SGF record of the game; the move applies at the end of its main line. Omit to start from an empty board.")),
		mcp.WithNumber("size", mcp.Description("Board size for a new game (default 19)")),
		mcp.WithString("ruleset", mcp.Description("Rules: Japanese, Chinese, NZ, Tromp-Taylor, or tokens such as 'area,superko'")),
		mcp.WithNumber("komi", mcp.Description("Komi override")),
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("validate_sgf",
		mcp.WithDescription("Parse an SGF collection, replay every move through the rules and summarize each game."),
		mcp.WithString("sgf", mcp.Required(), mcp.Description("SGF text")),
		mcp.WithBoolean("strict", mcp.Description("Reject ko and suicide violations instead of accepting them as recorded")),
		mcp.WithOutputSchema[dto.ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	playOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Play one move and return the new record and position. Coordinates are SGF points: column letter then row letter, 'aa' is the top-left corner."),
		mcp.WithString("move", mcp.Required(), mcp.Description("SGF point such as 'dd', or 'pass' or 'resign'")),
		mcp.WithString("player", mcp.Description("B or W; defaults to the player to move")),
		mcp.WithOutputSchema[dto.PlayResponse](),
	}, gameParams()...)
	s.mcpServer.AddTool(mcp.NewTool("play_move", playOpts...), mcp.NewStructuredToolHandler(s.handlePlay))

	legalOpts := append([]mcp.ToolOption{
		mcp.WithDescription("List the points where the player to move may place a stone. Passing is always legal."),
		mcp.WithOutputSchema[dto.LegalResponse](),
	}, gameParams()...)
	s.mcpServer.AddTool(mcp.NewTool("legal_moves", legalOpts...), mcp.NewStructuredToolHandler(s.handleLegal))

	scoreOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Score a game that ended with consecutive passes."),
		mcp.WithArray("dead", mcp.WithStringItems(), mcp.Description("One SGF point per dead group")),
		mcp.WithOutputSchema[dto.ScoreResponse](),
	}, gameParams()...)
	s.mcpServer.AddTool(mcp.NewTool("score_game", scoreOpts...), mcp.NewStructuredToolHandler(s.handleScore))
}

// decodeArgs maps loosely typed tool arguments onto a request struct.
// JSON numbers arrive as float64, hence the weak typing.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.ValidateResponse, error) {
	var req dto.ValidateRequest
	if err := decodeArgs(args, &req); err != nil {
		return dto.ValidateResponse{}, err
	}
	return s.svc.Validate(req), nil
}

func (s *Server) handlePlay(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.PlayResponse, error) {
	var req dto.PlayRequest
	if err := decodeArgs(args, &req); err != nil {
		return dto.PlayResponse{}, err
	}
	resp, err := s.svc.Play(req)
	if err != nil {
		s.logger.Debug("MCP play_move rejected", "move", req.Move, "err", err)
		return dto.PlayResponse{}, err
	}
	return resp, nil
}

func (s *Server) handleLegal(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.LegalResponse, error) {
	var req dto.GameRequest
	if err := decodeArgs(args, &req); err != nil {
		return dto.LegalResponse{}, err
	}
	return s.svc.Legal(req)
}

func (s *Server) handleScore(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.ScoreResponse, error) {
	var req dto.ScoreRequest
	if err := decodeArgs(args, &req); err != nil {
		return dto.ScoreResponse{}, err
	}
	return s.svc.Score(req)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("goban://rulesets", "Ruleset presets",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		presets := []domain.Ruleset{domain.Japanese(), domain.Chinese(), domain.NewZealand(), domain.TrompTaylor()}
		jsonBytes, err := json.Marshal(presets)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "goban://rulesets",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
