package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/pkg/instructions"
	"github.com/aretw0/weave/pkg/label"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Planner defines the planning core exposed as MCP tools.
type Planner interface {
	Plan(ctx context.Context, req weave.Request) (*weave.Plan, error)
}

// PlanArgs are the arguments of the plan_summary tool.
type PlanArgs struct {
	Document string   `json:"document"`
	Width    *float64 `json:"width,omitempty"`
}

// PlanSummary is the structured result of plan_summary.
type PlanSummary struct {
	Pins         int      `json:"pins" jsonschema_description:"Pins placed on the board"`
	Segments     int      `json:"segments" jsonschema_description:"Segments to string"`
	Wraps        int      `json:"wraps" jsonschema_description:"Transitions that run the thread around the rim"`
	LongestChain int      `json:"longest_chain" jsonschema_description:"Most consecutive steps without a wrap"`
	LabelBase    int      `json:"label_base" jsonschema_description:"Words of the phonetic alphabet in use"`
	LabelDigits  int      `json:"label_digits" jsonschema_description:"Words per label"`
	Inches       *int     `json:"inches,omitempty" jsonschema_description:"Total thread, when a width was given"`
	Kilometers   *float64 `json:"kilometers,omitempty"`
}

// LabelArgs are the arguments of the encode_label tool.
type LabelArgs struct {
	Total int `json:"total"`
	Index int `json:"index"`
}

// LabelResult is the structured result of encode_label.
type LabelResult struct {
	Label  string `json:"label"`
	Base   int    `json:"base"`
	Digits int    `json:"digits"`
}

// Server wraps the Planner and exposes it as an MCP Server.
type Server struct {
	planner   Planner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(planner Planner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		planner:   planner,
		logger:    logger,
		mcpServer: server.NewMCPServer("weave-mcp", strings.TrimSpace(weave.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: generate_instructions
	generateTool := mcp.NewTool("generate_instructions",
		mcp.WithDescription("Order the segments of a string-art render and return step-by-step stringing instructions."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The renderer's JSON result")),
		mcp.WithNumber("width", mcp.Description("Board diameter in inches; adds a thread length total"), mcp.Min(0)),
		mcp.WithString("format", mcp.Description("text (default) or json (one event per line)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.mcpServer.AddTool(generateTool, s.handleGenerate)

	// TOOL: plan_summary
	summaryTool := mcp.NewTool("plan_summary",
		mcp.WithDescription("Summarize the plan for a render: wraps, label scheme and thread length."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The renderer's JSON result")),
		mcp.WithNumber("width", mcp.Description("Board diameter in inches"), mcp.Min(0)),
		mcp.WithOutputSchema[PlanSummary](),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.mcpServer.AddTool(summaryTool, mcp.NewStructuredToolHandler(s.handleSummary))

	// TOOL: encode_label
	labelTool := mcp.NewTool("encode_label",
		mcp.WithDescription("Return the phonetic label of a step in a run of a given length."),
		mcp.WithNumber("total", mcp.Required(), mcp.Description("Number of steps in the run"), mcp.Min(1)),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based step index"), mcp.Min(0)),
		mcp.WithOutputSchema[LabelResult](),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.mcpServer.AddTool(labelTool, mcp.NewStructuredToolHandler(s.handleLabel))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := instructions.ParseFormat(request.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	plan, err := s.planner.Plan(ctx, weave.Request{Document: []byte(doc), Width: widthArg(request)})
	if err != nil {
		s.logger.Warn("MCP generate_instructions: planning failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("planning failed: %v", err)), nil
	}

	var out bytes.Buffer
	if err := plan.Print(&out, instructions.WithFormat(format)); err != nil {
		return mcp.NewToolResultErrorFromErr("printing failed", err), nil
	}
	return mcp.NewToolResultText(out.String()), nil
}

func (s *Server) handleSummary(ctx context.Context, request mcp.CallToolRequest, args PlanArgs) (PlanSummary, error) {
	if args.Document == "" {
		return PlanSummary{}, errors.New("document is required")
	}

	plan, err := s.planner.Plan(ctx, weave.Request{Document: []byte(args.Document), Width: args.Width})
	if err != nil {
		s.logger.Warn("MCP plan_summary: planning failed", "error", err)
		return PlanSummary{}, fmt.Errorf("planning failed: %w", err)
	}

	summary := PlanSummary{
		Pins:         plan.Board.PinCount(),
		Segments:     len(plan.Traversal),
		Wraps:        len(plan.Stats.Wraps),
		LongestChain: plan.Stats.LongestChain,
		LabelBase:    plan.Labels.Base,
		LabelDigits:  plan.Labels.Digits,
	}
	if plan.Thread != nil {
		inches, km := plan.Thread.RoundedInches(), plan.Thread.Kilometers()
		summary.Inches = &inches
		summary.Kilometers = &km
	}
	return summary, nil
}

func (s *Server) handleLabel(ctx context.Context, request mcp.CallToolRequest, args LabelArgs) (LabelResult, error) {
	if args.Total < 1 {
		return LabelResult{}, fmt.Errorf("total must be at least 1, got %d", args.Total)
	}
	enc := label.NewEncoder(args.Total)
	l, err := enc.Encode(args.Index)
	if err != nil {
		return LabelResult{}, err
	}
	return LabelResult{Label: l, Base: enc.Base, Digits: enc.Digits}, nil
}

// widthArg returns the width argument, or nil when it was not supplied.
func widthArg(request mcp.CallToolRequest) *float64 {
	if _, ok := request.GetArguments()["width"]; !ok {
		return nil
	}
	w, err := request.RequireFloat("width")
	if err != nil {
		// Let the planner reject it as an invalid width.
		return weave.Width(0)
	}
	return &w
}

func (s *Server) registerResources() {
	// EXPOSE: weave://alphabet
	s.mcpServer.AddResource(mcp.NewResource("weave://alphabet", "Phonetic Label Alphabet",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(label.Alphabet)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "weave://alphabet",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
