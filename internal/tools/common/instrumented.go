package common

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/server"
)

// ToolHandler is the signature of an MCP tool handler.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with a tool.<name> span,
// tool metrics and audit logging. Each call gets a fresh invocation id.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := sc.Account(GetAccountFromArgs(args))
		invocationID := uuid.NewString()

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.NewSpanAttributeBuilder().
				WithAccount(account).
				WithSource(sc.SourceName()).
				WithReadOnly(true).
				Build()...,
		)
		defer span.End()

		logger := logging.WithTool(sc.Logger(), toolName).With("invocation_id", invocationID)
		logger.Debug("tool invoked", logging.Account(account))

		invocation := instrumentation.NewToolInvocation(toolName).
			WithInvocationID(invocationID).
			WithAccount(account).
			WithSource(sc.SourceName()).
			WithArguments(args).
			WithSpanContext(ctx)

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		switch {
		case err != nil:
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			invocation.Complete(false, nil)
			instrumentation.AddSpanEvent(span, "tool_error_result")
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		sc.Metrics().RecordToolInvocationWithAccount(ctx, toolName, invocation.Status(), account, duration)
		sc.AuditLogger().LogToolInvocation(ctx, invocation)

		logger.Debug("tool finished",
			logging.Status(invocation.Status()),
			logging.Duration(duration))

		return result, err
	}
}
