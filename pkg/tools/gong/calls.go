// Package gong exposes the Gong API as MCP tools.
package gong

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/crmchattie/gong-mcp/core"
	"github.com/crmchattie/gong-mcp/pkg/auth"
	api "github.com/crmchattie/gong-mcp/pkg/gong"
	"github.com/crmchattie/gong-mcp/pkg/tools/utils"
)

// ListCallsTool lists Gong calls with optional date range filtering.
type ListCallsTool struct {
	handle     mcp.Tool
	clientOpts []api.Option
}

// NewListCallsTool creates the list_calls tool. Client options are applied to
// the per-request Gong client each tool invocation constructs.
func NewListCallsTool(clientOpts ...api.Option) core.Tool {
	t := &ListCallsTool{clientOpts: clientOpts}

	t.handle = mcp.NewTool(
		"list_calls",
		mcp.WithDescription("List Gong calls with optional date range filtering. Returns call details including ID, title, start/end times, participants, and duration. "+
			"IMPORTANT: When referencing any call, always note the participants and client firm information from the title. The title typically contains the client's company name and key participants. This information will be needed when analyzing transcripts later."),
		mcp.WithString(
			"fromDateTime",
			mcp.Description("Start date/time in ISO format (e.g. 2024-03-01T00:00:00Z)"),
		),
		mcp.WithString(
			"toDateTime",
			mcp.Description("End date/time in ISO format (e.g. 2024-03-31T23:59:59Z)"),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *ListCallsTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *ListCallsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fromDateTime, err := utils.GetOptionalStringParam(request, "fromDateTime")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	toDateTime, err := utils.GetOptionalStringParam(request, "toDateTime")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	creds, ok := auth.CredentialsFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("authentication_error: no Gong credentials on this request"), nil
	}

	response, err := api.NewClient(creds, t.clientOpts...).ListCalls(ctx, fromDateTime, toDateTime)
	if err != nil {
		log.Error("list_calls failed", "err", err)
		return upstreamErrorResult("listing calls", err), nil
	}

	return jsonResult(response)
}

// upstreamErrorResult maps client errors onto the tool error taxonomy.
func upstreamErrorResult(action string, err error) *mcp.CallToolResult {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError(fmt.Sprintf("gong_api_error: %s failed with status %d: %s", action, apiErr.StatusCode, apiErr.Message))
	}

	var connErr *api.ConnectivityError
	if errors.As(err, &connErr) {
		return mcp.NewToolResultError(fmt.Sprintf("connection_error: %s failed: could not reach the Gong API: %v", action, connErr.Err))
	}

	return mcp.NewToolResultError(fmt.Sprintf("internal_error: %s failed: %v", action, err))
}

// jsonResult marshals an upstream response into an indented text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error("failed to marshal tool response", "err", err)
		return mcp.NewToolResultError("internal_error: failed to encode response"), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
