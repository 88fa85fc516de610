package gong

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/crmchattie/gong-mcp/core"
	"github.com/crmchattie/gong-mcp/pkg/auth"
	api "github.com/crmchattie/gong-mcp/pkg/gong"
	"github.com/crmchattie/gong-mcp/pkg/tools/utils"
)

// RetrieveTranscriptsTool fetches transcripts for specific Gong call IDs.
type RetrieveTranscriptsTool struct {
	handle     mcp.Tool
	clientOpts []api.Option
}

// NewRetrieveTranscriptsTool creates the retrieve_transcripts tool.
func NewRetrieveTranscriptsTool(clientOpts ...api.Option) core.Tool {
	t := &RetrieveTranscriptsTool{clientOpts: clientOpts}

	t.handle = mcp.NewTool(
		"retrieve_transcripts",
		mcp.WithDescription("Retrieve transcripts for specified call IDs. Returns detailed transcripts including speaker IDs, topics, and timestamped sentences. "+
			"IMPORTANT: When analyzing any transcript, always reference the participant and client firm information from the original call listing. The call title and participant details from the list_calls tool should be used to provide context about who was involved in the conversation."),
		mcp.WithArray(
			"callIds",
			mcp.Required(),
			mcp.Description("Array of Gong call IDs to retrieve transcripts for"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *RetrieveTranscriptsTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *RetrieveTranscriptsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	callIDs, err := utils.GetRequiredStringSliceParam(request, "callIds")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	if len(callIDs) == 0 {
		return mcp.NewToolResultError("invalid_argument: callIds must contain at least one call ID"), nil
	}

	creds, ok := auth.CredentialsFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError("authentication_error: no Gong credentials on this request"), nil
	}

	response, err := api.NewClient(creds, t.clientOpts...).RetrieveTranscripts(ctx, callIDs)
	if err != nil {
		log.Error("retrieve_transcripts failed", "err", err)
		return upstreamErrorResult("retrieving transcripts", err), nil
	}

	return jsonResult(response)
}
