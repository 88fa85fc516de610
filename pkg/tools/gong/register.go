package gong

import (
	"github.com/crmchattie/gong-mcp/core"
	api "github.com/crmchattie/gong-mcp/pkg/gong"
)

// RegisterGongTools returns the Gong tools for registration with the MCP
// server. The client options carry deployment settings (base URL, timeout)
// into every per-request client the tools construct.
func RegisterGongTools(clientOpts ...api.Option) []core.Tool {
	return []core.Tool{
		NewListCallsTool(clientOpts...),
		NewRetrieveTranscriptsTool(clientOpts...),
	}
}
