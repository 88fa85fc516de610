// Package server wires the MCP streamable HTTP endpoint, health check, and
// credential middleware into a single HTTP handler.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/crmchattie/gong-mcp/pkg/auth"
	"github.com/crmchattie/gong-mcp/pkg/config"
	api "github.com/crmchattie/gong-mcp/pkg/gong"
	gongtools "github.com/crmchattie/gong-mcp/pkg/tools/gong"
)

const serverInstructions = `Model Context Protocol (MCP) server for retrieving sales call data from Gong's API.
Designed for sales teams and analysts seeking insights from recorded sales conversations.

CAPABILITIES:
1. List sales calls with optional date range filtering
2. Retrieve detailed transcripts for specific call IDs
3. Access call metadata including participants, duration, and scheduling information

WORKFLOW GUIDELINES:
1. Use list_calls to find relevant sales calls, filtering by fromDateTime and toDateTime.
2. Use retrieve_transcripts with specific call IDs to get detailed conversation data.
3. Always reference participant and client firm information from the original call listing when analyzing transcripts.`

// New builds the complete HTTP handler: MCP protocol endpoint under /mcp,
// unauthenticated health check under /health.
func New(cfg *config.Config) http.Handler {
	mcpServer := mcpserver.NewMCPServer(
		"gong",
		"1.0.0",
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithLogging(),
		mcpserver.WithInstructions(serverInstructions),
	)

	clientOpts := []api.Option{
		api.WithBaseURL(cfg.Gong.BaseURL),
		api.WithTimeout(cfg.Gong.RequestTimeout),
	}
	for _, tool := range gongtools.RegisterGongTools(clientOpts...) {
		mcpServer.AddTool(tool.Handle(), tool.Handler)
	}

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpServer,
		mcpserver.WithHTTPContextFunc(credentialsContext(cfg)),
		mcpserver.WithStateLess(true),
	)

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}))

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(requireCredentials(cfg))
		r.Handle("/mcp", streamable)
		r.Handle("/mcp/*", streamable)
	})

	return r
}

// handleHealth reports a fixed healthy status with no authentication.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "gong-mcp",
	})
}

// requireCredentials rejects protocol requests that carry no usable
// credentials. A missing header is tolerated when env default credentials are
// configured; a malformed header never is.
func requireCredentials(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := auth.FromRequest(r)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrMissingAuth) && cfg.HasDefaultCredentials():
			default:
				w.Header().Set("WWW-Authenticate", `Basic realm="gong-mcp"`)
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"error": "unauthorized: provide Gong credentials via 'Authorization: Basic base64(access_key:access_secret)'",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// credentialsContext attaches per-request credentials to the context handed to
// tool handlers, falling back to env defaults when no header is present.
func credentialsContext(cfg *config.Config) mcpserver.HTTPContextFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		creds, err := auth.FromRequest(r)
		if err != nil {
			if errors.Is(err, auth.ErrMissingAuth) && cfg.HasDefaultCredentials() {
				return auth.WithCredentials(ctx, auth.Credentials{
					AccessKey:    cfg.Gong.AccessKey,
					AccessSecret: cfg.Gong.AccessSecret,
				})
			}
			// The middleware already rejected these; tools also guard.
			return ctx
		}
		return auth.WithCredentials(ctx, creds)
	}
}
