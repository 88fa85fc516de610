package gong

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/crmchattie/gong-mcp/core"
	"github.com/crmchattie/gong-mcp/pkg/auth"
	api "github.com/crmchattie/gong-mcp/pkg/gong"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	text, _ := result.Content[0].(mcp.TextContent)
	return text.Text
}

func authedContext() context.Context {
	return auth.WithCredentials(context.Background(), auth.Credentials{
		AccessKey:    "test-key",
		AccessSecret: "test-secret",
	})
}

// TestListCallsTool tests the ListCallsTool structure and schema
func TestListCallsTool(t *testing.T) {
	Convey("Given a ListCallsTool", t, func() {
		tool := NewListCallsTool()

		Convey("It should implement the core.Tool interface", func() {
			So(tool, ShouldImplement, (*core.Tool)(nil))
		})

		Convey("It should have the correct name", func() {
			So(tool.Handle().Name, ShouldEqual, "list_calls")
		})

		Convey("Its schema should declare both date bounds as optional strings", func() {
			schema := tool.Handle().InputSchema

			_, hasFrom := schema.Properties["fromDateTime"]
			_, hasTo := schema.Properties["toDateTime"]
			So(hasFrom, ShouldBeTrue)
			So(hasTo, ShouldBeTrue)

			So(schema.Required, ShouldNotContain, "fromDateTime")
			So(schema.Required, ShouldNotContain, "toDateTime")
		})

		Convey("Its description should carry the participant-context guidance", func() {
			So(tool.Handle().Description, ShouldContainSubstring, "participants")
		})
	})
}

// TestRetrieveTranscriptsTool tests the RetrieveTranscriptsTool structure and schema
func TestRetrieveTranscriptsTool(t *testing.T) {
	Convey("Given a RetrieveTranscriptsTool", t, func() {
		tool := NewRetrieveTranscriptsTool()

		Convey("It should implement the core.Tool interface", func() {
			So(tool, ShouldImplement, (*core.Tool)(nil))
		})

		Convey("It should have the correct name", func() {
			So(tool.Handle().Name, ShouldEqual, "retrieve_transcripts")
		})

		Convey("Its schema should require callIds", func() {
			schema := tool.Handle().InputSchema

			_, hasCallIDs := schema.Properties["callIds"]
			So(hasCallIDs, ShouldBeTrue)
			So(schema.Required, ShouldContain, "callIds")
		})
	})
}

// TestRegisterGongTools tests the RegisterGongTools function
func TestRegisterGongTools(t *testing.T) {
	Convey("Given the RegisterGongTools function", t, func() {
		tools := RegisterGongTools()

		Convey("It should return exactly the two Gong tools", func() {
			So(len(tools), ShouldEqual, 2)

			names := make([]string, 0, len(tools))
			for _, tool := range tools {
				So(tool, ShouldImplement, (*core.Tool)(nil))
				names = append(names, tool.Handle().Name)
			}
			So(names, ShouldContain, "list_calls")
			So(names, ShouldContain, "retrieve_transcripts")
		})
	})
}

// TestListCallsHandler tests argument validation and the happy path
func TestListCallsHandler(t *testing.T) {
	Convey("Given a ListCallsTool handler", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(api.CallsResponse{
				Records: api.Records{TotalRecords: 1, CurrentPageSize: 1},
				Calls:   []api.Call{{ID: "123", Title: "Acme Corp | Discovery"}},
			})
		}))
		defer upstream.Close()

		tool := NewListCallsTool(api.WithBaseURL(upstream.URL))

		Convey("It should reject a non-string fromDateTime", func() {
			result, err := tool.Handler(authedContext(), callRequest("list_calls", map[string]any{
				"fromDateTime": 12345,
			}))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(resultText(result), ShouldContainSubstring, "invalid_argument")
		})

		Convey("It should fail without credentials on the context", func() {
			result, err := tool.Handler(context.Background(), callRequest("list_calls", map[string]any{}))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(resultText(result), ShouldContainSubstring, "authentication_error")
		})

		Convey("It should return the upstream payload as JSON text", func() {
			result, err := tool.Handler(authedContext(), callRequest("list_calls", map[string]any{
				"fromDateTime": "2024-03-01T00:00:00Z",
				"toDateTime":   "2024-03-31T23:59:59Z",
			}))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)

			var payload api.CallsResponse
			So(json.Unmarshal([]byte(resultText(result)), &payload), ShouldBeNil)
			So(payload.Records.TotalRecords, ShouldEqual, 1)
			So(len(payload.Calls), ShouldEqual, 1)
			So(payload.Calls[0].ID, ShouldEqual, "123")
		})
	})
}

// TestRetrieveTranscriptsHandler tests validation ordering and error mapping
func TestRetrieveTranscriptsHandler(t *testing.T) {
	Convey("Given a RetrieveTranscriptsTool handler", t, func() {
		Convey("With an empty callIds array", func() {
			var upstreamCalls int
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				upstreamCalls++
			}))
			defer upstream.Close()

			tool := NewRetrieveTranscriptsTool(api.WithBaseURL(upstream.URL))
			result, err := tool.Handler(authedContext(), callRequest("retrieve_transcripts", map[string]any{
				"callIds": []any{},
			}))

			Convey("It should fail validation before any upstream call", func() {
				So(err, ShouldBeNil)
				So(result.IsError, ShouldBeTrue)
				So(resultText(result), ShouldContainSubstring, "invalid_argument")
				So(upstreamCalls, ShouldEqual, 0)
			})
		})

		Convey("With a missing callIds argument", func() {
			tool := NewRetrieveTranscriptsTool()
			result, err := tool.Handler(authedContext(), callRequest("retrieve_transcripts", map[string]any{}))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(resultText(result), ShouldContainSubstring, "invalid_argument")
		})

		Convey("With a non-string element in callIds", func() {
			tool := NewRetrieveTranscriptsTool()
			result, err := tool.Handler(authedContext(), callRequest("retrieve_transcripts", map[string]any{
				"callIds": []any{"123", 456},
			}))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(resultText(result), ShouldContainSubstring, "invalid_argument")
		})

		Convey("With valid call IDs", func() {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(api.TranscriptsResponse{
					Records: api.Records{TotalRecords: 1},
					CallTranscripts: []api.CallTranscript{
						{CallID: "123", Transcript: []api.Monologue{{SpeakerID: "spk-1"}}},
					},
				})
			}))
			defer upstream.Close()

			tool := NewRetrieveTranscriptsTool(api.WithBaseURL(upstream.URL))
			requested := []any{"123", "999"}
			result, err := tool.Handler(authedContext(), callRequest("retrieve_transcripts", map[string]any{
				"callIds": requested,
			}))

			Convey("It should return at most one transcript per requested ID", func() {
				So(err, ShouldBeNil)
				So(result.IsError, ShouldBeFalse)

				var payload api.TranscriptsResponse
				So(json.Unmarshal([]byte(resultText(result)), &payload), ShouldBeNil)
				So(len(payload.CallTranscripts), ShouldBeLessThanOrEqualTo, len(requested))
				So(payload.CallTranscripts[0].CallID, ShouldEqual, "123")
			})
		})

		Convey("With an upstream error", func() {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"errors": []string{"invalid access key"}})
			}))
			defer upstream.Close()

			tool := NewRetrieveTranscriptsTool(api.WithBaseURL(upstream.URL))
			result, err := tool.Handler(authedContext(), callRequest("retrieve_transcripts", map[string]any{
				"callIds": []any{"123"},
			}))

			Convey("It should surface the upstream status and message", func() {
				So(err, ShouldBeNil)
				So(result.IsError, ShouldBeTrue)
				So(resultText(result), ShouldContainSubstring, "gong_api_error")
				So(resultText(result), ShouldContainSubstring, "401")
				So(resultText(result), ShouldContainSubstring, "invalid access key")
			})
		})
	})
}
