// profilescope-mcp exposes the Profilescope API as an MCP stdio server, so
// agent tooling can trigger profile scrapes as a tool call. It is a pure
// HTTP client of the API and deliberately imports nothing from the service.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeRequest mirrors the Profilescope API request model.
type scrapeRequest struct {
	Username   string `json:"username"`
	Platform   string `json:"platform"`
	JobID      string `json:"jobId,omitempty"`
	WebhookURL string `json:"webhookUrl"`
}

// scrapeResponse mirrors the Profilescope API response model.
type scrapeResponse struct {
	Success bool            `json:"success"`
	JobID   string          `json:"jobId"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("PSCOPE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("PSCOPE_API_KEY")

	s := server.NewMCPServer(
		"profilescope",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	scrapeProfileTool := mcp.NewTool("scrape_profile",
		mcp.WithDescription("Scrape a public social-media profile and return normalized metrics (followers, following, posts, bio, avatar, verification). Uses a headless browser; the result is also posted to the given webhook URL."),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("The profile handle, without a leading @"),
		),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("The platform hosting the profile"),
			mcp.Enum("instagram", "tiktok"),
		),
		mcp.WithString("webhook_url",
			mcp.Required(),
			mcp.Description("Absolute URL that receives the terminal job outcome"),
		),
	)

	s.AddTool(scrapeProfileTool, handleScrapeProfile(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeProfile(apiURL, apiKey string) server.ToolHandlerFunc {
	// Jobs run synchronously behind the API, so the client deadline must
	// cover a full job ceiling.
	client := &http.Client{Timeout: 310 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		username, err := request.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError("username is required"), nil
		}
		platform, err := request.RequireString("platform")
		if err != nil {
			return mcp.NewToolResultError("platform is required"), nil
		}
		webhookURL, err := request.RequireString("webhook_url")
		if err != nil {
			return mcp.NewToolResultError("webhook_url is required"), nil
		}

		body, err := json.Marshal(scrapeRequest{
			Username:   username,
			Platform:   platform,
			WebhookURL: webhookURL,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/scrape", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var parsed scrapeResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if !parsed.Success {
			if parsed.Error != nil {
				return mcp.NewToolResultError(fmt.Sprintf("scrape failed (%s): %s", parsed.Error.Code, parsed.Error.Message)), nil
			}
			return mcp.NewToolResultError("scrape failed with unknown error"), nil
		}

		return mcp.NewToolResultText(string(parsed.Data)), nil
	}
}
