package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tendant/ossgate/pkg/ossgate"
)

// Handler exposes the ossgate service as MCP tools
type Handler struct {
	service ossgate.Service
}

// NewHandler creates a new instance of Handler
func NewHandler(service ossgate.Service) *Handler {
	return &Handler{service: service}
}

// RegisterTools registers the OSS tools with the MCP server
func (h *Handler) RegisterTools(s *server.MCPServer) {
	s.AddTool(mcp.Tool{
		Name:        "get_oss_upload_url",
		Description: "Issue a signed OSS upload URL and the public URL the object will have",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"filename":    map[string]any{"type": "string", "description": "Original file name; its extension is kept"},
				"contentType": map[string]any{"type": "string", "description": "Content type the uploader will send"},
				"owner_type":  map[string]any{"type": "string", "description": "Folder hint: avatar, user_profiles, cover, video, videos"},
				"owner_id":    map[string]any{"type": "string", "description": "Owner the object belongs to"},
			},
			Required: []string{"filename", "owner_id"},
		},
	}, h.handleUploadURL)

	s.AddTool(mcp.Tool{
		Name:        "delete_oss_object",
		Description: "Delete an OSS object by its public URL",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"publicUrl": map[string]any{"type": "string", "description": "Public URL returned on upload"},
				"dryRun":    map[string]any{"type": "boolean", "description": "Only resolve the object key"},
			},
			Required: []string{"publicUrl"},
		},
	}, h.handleDelete)
}

func (h *Handler) handleUploadURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	result, err := h.service.IssueUploadURL(ctx, ossgate.UploadRequest{
		FileName:    stringArg(args, "filename"),
		ContentType: stringArg(args, "contentType"),
		OwnerType:   stringArg(args, "owner_type"),
		OwnerID:     stringArg(args, "owner_id"),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

func (h *Handler) handleDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	dryRun, _ := args["dryRun"].(bool)

	result, err := h.service.DeleteObject(ctx, ossgate.DeleteRequest{
		PublicURL: stringArg(args, "publicUrl"),
		DryRun:    dryRun,
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

// stringArg reads a string argument. Numbers are formatted like the HTTP
// API's owner_id; true reads as "true" and other values as missing.
func stringArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case float64:
		return ossgate.OwnerIDFromNumber(v)
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(err error) *mcp.CallToolResult {
	var backendErr *ossgate.BackendError
	if errors.As(err, &backendErr) {
		return mcp.NewToolResultError(fmt.Sprintf("OSS delete failed (%d): %s", backendErr.Status, backendErr.Body))
	}
	return mcp.NewToolResultError(err.Error())
}
