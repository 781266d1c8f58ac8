package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCatalogResource(srv, svc)
	registerListTemplate(srv, svc)
}

func registerCatalogResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"celexta://catalog",
		"Catalog",
		mcp.WithResourceDescription("Every catalog record with its index and display label."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		records, err := svc.Records()
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"records": records,
			"count":   len(records),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerListTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"celexta://lists/{name}",
		"Selection List",
		mcp.WithTemplateDescription("Records selected into a list."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := listArgument(request.Params.Arguments["name"])
		if name == "" {
			return nil, fmt.Errorf("list name is required")
		}

		all, err := svc.Selected(ctx, name)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"list":       name,
			"count":      len(all),
			"selections": all,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// listArgument accepts the template value either as a string or as the
// single element slice some clients send.
func listArgument(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return s
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
