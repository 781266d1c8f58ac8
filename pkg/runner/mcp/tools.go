package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/celexta/pkg/selection"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSearchTool(srv, svc)
	registerSelectTool(srv, svc)
	registerUnselectTool(srv, svc)
	registerListSelectedTool(srv, svc)
	registerListListsTool(srv, svc)
}

func registerSearchTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_catalog",
		mcp.WithDescription("Find catalog records whose label contains the query, ignoring case."),
		mcp.WithString("query",
			mcp.Description("Text to look for. Empty returns the whole catalog."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return."),
		),
	)

	srv.AddTool(tool, handleSearch(svc))
}

func handleSearch(svc *Service) server.ToolHandlerFunc {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Query string `json:"query"`
			Limit int    `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		results, err := svc.Search(args.Query, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   args.Query,
			"results": results,
			"count":   len(results),
		})
	}
}

func registerSelectTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"select_record",
		mcp.WithDescription("Add a catalog record to a selection list. Name the record by index from search_catalog, or by a query matching exactly one record."),
		mcp.WithString("list",
			mcp.Description("Selection list, defaults to "+selection.DefaultList+"."),
		),
		mcp.WithNumber("index",
			mcp.Description("Catalog index returned by search_catalog. Takes precedence over query."),
		),
		mcp.WithString("query",
			mcp.Description("Query that narrows the catalog to a single record."),
		),
	)

	srv.AddTool(tool, handleSelect(svc))
}

func handleSelect(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			List  string `json:"list"`
			Index *int   `json:"index"`
			Query string `json:"query"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, already, err := svc.Select(ctx, args.List, args.Index, args.Query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"selection":       dto,
			"alreadySelected": already,
		})
	}
}

func registerUnselectTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"unselect_record",
		mcp.WithDescription("Remove a selection from a list."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Selection identifier."),
		),
		mcp.WithString("list",
			mcp.Description("Selection list, defaults to "+selection.DefaultList+"."),
		),
	)

	srv.AddTool(tool, handleUnselect(svc))
}

func handleUnselect(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID   string `json:"id"`
			List string `json:"list"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.Unselect(ctx, args.List, args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func registerListSelectedTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_selected",
		mcp.WithDescription("List the records selected into a list, oldest first."),
		mcp.WithString("list",
			mcp.Description("Selection list, defaults to "+selection.DefaultList+"."),
		),
	)

	srv.AddTool(tool, handleListSelected(svc))
}

func handleListSelected(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			List string `json:"list"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		all, err := svc.Selected(ctx, args.List)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"selections": all,
			"count":      len(all),
		})
	}
}

func registerListListsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_lists",
		mcp.WithDescription("List every selection list with its size."),
	)

	srv.AddTool(tool, handleListLists(svc))
}

func handleListLists(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lists, err := svc.Lists(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"lists": lists,
			"count": len(lists),
		})
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
