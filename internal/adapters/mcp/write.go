package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sortable/internal/application"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

// RegisterWriteTools adds all ranking write tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(addTool(), addHandler(deps))
	s.AddTool(moveTool(), moveHandler(deps))
	s.AddTool(bulkMoveTool(), bulkMoveHandler(deps))
	s.AddTool(deleteTool(), deleteHandler(deps))
}

// --- add ---

func addTool() mcp.Tool {
	return mcp.NewTool("add",
		mcp.WithDescription("Append a new entry at the end of a scope."),
		scopeOption(),
		mcp.WithString("label",
			mcp.Description("Display text of the new entry"),
			mcp.Required(),
		),
	)
}

func addHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", domain.TableScope)
		label := req.GetString("label", "")

		result, err := commands.NewCreateCommand(deps.Store, scope, label).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move the entry at one rank to another rank, shifting the entries in between by one."),
		scopeOption(),
		mcp.WithNumber("startorder",
			mcp.Description("Current rank of the entry to move"),
			mcp.Required(),
		),
		mcp.WithNumber("endorder",
			mcp.Description("Rank the entry should end at; 0 moves it first, values past the end move it last"),
			mcp.Required(),
		),
	)
}

func moveHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", domain.TableScope)
		start := req.GetInt("startorder", 0)
		end := req.GetInt("endorder", 0)

		result, err := commands.NewMoveCommand(deps.Store, deps.Observer, scope, start, end).Execute(ctx)
		changed := 0
		if result != nil {
			changed = len(result.Changes)
		}
		deps.logger().LogMove(ctx, scope, start, end, changed, err)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message + "\n" + formatChanges(result.Changes)), nil
	}
}

// --- bulk_move ---

func bulkMoveTool() mcp.Tool {
	return mcp.NewTool("bulk_move",
		mcp.WithDescription("Move selected entries from the current page to another page of the ranked list. "+
			"Moving backward places them at the start of the target page, moving forward at its end."),
		scopeOption(),
		mcp.WithString("ids",
			mcp.Description("Comma-separated IDs of the selected entries"),
			mcp.Required(),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page the selection is on"),
			mcp.Required(),
		),
		mcp.WithString("action",
			mcp.Description("One of move_to_exact_page, move_to_back_page, move_to_forward_page, move_to_first_page, move_to_last_page"),
			mcp.Required(),
		),
		mcp.WithNumber("step",
			mcp.Description("Pages to move back or forward (default 1)"),
		),
		mcp.WithNumber("target_page",
			mcp.Description("1-based target page for move_to_exact_page"),
		),
		mcp.WithString("direction",
			mcp.Description(`Sort direction of the list: "1" ascending (default) or "-1" descending`),
		),
	)
}

func bulkMoveHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", domain.TableScope)
		ids := splitIDs(req.GetString("ids", ""))
		dir := application.ParseDirection(req.GetString("direction", ""), domain.Ascending)

		dest, err := domain.ParseDestination(req.GetString("action", ""), req.GetInt("step", 1), req.GetInt("target_page", 0))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewBulkMoveCommand(deps.Store, deps.Observer, scope, ids, req.GetInt("page", 0), dest, dir, deps.pageSize())
		result, err := cmd.Execute(ctx)
		moved := 0
		if result != nil {
			moved = result.Moved
		}
		deps.logger().LogBulkMove(ctx, scope, dest.String(), len(ids), moved, err)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete an entry by ID. Other ranks are not renumbered."),
		scopeOption(),
		mcp.WithString("id",
			mcp.Description("ID of the entry to delete"),
			mcp.Required(),
		),
	)
}

func deleteHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", domain.TableScope)
		id := req.GetString("id", "")

		result, err := commands.NewDeleteCommand(deps.Store, scope, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}
