package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sortable/internal/application"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
	"sortable/internal/logging"
	"sortable/internal/ports"
)

// Deps holds what the tools operate on
type Deps struct {
	Store    ports.RankStore
	Observer ports.RankObserver // may be nil
	History  ports.AuditLog     // nil disables the history tool
	PageSize int
	Logger   *logging.Logger
}

func (d Deps) pageSize() int {
	if d.PageSize > 0 {
		return d.PageSize
	}
	return domain.DefaultPageSize
}

func (d Deps) logger() *logging.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logging.NoopLogger()
}

// RegisterReadTools adds all read-only ranking tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listTool(), listHandler(deps))
	s.AddTool(scopesTool(), scopesHandler(deps))
	if deps.History != nil {
		s.AddTool(historyTool(), historyHandler(deps))
	}
}

func scopeOption() mcp.ToolOption {
	return mcp.WithString("scope",
		mcp.Description("Ranking scope key. Omit for the table-wide scope."),
	)
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List one page of a scope in rank order, with the bulk move actions offered on that page."),
		scopeOption(),
		mcp.WithNumber("page",
			mcp.Description("1-based page number (default 1)"),
		),
		mcp.WithString("direction",
			mcp.Description(`Sort direction: "1" ascending (default) or "-1" descending`),
		),
	)
}

func listHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", domain.TableScope)
		dir := application.ParseDirection(req.GetString("direction", ""), domain.Ascending)

		res, err := commands.NewListCommand(deps.Store, scope, req.GetInt("page", 1), deps.pageSize(), dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "page %d/%d, %d entries\n", res.Page, res.NumPages, res.Count)
		for _, e := range res.Entries {
			fmt.Fprintf(&sb, "%4d  %s  %s\n", e.Rank, e.ID, e.Label)
		}
		if len(res.Actions) > 0 {
			fmt.Fprintf(&sb, "actions: %s\n", strings.Join(res.Actions, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- scopes ---

func scopesTool() mcp.Tool {
	return mcp.NewTool("scopes",
		mcp.WithDescription("List every ranking scope with its entry count and rank range."),
	)
}

func scopesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scopes, err := commands.NewScopesCommand(deps.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(scopes, formatScope)
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("Show the most recent rank changes of a scope, newest first."),
		scopeOption(),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of changes (default 50)"),
		),
	)
}

func historyHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", domain.TableScope)
		records, err := commands.NewHistoryCommand(deps.History, scope, req.GetInt("limit", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(records, formatRecord)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatScope(s domain.ScopeSummary) string {
	key := s.Key
	if key == domain.TableScope {
		key = "(table)"
	}
	line := fmt.Sprintf("%s  %d entries  ranks %d-%d", key, s.Count, s.MinRank, s.MaxRank)
	if !s.Dense() {
		line += "  (gaps)"
	}
	return line
}

func formatRecord(r ports.AuditRecord) string {
	marker := ""
	if r.Moved {
		marker = "  *"
	}
	return fmt.Sprintf("%s  %s  %d -> %d%s", r.At.Format("2006-01-02 15:04:05"), r.ID, r.OldRank, r.NewRank, marker)
}

func formatChanges(changes []domain.RankChange) string {
	var sb strings.Builder
	for _, c := range changes {
		fmt.Fprintf(&sb, "%s  %d -> %d\n", c.ID, c.OldRank, c.NewRank)
	}
	return sb.String()
}
