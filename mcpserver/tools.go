package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/isdmx/resumebox/document"
	"github.com/isdmx/resumebox/renderer"
	"github.com/isdmx/resumebox/workspace"
)

// Tool names
const (
	ToolGenerateResume = "generate_resume"
	ToolCreateFolder   = "create_folder"
	ToolListFolder     = "list_folder"
	ToolResumeTemplate = "get_resume_template"
)

const modTimeLayout = "2006-01-02 15:04:05"

func (s *MCPServer) registerTools() error {
	schema, err := document.GenerateSchema()
	if err != nil {
		return err
	}

	generate := mcp.NewToolWithRawSchema(ToolGenerateResume,
		"Render resume data to PDF through the rendering service and save it in the workspace. "+
			"Call "+ToolResumeTemplate+" first to see the expected data shape.",
		schema)
	s.mcpServer.AddTool(generate, s.handleGenerateResume)

	s.mcpServer.AddTool(mcp.NewTool(ToolCreateFolder,
		mcp.WithDescription("Create a folder (and missing parents) inside the workspace"),
		mcp.WithString("folder",
			mcp.Required(),
			mcp.Description("Folder path relative to the workspace root, e.g. clients/acme"),
		),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	), s.handleCreateFolder)

	s.mcpServer.AddTool(mcp.NewTool(ToolListFolder,
		mcp.WithDescription("List subfolders and generated resumes in a workspace folder. Missing folders are created."),
		mcp.WithString("folder",
			mcp.Description("Folder path relative to the workspace root; blank lists the root"),
		),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	), s.handleListFolder)

	s.mcpServer.AddTool(mcp.NewTool(ToolResumeTemplate,
		mcp.WithDescription("Return placeholder resume data to fill in and pass to "+ToolGenerateResume),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(document.FormatJSON, document.FormatYAML),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handleResumeTemplate)

	return nil
}

// handleGenerateResume handles the generate_resume tool
func (s *MCPServer) handleGenerateResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req document.GenerateRequest
	if err := request.BindArguments(&req); err != nil {
		return s.failure("Invalid resume data", err), nil
	}

	if err := req.Normalize(); err != nil {
		return s.failure("Invalid resume data", err), nil
	}

	s.logger.Info("resume generation requested",
		zap.String("folder", req.Folder),
		zap.String("file_name", req.FileName),
		zap.String("template", req.Template))

	artifact, err := s.renderer.Render(ctx, req.Document)
	if err != nil {
		var respErr *renderer.ResponseError
		if errors.As(err, &respErr) {
			s.logger.Warn("renderer rejected document",
				zap.Int("status", respErr.StatusCode),
				zap.String("content_type", respErr.ContentType))
		}
		return s.failure("Failed to generate resume", err), nil
	}

	saved, err := s.workspace.SaveArtifact(req.Folder, req.FileName, artifact.Data)
	if err != nil {
		return s.failure("Failed to save resume", err), nil
	}

	s.logger.Info("resume saved",
		zap.String("path", saved.Path),
		zap.Int64("size", saved.Size))

	var b strings.Builder
	fmt.Fprintf(&b, "Resume generated: %s\n", joinRel(saved.Folder.Path, saved.Name))
	fmt.Fprintf(&b, "Absolute path: %s\n", saved.Path)
	fmt.Fprintf(&b, "Size: %s (%d bytes)\n", units.HumanSize(float64(saved.Size)), saved.Size)
	fmt.Fprintf(&b, "Template: %s", req.Template)

	return mcp.NewToolResultText(b.String()), nil
}

// handleCreateFolder handles the create_folder tool
func (s *MCPServer) handleCreateFolder(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := request.GetString("folder", "")

	created, err := s.workspace.CreateFolder(folder)
	if err != nil {
		if errors.Is(err, workspace.ErrEmptyFolder) {
			return s.failure("Invalid folder", err), nil
		}
		return s.failure("Failed to create folder", err), nil
	}

	s.logger.Info("folder created", zap.String("folder", created.Path))

	return mcp.NewToolResultText(fmt.Sprintf("Folder ready: %s\nAbsolute path: %s", created.Path, created.AbsPath)), nil
}

// handleListFolder handles the list_folder tool
func (s *MCPServer) handleListFolder(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := request.GetString("folder", "")

	listing, err := s.workspace.ListFolder(folder)
	if err != nil {
		return s.failure("Failed to list folder", err), nil
	}

	s.logger.Debug("folder listed",
		zap.String("folder", listing.Path),
		zap.Int("folders", len(listing.Folders)),
		zap.Int("files", len(listing.Files)))

	return mcp.NewToolResultText(formatListing(listing, s.workspace.ArtifactExt())), nil
}

// handleResumeTemplate handles the get_resume_template tool
func (s *MCPServer) handleResumeTemplate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := document.Encode(document.Template(), request.GetString("format", document.FormatJSON))
	if err != nil {
		return s.failure("Failed to build template", err), nil
	}

	return mcp.NewToolResultText(string(out)), nil
}

func (s *MCPServer) failure(msg string, err error) *mcp.CallToolResult {
	s.logger.Error(strings.ToLower(msg), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", msg, err))
}

func formatListing(l workspace.Listing, ext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Folder: %s\nAbsolute path: %s\n", l.Path, l.AbsPath)

	if l.Empty() {
		b.WriteString("\nFolder is empty.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nFolders (%d):\n", len(l.Folders))
	for _, name := range l.Folders {
		fmt.Fprintf(&b, "  %s/\n", name)
	}

	fmt.Fprintf(&b, "\nResumes (*%s) (%d):\n", ext, len(l.Files))
	for _, f := range l.Files {
		fmt.Fprintf(&b, "  %s  %s  %s\n", f.Name, units.HumanSize(float64(f.Size)), f.ModTime.Format(modTimeLayout))
	}

	return strings.TrimRight(b.String(), "\n")
}

func joinRel(folder, name string) string {
	if folder == "" || folder == "." {
		return name
	}
	return folder + "/" + name
}
