// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
//
// The mcpserver package exposes the resumebox tools over MCP using the
// mark3labs/mcp-go library:
//
//   - generate_resume renders a document through the remote renderer and
//     saves the PDF into the workspace
//   - create_folder creates a folder inside the workspace
//   - list_folder lists subfolders and generated resumes, creating the
//     folder if it is missing
//   - get_resume_template returns placeholder resume data as JSON or YAML
//
// Every failure is reported as a tool result with IsError set and a
// human-readable message; handlers never fail the protocol request itself.
//
// Usage:
//
//	server, err := mcpserver.New(cfg, logger, ws, renderer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = server.ServeStdio() // or server.HTTPServer().ListenAndServe()
package mcpserver
