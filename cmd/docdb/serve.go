package main

import (
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run executes the serve command. It blocks until the client disconnects.
func (c *ServeCmd) Run(deps *Dependencies) error {
	return deps.MCP.Run(deps.Ctx, &gomcp.StdioTransport{})
}
