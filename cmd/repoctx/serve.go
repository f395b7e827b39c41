package main

import (
	"fmt"

	"github.com/fwojciec/repoctx/mcp"
)

// Run executes the serve command. It blocks until the MCP client disconnects.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := mcp.NewServer(deps.Service)
	if err := mcp.ServeStdio(srv); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
