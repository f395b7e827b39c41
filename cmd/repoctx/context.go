package main

import (
	"fmt"

	"github.com/fwojciec/repoctx"
)

// Run executes the context command.
func (c *ContextCmd) Run(deps *Dependencies) error {
	docsRepo, err := repoctx.ParseRepo(c.DocsRepo)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repoctx.ErrorMessage(err))
		return err
	}

	req := repoctx.ContextRequest{
		DocsRepo:     docsRepo,
		SubdirPrefix: c.Subdir,
		TokenBudget:  c.Budget,
		UseCache:     c.Cache,
	}
	if c.CodeRepo != "" {
		codeRepo, err := repoctx.ParseRepo(c.CodeRepo)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", repoctx.ErrorMessage(err))
			return err
		}
		req.CodeRepo = codeRepo
	}

	var content string
	if c.Code {
		content, err = deps.Service.ContextWithCode(deps.Ctx, req)
	} else {
		content, err = deps.Service.ContextWithoutCode(deps.Ctx, req)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repoctx.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
