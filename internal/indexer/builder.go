package indexer

import (
	"context"
	"strings"
)

// Builder assembles the final index document for a root directory.
type Builder struct {
	walker *Walker
}

// NewBuilder constructs a Builder around the provided walker.
func NewBuilder(walker *Walker) *Builder {
	return &Builder{walker: walker}
}

// Build walks rootDirectory from depth zero and joins the resulting lines into
// one newline-separated document.
func (builder *Builder) Build(requestContext context.Context, rootDirectory string) (string, error) {
	indexLines, walkError := builder.walker.Walk(requestContext, rootDirectory, 0)
	if walkError != nil {
		return "", walkError
	}
	return strings.Join(indexLines, "\n"), nil
}
