package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, chatID int64, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, chatID int64, args []string) (string, error)
}

// Searcher runs one bounded search and returns the collected matches.
type Searcher interface {
	Search(ctx context.Context, query string) ([]MatchRecord, error)
}
