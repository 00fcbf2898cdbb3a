package command

import (
	"github.com/sandevgo/tgsearch/internal/core"
)

// NewBotRouter wires the bot commands. Plain text is treated as a search.
func NewBotRouter(searcher core.Searcher) *Router {
	search := NewSearchCommand(searcher)

	var router *Router
	list := func() []core.Command { return router.ListCommands() }
	router = New([]core.Command{
		search,
		NewHelpCommand("start", list),
		NewHelpCommand("help", list),
	}, search.Name())
	return router
}
