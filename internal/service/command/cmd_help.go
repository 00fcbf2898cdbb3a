package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/tgsearch/internal/core"
)

type HelpCommand struct {
	name      string
	list      func() []core.Command
	formatter *ResponseFormatter
}

// NewHelpCommand lists the commands returned by list. It is registered under
// both /start and /help.
func NewHelpCommand(name string, list func() []core.Command) *HelpCommand {
	return &HelpCommand{
		name:      name,
		list:      list,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return c.name
}

func (c *HelpCommand) Description() string {
	return "Show available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, chatID int64, args []string) (string, error) {
	var items []string
	for _, cmd := range c.list() {
		items = append(items, fmt.Sprintf("/%s: %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Group search"),
		"Send a keyword to find the latest messages that mention it.",
		c.formatter.List(items),
	), nil
}
