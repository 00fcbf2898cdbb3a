package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/tgsearch/internal/core"
)

type Router struct {
	commands map[string]core.Command
	fallback string
}

// New builds a router. Input that is not a command is passed to the fallback
// command, if one is set.
func New(commands []core.Command, fallback string) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
		fallback: fallback,
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

func (c *Router) Execute(ctx context.Context, chatID int64, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	var name string
	var args []string
	if strings.HasPrefix(input, "/") {
		parts := strings.Fields(input)
		name = strings.TrimPrefix(parts[0], "/")
		// "/search@my_bot" in group chats
		name, _, _ = strings.Cut(name, "@")
		args = parts[1:]
	} else {
		if c.fallback == "" {
			return "", false
		}
		name = c.fallback
		args = []string{input}
	}

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s", name), true
	}

	result, err := cmd.Execute(ctx, chatID, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
