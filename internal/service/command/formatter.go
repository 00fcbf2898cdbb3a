package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/internal/service/search"
	"github.com/sandevgo/tgsearch/pkg/conv"
)

// ResponseFormatter builds Markdown replies.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("🔍 **%s**\n", title)
}

func (f *ResponseFormatter) Error(err error) string {
	return fmt.Sprintf("❌ **Search failed**\n\n**Issue**: %s\n", conv.EscapeMarkdown(err.Error()))
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**:\n```\n%s\n```\n", command)
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("› %s\n", item))
	}
	return sb.String()
}

// Results renders one numbered line per match, linking the message.
func (f *ResponseFormatter) Results(query string, records []core.MatchRecord) string {
	if len(records) == 0 {
		return fmt.Sprintf("Nothing found for `%s`.\n", strings.ReplaceAll(query, "`", "'"))
	}

	var sb strings.Builder
	sb.WriteString(f.Info(fmt.Sprintf("Results for %s", conv.EscapeMarkdown(query))))
	sb.WriteString("\n")
	for i, r := range records {
		sb.WriteString(fmt.Sprintf("%d\\. [%s](%s)\n\n", i+1, displayDate(r.Date), r.Link))
	}
	return sb.String()
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}

func displayDate(iso string) string {
	t, err := time.Parse(search.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02.01.2006 15:04")
}
