package core

import (
	"context"
	"errors"
	"time"
)

const (
	AppName    = "tgsearch"
	AppVersion = "0.1.0"
)

const (
	// ScanLimit is the number of most recent messages examined per search.
	ScanLimit = 100
	// MaxResults caps the number of matches collected before scanning stops.
	MaxResults = 5
)

var (
	ErrUnauthorized  = errors.New("session is not authorized")
	ErrGroupNotFound = errors.New("group not found")
	ErrNotAGroup     = errors.New("identifier does not point to a group or channel")
)

// Message is a single history entry. Service and empty messages have no Text.
type Message struct {
	ID   int
	Date time.Time
	Text string
}

// Entity is a resolved group or channel.
type Entity struct {
	ID       int64
	Username string
}

type MatchRecord struct {
	Date string `json:"date"`
	Link string `json:"link"`
}

// MessageSource is the messaging capability a search runs against.
// RecentMessages returns at most limit messages, newest first.
type MessageSource interface {
	ResolveEntity(ctx context.Context, group string) (Entity, error)
	RecentMessages(ctx context.Context, group string, limit int) ([]Message, error)
}
