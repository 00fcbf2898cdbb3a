package mtproto

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

type peerKind int

const (
	kindAny peerKind = iota
	kindChannel
	kindChat
)

// markedChannelBase offsets marked channel ids: -1001234567890 is channel 1234567890.
const markedChannelBase = 1_000_000_000_000

// groupRef is a parsed GROUP identifier: either a username or a numeric id.
type groupRef struct {
	username string
	id       int64
	kind     peerKind
}

func (r groupRef) isUsername() bool {
	return r.username != ""
}

// parseGroupRef accepts "name", "@name", "t.me/name" links and numeric ids in
// bare (1234), chat (-1234) or marked channel (-1001234) form.
func parseGroupRef(group string) (groupRef, error) {
	s := strings.TrimSpace(group)
	for _, prefix := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, prefix)
	}
	for _, prefix := range []string{"www.", "t.me/", "telegram.me/", "telegram.dog/", "@"} {
		s = strings.TrimPrefix(s, prefix)
	}
	if i := strings.IndexAny(s, "/?"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return groupRef{}, errors.Errorf("empty group identifier %q", group)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return groupRef{username: s}, nil
	}

	switch {
	case v < -markedChannelBase:
		return groupRef{id: -v - markedChannelBase, kind: kindChannel}, nil
	case v < 0:
		return groupRef{id: -v, kind: kindChat}, nil
	case v == 0:
		return groupRef{}, errors.Errorf("invalid group id %q", group)
	default:
		return groupRef{id: v, kind: kindAny}, nil
	}
}
