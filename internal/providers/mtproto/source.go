package mtproto

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/pkg/log"
)

const (
	historyBatch = 100
	dialogsBatch = 100
	// maxDialogPages bounds the dialog walk used to resolve numeric ids.
	maxDialogPages = 50
)

// api is the subset of *tg.Client a search needs.
type api interface {
	ContactsResolveUsername(ctx context.Context, request *tg.ContactsResolveUsernameRequest) (*tg.ContactsResolvedPeer, error)
	MessagesGetDialogs(ctx context.Context, request *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error)
	MessagesGetHistory(ctx context.Context, request *tg.MessagesGetHistoryRequest) (tg.MessagesMessagesClass, error)
}

type resolved struct {
	entity core.Entity
	peer   tg.InputPeerClass
}

// source implements core.MessageSource on top of raw MTProto calls.
// It lives for a single session and caches resolved peers.
type source struct {
	api   api
	peers map[string]resolved
}

func newSource(api api) *source {
	return &source{
		api:   api,
		peers: make(map[string]resolved),
	}
}

func (s *source) ResolveEntity(ctx context.Context, group string) (core.Entity, error) {
	r, err := s.resolve(ctx, group)
	if err != nil {
		return core.Entity{}, err
	}
	return r.entity, nil
}

func (s *source) RecentMessages(ctx context.Context, group string, limit int) ([]core.Message, error) {
	r, err := s.resolve(ctx, group)
	if err != nil {
		return nil, err
	}

	out := make([]core.Message, 0, limit)
	offsetID := 0
	for len(out) < limit {
		batch := min(limit-len(out), historyBatch)
		res, err := s.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:     r.peer,
			OffsetID: offsetID,
			Limit:    batch,
		})
		if err != nil {
			return nil, errors.Wrap(err, "get history")
		}

		page := convertMessages(historyMessages(res))
		if len(page) == 0 {
			break
		}
		out = append(out, page...)
		offsetID = page[len(page)-1].ID
		if len(page) < batch {
			break
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}

	log.FromCtx(ctx).Debug().Int("count", len(out)).Msg("loaded recent messages")
	return out, nil
}

func (s *source) resolve(ctx context.Context, group string) (resolved, error) {
	if r, ok := s.peers[group]; ok {
		return r, nil
	}

	ref, err := parseGroupRef(group)
	if err != nil {
		return resolved{}, err
	}

	var r resolved
	if ref.isUsername() {
		r, err = s.resolveUsername(ctx, ref.username)
	} else {
		r, err = s.resolveID(ctx, ref)
	}
	if err != nil {
		return resolved{}, err
	}

	log.FromCtx(ctx).Debug().
		Int64("id", r.entity.ID).
		Str("username", r.entity.Username).
		Msg("resolved group")

	s.peers[group] = r
	return r, nil
}

func (s *source) resolveUsername(ctx context.Context, username string) (resolved, error) {
	res, err := s.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
			return resolved{}, errors.Wrapf(core.ErrGroupNotFound, "@%s", username)
		}
		return resolved{}, errors.Wrap(err, "resolve username")
	}

	for _, chat := range res.Chats {
		if r, ok := fromChat(chat); ok {
			return r, nil
		}
	}
	if len(res.Users) > 0 {
		return resolved{}, errors.Wrapf(core.ErrNotAGroup, "@%s", username)
	}
	return resolved{}, errors.Wrapf(core.ErrGroupNotFound, "@%s", username)
}

// resolveID walks the dialog list, since a bare id carries no access hash.
func (s *source) resolveID(ctx context.Context, ref groupRef) (resolved, error) {
	offsetDate := 0
	for page := 0; page < maxDialogPages; page++ {
		res, err := s.api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
			OffsetDate: offsetDate,
			OffsetPeer: &tg.InputPeerEmpty{},
			Limit:      dialogsBatch,
		})
		if err != nil {
			return resolved{}, errors.Wrap(err, "get dialogs")
		}

		var (
			chats    []tg.ChatClass
			messages []tg.MessageClass
			dialogs  int
			last     bool
		)
		switch d := res.(type) {
		case *tg.MessagesDialogs:
			chats, messages, dialogs, last = d.Chats, d.Messages, len(d.Dialogs), true
		case *tg.MessagesDialogsSlice:
			chats, messages, dialogs = d.Chats, d.Messages, len(d.Dialogs)
		default:
			last = true
		}

		if r, ok := findChat(chats, ref); ok {
			return r, nil
		}

		next := oldestDate(messages)
		if last || dialogs < dialogsBatch || next == 0 || next == offsetDate {
			break
		}
		offsetDate = next
	}

	return resolved{}, errors.Wrapf(core.ErrGroupNotFound, "id %d", ref.id)
}

func findChat(chats []tg.ChatClass, ref groupRef) (resolved, bool) {
	for _, c := range chats {
		switch chat := c.(type) {
		case *tg.Channel:
			if ref.kind != kindChat && chat.ID == ref.id {
				return fromChat(chat)
			}
		case *tg.Chat:
			if ref.kind != kindChannel && chat.ID == ref.id {
				return fromChat(chat)
			}
		}
	}
	return resolved{}, false
}

func fromChat(c tg.ChatClass) (resolved, bool) {
	switch chat := c.(type) {
	case *tg.Channel:
		return resolved{
			entity: core.Entity{ID: chat.ID, Username: chat.Username},
			peer:   &tg.InputPeerChannel{ChannelID: chat.ID, AccessHash: chat.AccessHash},
		}, true
	case *tg.Chat:
		return resolved{
			entity: core.Entity{ID: chat.ID},
			peer:   &tg.InputPeerChat{ChatID: chat.ID},
		}, true
	default:
		return resolved{}, false
	}
}

func oldestDate(messages []tg.MessageClass) int {
	oldest := 0
	for _, m := range messages {
		var date int
		switch msg := m.(type) {
		case *tg.Message:
			date = msg.Date
		case *tg.MessageService:
			date = msg.Date
		default:
			continue
		}
		if oldest == 0 || date < oldest {
			oldest = date
		}
	}
	return oldest
}

func historyMessages(res tg.MessagesMessagesClass) []tg.MessageClass {
	switch m := res.(type) {
	case *tg.MessagesMessages:
		return m.Messages
	case *tg.MessagesMessagesSlice:
		return m.Messages
	case *tg.MessagesChannelMessages:
		return m.Messages
	default:
		return nil
	}
}

func convertMessages(msgs []tg.MessageClass) []core.Message {
	out := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		switch msg := m.(type) {
		case *tg.Message:
			out = append(out, core.Message{
				ID:   msg.ID,
				Date: time.Unix(int64(msg.Date), 0).UTC(),
				Text: msg.Message,
			})
		case *tg.MessageService:
			out = append(out, core.Message{
				ID:   msg.ID,
				Date: time.Unix(int64(msg.Date), 0).UTC(),
			})
		case *tg.MessageEmpty:
			out = append(out, core.Message{ID: msg.ID})
		}
	}
	return out
}
