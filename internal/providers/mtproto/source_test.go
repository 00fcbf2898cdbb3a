package mtproto

import (
	"context"
	"testing"
	"time"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tgsearch/internal/core"
)

type fakeAPI struct {
	resolved    *tg.ContactsResolvedPeer
	resolveErr  error
	dialogs     []tg.MessagesDialogsClass
	history     []tg.MessageClass
	resolveCall int
	dialogCall  int
	historyReqs []*tg.MessagesGetHistoryRequest
}

func (f *fakeAPI) ContactsResolveUsername(ctx context.Context, req *tg.ContactsResolveUsernameRequest) (*tg.ContactsResolvedPeer, error) {
	f.resolveCall++
	return f.resolved, f.resolveErr
}

func (f *fakeAPI) MessagesGetDialogs(ctx context.Context, req *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error) {
	if f.dialogCall >= len(f.dialogs) {
		return &tg.MessagesDialogsNotModified{}, nil
	}
	d := f.dialogs[f.dialogCall]
	f.dialogCall++
	return d, nil
}

// MessagesGetHistory serves f.history (newest first) honoring OffsetID and Limit.
func (f *fakeAPI) MessagesGetHistory(ctx context.Context, req *tg.MessagesGetHistoryRequest) (tg.MessagesMessagesClass, error) {
	f.historyReqs = append(f.historyReqs, req)
	var page []tg.MessageClass
	for _, m := range f.history {
		if req.OffsetID != 0 && m.GetID() >= req.OffsetID {
			continue
		}
		page = append(page, m)
		if len(page) == req.Limit {
			break
		}
	}
	return &tg.MessagesChannelMessages{Messages: page}, nil
}

func textHistory(n int) []tg.MessageClass {
	base := int(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	msgs := make([]tg.MessageClass, 0, n)
	for id := n; id >= 1; id-- {
		msgs = append(msgs, &tg.Message{ID: id, Date: base + id, Message: "text"})
	}
	return msgs
}

func TestSource_ResolveUsername(t *testing.T) {
	api := &fakeAPI{resolved: &tg.ContactsResolvedPeer{
		Chats: []tg.ChatClass{&tg.Channel{ID: 1234567890, AccessHash: 99, Username: "mygroup"}},
	}}
	src := newSource(api)

	e, err := src.ResolveEntity(context.Background(), "@mygroup")
	require.NoError(t, err)
	assert.Equal(t, core.Entity{ID: 1234567890, Username: "mygroup"}, e)

	// cached for the session
	_, err = src.ResolveEntity(context.Background(), "@mygroup")
	require.NoError(t, err)
	assert.Equal(t, 1, api.resolveCall)
}

func TestSource_ResolveUsernameErrors(t *testing.T) {
	t.Run("not occupied", func(t *testing.T) {
		src := newSource(&fakeAPI{resolveErr: tgerr.New(400, "USERNAME_NOT_OCCUPIED")})
		_, err := src.ResolveEntity(context.Background(), "nobody")
		assert.ErrorIs(t, err, core.ErrGroupNotFound)
	})

	t.Run("user", func(t *testing.T) {
		src := newSource(&fakeAPI{resolved: &tg.ContactsResolvedPeer{
			Users: []tg.UserClass{&tg.User{ID: 1}},
		}})
		_, err := src.ResolveEntity(context.Background(), "someone")
		assert.ErrorIs(t, err, core.ErrNotAGroup)
	})
}

func TestSource_ResolveID(t *testing.T) {
	newAPI := func() *fakeAPI {
		return &fakeAPI{dialogs: []tg.MessagesDialogsClass{
			&tg.MessagesDialogs{
				Dialogs: []tg.DialogClass{&tg.Dialog{}, &tg.Dialog{}, &tg.Dialog{}},
				Chats: []tg.ChatClass{
					&tg.Chat{ID: 777},
					&tg.Channel{ID: 1234567890, AccessHash: 7},
					&tg.Channel{ID: 555, Username: "public"},
				},
			},
		}}
	}

	tests := []struct {
		name    string
		group   string
		want    core.Entity
		wantErr error
	}{
		{name: "marked channel id", group: "-1001234567890", want: core.Entity{ID: 1234567890}},
		{name: "bare channel id", group: "1234567890", want: core.Entity{ID: 1234567890}},
		{name: "chat id", group: "-777", want: core.Entity{ID: 777}},
		{name: "bare chat id", group: "777", want: core.Entity{ID: 777}},
		{name: "channel keeps username", group: "555", want: core.Entity{ID: 555, Username: "public"}},
		{name: "chat form does not match channel", group: "-555", wantErr: core.ErrGroupNotFound},
		{name: "missing", group: "999", wantErr: core.ErrGroupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := newSource(newAPI()).ResolveEntity(context.Background(), tt.group)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e)
		})
	}
}

func TestSource_ResolveIDPaginates(t *testing.T) {
	firstPage := make([]tg.DialogClass, dialogsBatch)
	for i := range firstPage {
		firstPage[i] = &tg.Dialog{}
	}
	api := &fakeAPI{dialogs: []tg.MessagesDialogsClass{
		&tg.MessagesDialogsSlice{
			Count:    dialogsBatch + 1,
			Dialogs:  firstPage,
			Messages: []tg.MessageClass{&tg.Message{ID: 1, Date: 1000}},
			Chats:    []tg.ChatClass{&tg.Chat{ID: 1}},
		},
		&tg.MessagesDialogsSlice{
			Count:   dialogsBatch + 1,
			Dialogs: []tg.DialogClass{&tg.Dialog{}},
			Chats:   []tg.ChatClass{&tg.Channel{ID: 42, Username: "late"}},
		},
	}}

	e, err := newSource(api).ResolveEntity(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, core.Entity{ID: 42, Username: "late"}, e)
	assert.Equal(t, 2, api.dialogCall)
}

func TestSource_RecentMessages(t *testing.T) {
	api := &fakeAPI{
		resolved: &tg.ContactsResolvedPeer{Chats: []tg.ChatClass{&tg.Channel{ID: 1, Username: "g"}}},
		history:  textHistory(250),
	}
	src := newSource(api)

	msgs, err := src.RecentMessages(context.Background(), "g", core.ScanLimit)
	require.NoError(t, err)
	require.Len(t, msgs, core.ScanLimit)
	assert.Equal(t, 250, msgs[0].ID)
	assert.Equal(t, 151, msgs[len(msgs)-1].ID)
	require.Len(t, api.historyReqs, 1)
	assert.Equal(t, core.ScanLimit, api.historyReqs[0].Limit)
}

func TestSource_RecentMessagesPaginates(t *testing.T) {
	api := &fakeAPI{
		resolved: &tg.ContactsResolvedPeer{Chats: []tg.ChatClass{&tg.Channel{ID: 1, Username: "g"}}},
		history:  textHistory(250),
	}

	msgs, err := newSource(api).RecentMessages(context.Background(), "g", 230)
	require.NoError(t, err)
	require.Len(t, msgs, 230)
	assert.Equal(t, 21, msgs[len(msgs)-1].ID)
	require.Len(t, api.historyReqs, 3)
	assert.Equal(t, 151, api.historyReqs[1].OffsetID)
	assert.Equal(t, 30, api.historyReqs[2].Limit)
}

func TestSource_RecentMessagesShortHistory(t *testing.T) {
	api := &fakeAPI{
		resolved: &tg.ContactsResolvedPeer{Chats: []tg.ChatClass{&tg.Channel{ID: 1, Username: "g"}}},
		history:  textHistory(3),
	}

	msgs, err := newSource(api).RecentMessages(context.Background(), "g", core.ScanLimit)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.Len(t, api.historyReqs, 1)
}

func TestConvertMessages(t *testing.T) {
	got := convertMessages([]tg.MessageClass{
		&tg.Message{ID: 3, Date: 1700000000, Message: "Hello"},
		&tg.MessageService{ID: 2, Date: 1699999999},
		&tg.MessageEmpty{ID: 1},
	})

	require.Len(t, got, 3)
	assert.Equal(t, core.Message{ID: 3, Date: time.Unix(1700000000, 0).UTC(), Text: "Hello"}, got[0])
	assert.Equal(t, "", got[1].Text)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 1, got[2].ID)
}

func TestHistoryMessages(t *testing.T) {
	msgs := []tg.MessageClass{&tg.Message{ID: 1}}

	assert.Len(t, historyMessages(&tg.MessagesMessages{Messages: msgs}), 1)
	assert.Len(t, historyMessages(&tg.MessagesMessagesSlice{Messages: msgs}), 1)
	assert.Len(t, historyMessages(&tg.MessagesChannelMessages{Messages: msgs}), 1)
	assert.Nil(t, historyMessages(&tg.MessagesMessagesNotModified{}))
}
