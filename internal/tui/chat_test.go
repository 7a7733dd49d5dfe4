package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

// scriptedFeed is an in-memory ChatFeed whose backlog tests control.
type scriptedFeed struct {
	mu   sync.Mutex
	msgs []dojo.ChatMessage
	next int
}

func newScriptedFeed(backlog int) *scriptedFeed {
	f := &scriptedFeed{}
	for i := 0; i < backlog; i++ {
		f.push("regular", fmt.Sprintf("backlog %03d", i))
	}
	return f
}

func (f *scriptedFeed) push(author, body string) dojo.ChatMessage {
	f.next++
	msg := dojo.ChatMessage{
		ID:     fmt.Sprintf("%08d", f.next),
		Author: author,
		Body:   body,
		SentAt: time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC).Add(time.Duration(f.next) * time.Second),
	}
	f.msgs = append(f.msgs, msg)
	return msg
}

func (f *scriptedFeed) ChatHistory(_ context.Context, limit int) ([]dojo.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.msgs
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]dojo.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (f *scriptedFeed) ChatSince(_ context.Context, afterID string) ([]dojo.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dojo.ChatMessage
	for _, m := range f.msgs {
		if m.ID > afterID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *scriptedFeed) SendChat(_ context.Context, author, body string) (dojo.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.push(author, body), nil
}

func newTestChatModel(t *testing.T, feed ChatFeed) *ChatModel {
	t.Helper()
	m := NewChatModel(context.Background(), feed)
	msg := m.fetchHistory()()
	_, _ = m.Update(msg)
	require.Equal(t, stateList, m.state)
	return m
}

func TestChatModelHistoryLoadPinsToTail(t *testing.T) {
	feed := newScriptedFeed(120)
	m := newTestChatModel(t, feed)

	// Default page size caps the initial load.
	assert.Equal(t, 50, m.list.Len())
	assert.True(t, m.list.AtTail(), "a chat opens at the newest message")
	assert.Contains(t, m.list.View(), "backlog 119")
}

func TestChatModelSendRoundTrip(t *testing.T) {
	feed := newScriptedFeed(10)
	m := newTestChatModel(t, feed)

	for _, r := range "rack em" {
		_, _ = m.Update(keyMsg(string(r)))
	}
	_, send := m.Update(keyMsg("enter"))
	require.NotNil(t, send)
	assert.Empty(t, m.input.Value(), "the composer clears on send")

	_, _ = m.Update(send())
	assert.Nil(t, m.sendErr)
	assert.Contains(t, m.list.View(), "rack em")
	assert.True(t, m.list.AtTail(), "your own message scrolls into view")
}

func TestChatModelEmptyComposerDoesNotSend(t *testing.T) {
	m := newTestChatModel(t, newScriptedFeed(5))
	_, send := m.Update(keyMsg("enter"))
	assert.Nil(t, send)
}

func TestChatModelPollAppendsAndFollowsTail(t *testing.T) {
	feed := newScriptedFeed(30)
	m := newTestChatModel(t, feed)
	before := m.list.Len()

	feed.push("other", "incoming line one")
	feed.push("other", "incoming line two")

	in, ok := m.poll()().(chatIncomingMsg)
	require.True(t, ok)
	_, _ = m.Update(in)

	assert.Equal(t, before+2, m.list.Len())
	assert.True(t, m.list.AtTail())
	assert.Contains(t, m.list.View(), "incoming line two")
}

func TestChatModelPollDeduplicatesOverlap(t *testing.T) {
	feed := newScriptedFeed(10)
	m := newTestChatModel(t, feed)
	before := m.list.Len()

	// A send echo and a poll both carry the same message.
	sent, err := feed.SendChat(context.Background(), "you", "dup?")
	require.NoError(t, err)
	incoming, err := feed.ChatSince(context.Background(), m.lastID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	_, _ = m.Update(chatIncomingMsg{msgs: incoming})
	_, _ = m.Update(chatSentMsg{msg: sent})

	assert.Equal(t, before+1, m.list.Len(), "the overlapping message lands once")
}

func TestChatModelScrollUpAtTopPagesOlderHistory(t *testing.T) {
	feed := newScriptedFeed(200)
	m := newTestChatModel(t, feed)
	require.Equal(t, 50, m.list.Len())

	// Scroll all the way up, then reach past the top.
	m.list.SetOffset(0)
	_, older := m.Update(keyMsg("up"))
	require.NotNil(t, older, "reaching past the top requests older history")
	require.True(t, m.loadingOlder)

	_, _ = m.Update(older())
	assert.Equal(t, 100, m.list.Len(), "one more page of history arrived")
	assert.False(t, m.loadingOlder)
	assert.Equal(t, 0, m.list.Offset(), "the viewport offset is preserved, not reset")
}

func TestChatModelUserAwayFromTailStaysPut(t *testing.T) {
	feed := newScriptedFeed(80)
	m := newTestChatModel(t, feed)

	m.list.SetOffset(5)
	require.False(t, m.list.AtTail())

	feed.push("other", "new while reading backlog")
	incoming, err := feed.ChatSince(context.Background(), m.lastID)
	require.NoError(t, err)
	_, _ = m.Update(chatIncomingMsg{msgs: incoming})

	assert.Equal(t, 5, m.list.Offset(), "appends must not yank the reader to the bottom")
}

func TestChatModelSystemMessageRendering(t *testing.T) {
	m := newTestChatModel(t, newScriptedFeed(3))
	row := m.renderRow(dojo.ChatMessage{Body: "channel opened", System: true, SentAt: time.Now()}, false)
	assert.Contains(t, row, "channel opened")
	assert.NotContains(t, row, "  you ")
}
