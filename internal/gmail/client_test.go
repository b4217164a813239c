package gmail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
)

// fakeAPI serves messages from memory in pages.
type fakeAPI struct {
	mu       sync.Mutex
	messages map[string]*gmail.Message
	order    []string
	pageSize int
	getErr   map[string]error
	listErr  error
	queries  []string
}

func newFakeAPI(msgs ...*gmail.Message) *fakeAPI {
	f := &fakeAPI{messages: map[string]*gmail.Message{}, pageSize: 2, getErr: map[string]error{}}
	for _, m := range msgs {
		f.messages[m.Id] = m
		f.order = append(f.order, m.Id)
	}
	return f
}

func (f *fakeAPI) List(_ context.Context, q, pageToken string, pageSize int64) (*gmail.ListMessagesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}

	start := 0
	if pageToken != "" {
		_, _ = fmt.Sscanf(pageToken, "page-%d", &start)
	}
	end := min(start+min(f.pageSize, int(pageSize)), len(f.order))

	res := &gmail.ListMessagesResponse{}
	for _, id := range f.order[start:end] {
		res.Messages = append(res.Messages, &gmail.Message{Id: id})
	}
	if end < len(f.order) {
		res.NextPageToken = fmt.Sprintf("page-%d", end)
	}
	return res, nil
}

func (f *fakeAPI) Get(_ context.Context, id string) (*gmail.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[id]; err != nil {
		return nil, err
	}
	m, ok := f.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s not found", id)
	}
	return m, nil
}

func TestClient_ListMessageIDs(t *testing.T) {
	api := newFakeAPI(
		&gmail.Message{Id: "a"}, &gmail.Message{Id: "b"}, &gmail.Message{Id: "c"},
		&gmail.Message{Id: "d"}, &gmail.Message{Id: "e"},
	)
	c := &Client{api: api, account: "work"}

	ids, err := c.ListMessageIDs(context.Background(), "in:inbox", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
	assert.Equal(t, "in:inbox", api.queries[0])
	assert.Len(t, api.queries, 3)

	ids, err = c.ListMessageIDs(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "work", c.Account())
}

func TestClient_ListMessageIDs_Error(t *testing.T) {
	api := newFakeAPI()
	api.listErr = errors.New("quota exceeded")
	c := &Client{api: api}

	_, err := c.ListMessageIDs(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClient_FetchMessages(t *testing.T) {
	var msgs []*gmail.Message
	for i := range 7 {
		msgs = append(msgs, &gmail.Message{Id: fmt.Sprintf("m%d", i), Snippet: fmt.Sprintf("snippet %d", i)})
	}
	c := &Client{api: newFakeAPI(msgs...)}

	got, err := c.FetchMessages(context.Background(), "", 100, 3)
	require.NoError(t, err)
	require.Len(t, got, 7)
	for i, m := range got {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.Id, "list order is kept")
	}
}

func TestClient_FetchMessages_Error(t *testing.T) {
	api := newFakeAPI(&gmail.Message{Id: "ok"}, &gmail.Message{Id: "bad"})
	api.getErr["bad"] = errors.New("backend error")
	c := &Client{api: api}

	_, err := c.FetchMessages(context.Background(), "", 10, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get message bad")
}

func TestMessageFields_NestedPartDepth(t *testing.T) {
	mask := string(messageFields)

	assert.Equal(t, maxPartDepth, strings.Count(mask, "parts("))
	assert.Equal(t, strings.Count(mask, "("), strings.Count(mask, ")"), "balanced selector")
	assert.NotContains(t, mask, "data", "bodies are never requested")
	assert.Empty(t, nestedPartsMask(0))
}

func TestConvertMessage_DeeplyNestedAttachment(t *testing.T) {
	// forwarded mail: mixed -> mixed -> related -> alternative -> attachment
	leaf := &gmail.MessagePart{Filename: "report.pdf", MimeType: "application/pdf", Body: &gmail.MessagePartBody{Size: 42_000}}
	part := leaf
	for _, mime := range []string{"multipart/alternative", "multipart/related", "multipart/mixed", "message/rfc822", "multipart/mixed"} {
		part = &gmail.MessagePart{MimeType: mime, Parts: []*gmail.MessagePart{part}}
	}
	msg := &gmail.Message{Id: "fwd", Payload: &gmail.MessagePart{MimeType: "multipart/mixed", Parts: []*gmail.MessagePart{part}}}

	info := ConvertMessage(msg)
	assert.True(t, info.Message.HasAttachments)
	assert.Equal(t, 1, info.Message.AttachmentCount)
	require.Len(t, info.Message.Attachments, 1)
	assert.Equal(t, "report.pdf", info.Message.Attachments[0].Filename)
}
