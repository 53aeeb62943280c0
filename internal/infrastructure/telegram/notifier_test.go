package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	path string
	chat string
	text string
}

func newBotServer(t *testing.T, status int, body string) (*httptest.Server, func() []sentMessage) {
	t.Helper()
	var (
		mu   sync.Mutex
		sent []sentMessage
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		mu.Lock()
		sent = append(sent, sentMessage{path: r.URL.Path, chat: r.FormValue("chat_id"), text: r.FormValue("text")})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, func() []sentMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]sentMessage(nil), sent...)
	}
}

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	server, sent := newBotServer(t, http.StatusOK,
		`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`)

	n, err := NewNotifier("tok", "42", WithServerURL(server.URL))
	require.NoError(t, err)
	require.NoError(t, n.PublishDigest(context.Background(), "- New Approvals UI"))

	msgs := sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "/bottok/sendMessage", msgs[0].path)
	assert.Equal(t, "42", msgs[0].chat)
	assert.Equal(t, "- New Approvals UI", msgs[0].text)
}

func TestPublishDigestAPIError(t *testing.T) {
	t.Parallel()

	server, _ := newBotServer(t, http.StatusUnauthorized,
		`{"ok":false,"error_code":401,"description":"Unauthorized"}`)

	n, err := NewNotifier("tok", "42", WithServerURL(server.URL))
	require.NoError(t, err)
	assert.Error(t, n.PublishDigest(context.Background(), "x"))
}

func TestNewNotifierMisconfigured(t *testing.T) {
	t.Parallel()

	_, err := NewNotifier("", "42")
	assert.Error(t, err)
	_, err = NewNotifier("tok", "")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("é", 20)
	got := truncate(long, 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}
