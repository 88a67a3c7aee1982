package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojun-dev/danwatch/internal/logger"
)

func newTestClient(apiBaseURL string, defaults []string) *Client {
	return New(apiBaseURL, "test-token", defaults, 5*time.Second, logger.New("error", false))
}

func TestSendFanOut(t *testing.T) {
	var mu sync.Mutex
	received := make(map[string]string)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)

		var req sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "HTML", req.ParseMode)

		mu.Lock()
		received[req.ChatID] = req.Text
		mu.Unlock()

		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	results, err := c.Send(context.Background(), []string{"111", "222"}, "hello")
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.True(t, r.OK)
		assert.JSONEq(t, `{"ok":true}`, r.Detail)
	}
	assert.Equal(t, map[string]string{"111": "hello", "222": "hello"}, received)
}

func TestSendFallsBackToDefaults(t *testing.T) {
	var mu sync.Mutex
	var chats []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		chats = append(chats, req.ChatID)
		mu.Unlock()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, []string{"default-chat"})
	results, err := c.Send(context.Background(), nil, "hello")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"default-chat"}, chats)
}

func TestSendNoChats(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0", nil)

	_, err := c.Send(context.Background(), nil, "hello")
	assert.ErrorIs(t, err, ErrNoChats)
}

func TestSendPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.ChatID == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	results, err := c.Send(context.Background(), []string{"good", "bad"}, "hello")
	require.NoError(t, err, "per-chat failures must not surface as an error")
	require.Len(t, results, 2)

	byChat := map[string]bool{}
	for _, r := range results {
		byChat[r.ChatID] = r.OK
	}
	assert.True(t, byChat["good"])
	assert.False(t, byChat["bad"])
}
