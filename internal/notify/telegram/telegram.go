// Package telegram delivers notifications through the Bot API
// sendMessage endpoint, fanning out over a set of chat IDs.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/logger"
	"github.com/seojun-dev/danwatch/internal/utils"
)

// ErrNoChats is returned when a send has no chat IDs to deliver to,
// neither explicit nor configured defaults.
var ErrNoChats = errors.New("no telegram chat ids configured")

// Client sends messages through one bot token.
type Client struct {
	httpClient     *http.Client
	sendURL        string
	defaultChatIDs []string
	logger         logger.Logger
}

// New creates a client. apiBaseURL is normally "https://api.telegram.org"
// and only varies in tests.
func New(apiBaseURL, token string, defaultChatIDs []string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		sendURL:        fmt.Sprintf("%s/bot%s/sendMessage", apiBaseURL, token),
		defaultChatIDs: defaultChatIDs,
		logger:         log,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send delivers text to each chat concurrently and reports per-chat
// outcomes. An empty chatIDs slice falls back to the configured
// defaults. Individual delivery failures are recorded in the results,
// never returned as the error.
func (c *Client) Send(ctx context.Context, chatIDs []string, text string) ([]domain.DeliveryResult, error) {
	if len(chatIDs) == 0 {
		chatIDs = c.defaultChatIDs
	}
	if len(chatIDs) == 0 {
		return nil, ErrNoChats
	}

	results := make([]domain.DeliveryResult, len(chatIDs))
	var wg sync.WaitGroup
	for i, chatID := range chatIDs {
		wg.Add(1)
		go func(i int, chatID string) {
			defer wg.Done()
			results[i] = c.sendToOne(ctx, chatID, text)
		}(i, chatID)
	}
	wg.Wait()

	for _, r := range results {
		if !r.OK {
			c.logger.Warn("telegram delivery failed",
				logger.String("chat_id", r.ChatID),
				logger.String("detail", r.Detail))
		}
	}

	return results, nil
}

func (c *Client) sendToOne(ctx context.Context, chatID, text string) domain.DeliveryResult {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return domain.DeliveryResult{ChatID: chatID, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, bytes.NewReader(payload))
	if err != nil {
		return domain.DeliveryResult{ChatID: chatID, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DeliveryResult{ChatID: chatID, Detail: err.Error()}
	}
	defer utils.Close(resp.Body)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return domain.DeliveryResult{
		ChatID: chatID,
		OK:     resp.StatusCode == http.StatusOK,
		Detail: string(body),
	}
}
