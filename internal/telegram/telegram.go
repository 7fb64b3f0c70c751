// Package telegram posts the daily digest to a channel.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ainews/internal/logger"
	"ainews/internal/metrics"
)

// Telegram rejects messages over 4096 chars.
const maxMessageLen = 4000

// SendDigest sends the digest text to the channel with retry logic.
func SendDigest(token, chatID, text string) error {
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := sendMessageOnce(token, chatID, text)
		if err == nil {
			metrics.Global.IncrementTelegramMessagesSent()
			logger.Info("digest sent to Telegram", "attempt", attempt)
			return nil
		}

		logger.Warn("error sending to Telegram", "attempt", attempt, "max", maxRetries, "error", err)

		if attempt < maxRetries {
			// Exponential backoff: 2^attempt seconds
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		}
	}

	return fmt.Errorf("can't send digest after %d tries", maxRetries)
}

func sendMessageOnce(token, chatID, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)

	if len(text) > maxMessageLen {
		text = text[:maxMessageLen]
	}

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}

	return nil
}
