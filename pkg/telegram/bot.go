package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Bot is the Telegram Bot API client.
//
// Outbound calls are throttled per chat: Telegram allows roughly one message
// per second to the same chat before returning 429.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
	limiters   *expirable.LRU[int64, *rate.Limiter]
	sendRate   rate.Limit
	sendBurst  int
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiters: expirable.NewLRU[int64, *rate.Limiter](
			1000,          // Max 1000 tracked chats
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		sendRate:  rate.Every(time.Second),
		sendBurst: 3,
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetSendRate overrides the per-chat outbound throttle. Tests pass rate.Inf.
func (b *Bot) SetSendRate(r rate.Limit, burst int) {
	b.sendRate = r
	b.sendBurst = burst
	b.limiters.Purge()
}

// SetWebhook registers the webhook URL with Telegram.
func (b *Bot) SetWebhook(webhookURL string) error {
	return b.call("setWebhook", map[string]string{"url": webhookURL})
}

// DeleteWebhook removes the registered webhook, optionally dropping any
// updates queued while the service was down.
func (b *Bot) DeleteWebhook(dropPendingUpdates bool) error {
	return b.call("deleteWebhook", DeleteWebhookRequest{DropPendingUpdates: dropPendingUpdates})
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMarkup(chatID, text, "", nil)
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "MarkdownV2").
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	return b.SendMessageWithMarkup(chatID, text, parseMode, nil)
}

// SendMessageWithMarkup sends a message with optional parse mode and inline keyboard.
func (b *Bot) SendMessageWithMarkup(chatID int64, text string, parseMode string, markup *InlineKeyboardMarkup) error {
	b.throttle(chatID)
	return b.call("sendMessage", SendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             parseMode,
		DisableWebPagePreview: true,
		ReplyMarkup:           markup,
	})
}

// EditMessageText replaces the text and keyboard of a previously sent message.
func (b *Bot) EditMessageText(chatID, messageID int64, text string, parseMode string, markup *InlineKeyboardMarkup) error {
	b.throttle(chatID)
	return b.call("editMessageText", EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   parseMode,
		ReplyMarkup: markup,
	})
}

// AnswerCallbackQuery acknowledges a button press. Telegram keeps the button
// in a spinner state until the query is answered.
func (b *Bot) AnswerCallbackQuery(callbackQueryID, text string, showAlert bool) error {
	return b.call("answerCallbackQuery", AnswerCallbackQueryRequest{
		CallbackQueryID: callbackQueryID,
		Text:            text,
		ShowAlert:       showAlert,
	})
}

// throttle blocks until the per-chat limiter admits another outbound call.
func (b *Bot) throttle(chatID int64) {
	limiter, ok := b.limiters.Get(chatID)
	if !ok {
		limiter = rate.NewLimiter(b.sendRate, b.sendBurst)
		b.limiters.Add(chatID, limiter)
	}
	_ = limiter.Wait(context.Background())
}

// call posts a JSON payload to a Bot API method and checks the API envelope.
func (b *Bot) call(method string, payload any) error {
	url := fmt.Sprintf("%s/%s", b.apiURL, method)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	resp, err := b.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram %s API error %d: %s", method, resp.StatusCode, string(raw))
		}
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}
	return nil
}
