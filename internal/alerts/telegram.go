package alerts

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"storeroom/internal/model"
)

// Notifier receives low-stock events. Implementations must not block the
// caller for long; delivery is best effort.
type Notifier interface {
	LowStock(item model.Item)
}

// Telegram posts low-stock warnings to a chat via the Bot API. The single
// sendMessage call is a plain form POST, so no bot framework is used.
type Telegram struct {
	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegram returns a notifier, or nil when token or chat id is empty
// (alerts disabled). Services treat a nil Notifier as a no-op.
func NewTelegram(botToken, chatID string) *Telegram {
	if botToken == "" || chatID == "" {
		return nil
	}
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) LowStock(item model.Item) {
	if t == nil {
		return
	}
	text := fmt.Sprintf("⚠️ Low stock: %s has %.3f %s left (purchased %.3f %s in total)",
		item.Name, item.Quantity, item.Unit, item.TotalPurchased, item.Unit)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	resp, err := t.client.PostForm(endpoint, url.Values{
		"chat_id": {t.chatID},
		"text":    {text},
	})
	if err != nil {
		log.Printf("alerts: telegram send failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("alerts: telegram responded %s", resp.Status)
	}
}
