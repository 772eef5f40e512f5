package api

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

type whatsappResponse struct {
	Number string `json:"whatsapp_number"`
}

// WhatsAppNumber fetches the outbound contact number. Best-effort: any
// failure is logged and an empty string returned, so a missing number
// degrades to the contact buttons being hidden rather than an error page.
func (c *Client) WhatsAppNumber(ctx context.Context) string {
	raw, err := c.get(ctx, "/api/whatsapp/")
	if err != nil {
		c.logger.Warn("contact number unavailable", zap.Error(err))
		return ""
	}
	var payload whatsappResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn("contact number malformed", zap.Error(err))
		return ""
	}
	return payload.Number
}
