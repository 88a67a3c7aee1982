package domain

// DeliveryResult is the per-channel outcome of one notification send.
// A failed channel never fails the whole send.
type DeliveryResult struct {
	ChatID string `json:"chat_id"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}
