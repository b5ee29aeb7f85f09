package chat

import (
	"VendorChat/ai/gpt"
	"VendorChat/entity"
	"context"
)

type Core interface {
	ComposeChat(vendorID string, req *entity.ChatRequest) (*entity.ChatTurn, error)
	StreamChat(ctx context.Context, turn *entity.ChatTurn, w gpt.StreamWriter) error
	GetHistory(ctx context.Context, vendorID string, limit, offset int64) ([]entity.TranscriptEntry, error)
}
