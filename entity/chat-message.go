package entity

import (
	"encoding/json"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

const (
	ToolStateCall   = "call"
	ToolStateResult = "result"
)

// ToolInvocation is a tool call as the chat widget keeps it, with the result
// attached once it is known.
type ToolInvocation struct {
	State      string          `json:"state"`
	ToolCallID string          `json:"toolCallId"`
	ToolName   string          `json:"toolName"`
	Args       json.RawMessage `json:"args,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
}

func (t ToolInvocation) HasResult() bool {
	return t.State == ToolStateResult || len(t.Result) > 0
}

// ChatMessage is one message of the widget conversation.
type ChatMessage struct {
	ID              string           `json:"id,omitempty"`
	Role            string           `json:"role"`
	Content         string           `json:"content"`
	ToolInvocations []ToolInvocation `json:"toolInvocations,omitempty"`
}

type ChatRequest struct {
	Timezone string        `json:"timezone"`
	Messages []ChatMessage `json:"messages"`
}

// ChatTurn is a validated chat request ready for the assistant.
type ChatTurn struct {
	VendorID string
	Vendor   Vendor
	System   string
	Messages []ChatMessage

	booked bool
}

// NewUserText returns the content of the closing message when the customer
// wrote it. A resubmit after a client tool answer ends with the assistant
// message and has no new user text.
func (t *ChatTurn) NewUserText() string {
	if n := len(t.Messages); n > 0 && t.Messages[n-1].Role == RoleUser {
		return t.Messages[n-1].Content
	}
	return ""
}

type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
}

func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
}

// ToolOutput is the result shape the widget renders for server side tools.
type ToolOutput struct {
	Result string `json:"result"`
}

const (
	ConfirmationTool = "askForConfirmation"
	BookingTool      = "confirmBooking"
)

// Confirmed reports whether the latest answered confirmation prompt was
// accepted and no booking has used it yet. Each accepted prompt allows one
// booking.
func (t *ChatTurn) Confirmed() bool {
	if t.booked {
		return false
	}
	for i := len(t.Messages) - 1; i >= 0; i-- {
		inv := t.Messages[i].ToolInvocations
		for j := len(inv) - 1; j >= 0; j-- {
			if !inv[j].HasResult() {
				continue
			}
			if inv[j].ToolName == BookingTool {
				return false
			}
			if inv[j].ToolName != ConfirmationTool {
				continue
			}
			var answer string
			if err := json.Unmarshal(inv[j].Result, &answer); err != nil {
				return false
			}
			return strings.EqualFold(strings.TrimSpace(answer), "yes")
		}
	}
	return false
}

// MarkBooked uses up the accepted confirmation for the rest of the turn.
func (t *ChatTurn) MarkBooked() {
	t.booked = true
}
