package gpt

import (
	"VendorChat/entity"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// toOpenAIMessages converts the widget conversation into chat completion
// messages. Tool invocations without a result are dropped, the others become
// an assistant tool call message followed by one tool message per call.
func toOpenAIMessages(system string, history []entity.ChatMessage) ([]openai.ChatCompletionMessage, error) {
	out := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for i, msg := range history {
		switch msg.Role {
		case entity.RoleUser:
			out = append(out, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: msg.Content,
			})
		case entity.RoleAssistant:
			out = append(out, assistantMessages(msg)...)
		case entity.RoleSystem:
			// the system prompt is always rendered on the server
			continue
		default:
			return nil, fmt.Errorf("message %d: unknown role %q", i, msg.Role)
		}
	}
	return out, nil
}

func assistantMessages(msg entity.ChatMessage) []openai.ChatCompletionMessage {
	var calls []openai.ToolCall
	var results []openai.ChatCompletionMessage

	for _, inv := range msg.ToolInvocations {
		if !inv.HasResult() || inv.ToolCallID == "" {
			continue
		}
		args := string(inv.Args)
		if args == "" {
			args = "{}"
		}
		calls = append(calls, openai.ToolCall{
			ID:   inv.ToolCallID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      inv.ToolName,
				Arguments: args,
			},
		})
		results = append(results, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    resultContent(inv.Result),
			ToolCallID: inv.ToolCallID,
		})
	}

	var out []openai.ChatCompletionMessage
	if len(calls) > 0 {
		out = append(out, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			ToolCalls: calls,
		})
		out = append(out, results...)
	}
	if msg.Content != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: msg.Content,
		})
	}
	return out
}

// resultContent unwraps plain string results, anything else is passed as JSON.
func resultContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
