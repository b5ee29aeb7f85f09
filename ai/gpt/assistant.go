package gpt

import (
	"VendorChat/entity"
	"VendorChat/internal/config"
	"VendorChat/internal/lib/datastream"
	"VendorChat/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

// ToolHandler executes the server side tools.
type ToolHandler interface {
	CheckSchedule(ctx context.Context, vendorID, date string) (string, error)
	ConfirmBooking(ctx context.Context, turn *entity.ChatTurn, req entity.BookingRequest) (string, error)
}

// StreamWriter receives the parts of a streamed answer.
type StreamWriter interface {
	StartStep(messageID string) error
	Text(delta string) error
	ToolCall(id, name string, args []byte) error
	ToolResult(id string, result interface{}) error
	FinishStep(reason string, usage entity.Usage, isContinued bool) error
	Finish(reason string, usage entity.Usage) error
	Error(message string) error
}

type Assistant struct {
	client   *openai.Client
	model    string
	maxSteps int
	tools    ToolHandler
	log      *slog.Logger
}

func NewAssistant(conf *config.Config, logger *slog.Logger) *Assistant {
	clientConf := openai.DefaultConfig(conf.OpenAI.ApiKey)
	if conf.OpenAI.BaseURL != "" {
		clientConf.BaseURL = conf.OpenAI.BaseURL
	}
	maxSteps := conf.OpenAI.MaxSteps
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Assistant{
		client:   openai.NewClientWithConfig(clientConf),
		model:    conf.OpenAI.Model,
		maxSteps: maxSteps,
		log:      logger.With(sl.Module("assistant")),
	}
}

func (a *Assistant) SetToolHandler(handler ToolHandler) {
	a.tools = handler
}

// stepResult is one completion request worth of streamed output.
type stepResult struct {
	text      string
	toolCalls []openai.ToolCall
	finish    openai.FinishReason
	usage     entity.Usage
}

// Converse runs the tool loop for one chat turn and streams every part to w.
// It returns the assistant text produced during the turn.
func (a *Assistant) Converse(ctx context.Context, turn *entity.ChatTurn, w StreamWriter) (string, error) {
	log := a.log.With(slog.String("vendor", turn.VendorID))

	messages, err := toOpenAIMessages(turn.System, turn.Messages)
	if err != nil {
		_ = w.Error("Could not read the conversation")
		return "", err
	}

	messageID := "msg-" + uuid.NewString()
	var total entity.Usage
	var text strings.Builder
	reason := datastream.FinishStop

	for step := 0; step < a.maxSteps; step++ {
		if err = w.StartStep(messageID); err != nil {
			return text.String(), err
		}

		res, err := a.streamStep(ctx, messages, w)
		if err != nil {
			log.With(slog.Int("step", step)).Error("streaming completion", sl.Err(err))
			_ = w.Error("The assistant is not available right now")
			return text.String(), err
		}
		total.Add(res.usage)
		text.WriteString(res.text)

		if len(res.toolCalls) == 0 {
			reason = finishReason(res.finish)
			if err = w.FinishStep(reason, res.usage, false); err != nil {
				return text.String(), err
			}
			break
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   res.text,
			ToolCalls: res.toolCalls,
		})

		waitClient := false
		for _, call := range res.toolCalls {
			if err = w.ToolCall(call.ID, call.Function.Name, []byte(call.Function.Arguments)); err != nil {
				return text.String(), err
			}
			if call.Function.Name == entity.ConfirmationTool {
				waitClient = true
				continue
			}

			result := a.handleCommand(ctx, turn, call.Function.Name, call.Function.Arguments)
			if err = w.ToolResult(call.ID, entity.ToolOutput{Result: result}); err != nil {
				return text.String(), err
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    toolContent(result),
				ToolCallID: call.ID,
			})
		}

		reason = datastream.FinishToolCalls
		isContinued := !waitClient && step+1 < a.maxSteps
		if err = w.FinishStep(reason, res.usage, isContinued); err != nil {
			return text.String(), err
		}
		if !isContinued {
			break
		}
	}

	log.With(
		slog.String("finish", reason),
		slog.Int("prompt_tokens", total.PromptTokens),
		slog.Int("completion_tokens", total.CompletionTokens),
	).Debug("turn completed")

	return text.String(), w.Finish(reason, total)
}

func (a *Assistant) streamStep(ctx context.Context, messages []openai.ChatCompletionMessage, w StreamWriter) (*stepResult, error) {
	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:         a.model,
		Messages:      messages,
		Tools:         toolDefinitions(),
		StreamOptions: &openai.StreamOptions{IncludeUsage: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create stream: %w", err)
	}
	defer stream.Close()

	res := &stepResult{}
	var text strings.Builder
	calls := newCallAccumulator()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("receive: %w", err)
		}

		if chunk.Usage != nil {
			res.usage = entity.Usage{
				PromptTokens:     chunk.Usage.PromptTokens,
				CompletionTokens: chunk.Usage.CompletionTokens,
			}
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				text.WriteString(choice.Delta.Content)
				if err = w.Text(choice.Delta.Content); err != nil {
					return nil, err
				}
			}
			for _, delta := range choice.Delta.ToolCalls {
				calls.add(delta)
			}
			if choice.FinishReason != "" {
				res.finish = choice.FinishReason
			}
		}
	}

	res.text = text.String()
	res.toolCalls = calls.list()
	return res, nil
}

func finishReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonLength:
		return datastream.FinishLength
	case openai.FinishReasonToolCalls, openai.FinishReasonFunctionCall:
		return datastream.FinishToolCalls
	case openai.FinishReasonContentFilter:
		return datastream.FinishContentFilter
	default:
		return datastream.FinishStop
	}
}

// callAccumulator joins streamed tool call fragments by their index.
type callAccumulator struct {
	order []int
	calls map[int]*openai.ToolCall
}

func newCallAccumulator() *callAccumulator {
	return &callAccumulator{calls: make(map[int]*openai.ToolCall)}
}

func (c *callAccumulator) add(delta openai.ToolCall) {
	idx := len(c.order)
	if delta.Index != nil {
		idx = *delta.Index
	} else if delta.ID == "" && len(c.order) > 0 {
		idx = c.order[len(c.order)-1]
	}

	call, ok := c.calls[idx]
	if !ok {
		call = &openai.ToolCall{Type: openai.ToolTypeFunction}
		c.calls[idx] = call
		c.order = append(c.order, idx)
	}
	if delta.ID != "" {
		call.ID = delta.ID
	}
	if delta.Function.Name != "" {
		call.Function.Name += delta.Function.Name
	}
	call.Function.Arguments += delta.Function.Arguments
}

func (c *callAccumulator) list() []openai.ToolCall {
	if len(c.order) == 0 {
		return nil
	}
	out := make([]openai.ToolCall, 0, len(c.order))
	for _, idx := range c.order {
		call := *c.calls[idx]
		if call.ID == "" {
			call.ID = "call_" + uuid.NewString()
		}
		if strings.TrimSpace(call.Function.Arguments) == "" {
			call.Function.Arguments = "{}"
		}
		out = append(out, call)
	}
	return out
}
