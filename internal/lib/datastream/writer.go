// Package datastream writes the line based data stream protocol the chat
// widget reads: every part is "<code>:<json>\n".
package datastream

import (
	"VendorChat/entity"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

const (
	codeText       = "0"
	codeError      = "3"
	codeToolCall   = "9"
	codeToolResult = "a"
	codeFinishStep = "e"
	codeFinish     = "d"
	codeStartStep  = "f"
)

const (
	FinishStop          = "stop"
	FinishToolCalls     = "tool-calls"
	FinishLength        = "length"
	FinishContentFilter = "content-filter"
)

// SetHeaders prepares a response for streaming.
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Vercel-AI-Data-Stream", "v1")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
}

type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
}

func NewWriter(w io.Writer) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

type toolCallPart struct {
	ToolCallID string          `json:"toolCallId"`
	ToolName   string          `json:"toolName"`
	Args       json.RawMessage `json:"args"`
}

type toolResultPart struct {
	ToolCallID string      `json:"toolCallId"`
	Result     interface{} `json:"result"`
}

type finishStepPart struct {
	FinishReason string       `json:"finishReason"`
	Usage        entity.Usage `json:"usage"`
	IsContinued  bool         `json:"isContinued"`
}

type finishPart struct {
	FinishReason string       `json:"finishReason"`
	Usage        entity.Usage `json:"usage"`
}

type startStepPart struct {
	MessageID string `json:"messageId"`
}

func (d *Writer) StartStep(messageID string) error {
	return d.part(codeStartStep, startStepPart{MessageID: messageID})
}

func (d *Writer) Text(delta string) error {
	if delta == "" {
		return nil
	}
	return d.part(codeText, delta)
}

func (d *Writer) ToolCall(id, name string, args []byte) error {
	if len(args) == 0 || !json.Valid(args) {
		args = []byte("{}")
	}
	return d.part(codeToolCall, toolCallPart{ToolCallID: id, ToolName: name, Args: args})
}

func (d *Writer) ToolResult(id string, result interface{}) error {
	return d.part(codeToolResult, toolResultPart{ToolCallID: id, Result: result})
}

func (d *Writer) FinishStep(reason string, usage entity.Usage, isContinued bool) error {
	return d.part(codeFinishStep, finishStepPart{FinishReason: reason, Usage: usage, IsContinued: isContinued})
}

func (d *Writer) Finish(reason string, usage entity.Usage) error {
	return d.part(codeFinish, finishPart{FinishReason: reason, Usage: usage})
}

func (d *Writer) Error(message string) error {
	return d.part(codeError, message)
}

func (d *Writer) part(code string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s part: %w", code, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err = fmt.Fprintf(d.w, "%s:%s\n", code, data); err != nil {
		return err
	}
	if d.flusher != nil {
		d.flusher.Flush()
	}
	return nil
}
