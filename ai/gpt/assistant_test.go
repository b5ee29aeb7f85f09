package gpt

import (
	"VendorChat/entity"
	"VendorChat/internal/config"
	"VendorChat/internal/lib/datastream"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// fakeLLM replays one scripted SSE response per completion request.
type fakeLLM struct {
	mu       sync.Mutex
	replies  [][]string
	requests []openai.ChatCompletionRequest
}

func (f *fakeLLM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/chat/completions" {
		http.NotFound(w, r)
		return
	}
	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	n := len(f.requests)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if n >= len(f.replies) {
		http.Error(w, `{"error":{"message":"no more replies","type":"server_error"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	for _, chunk := range f.replies[n] {
		_, _ = fmt.Fprintf(w, "data: %s\n\n", chunk)
	}
	_, _ = io.WriteString(w, "data: [DONE]\n\n")
}

func textChunk(s string) string {
	data, _ := json.Marshal(s)
	return fmt.Sprintf(`{"id":"c","object":"chat.completion.chunk","model":"m","choices":[{"index":0,"delta":{"content":%s}}]}`, data)
}

func toolChunk(idx int, id, name, args string) string {
	data, _ := json.Marshal(args)
	return fmt.Sprintf(`{"id":"c","object":"chat.completion.chunk","model":"m","choices":[{"index":0,"delta":{"tool_calls":[{"index":%d,"id":%q,"type":"function","function":{"name":%q,"arguments":%s}}]}}]}`,
		idx, id, name, data)
}

func finishChunk(reason string) string {
	return fmt.Sprintf(`{"id":"c","object":"chat.completion.chunk","model":"m","choices":[{"index":0,"delta":{},"finish_reason":%q}]}`, reason)
}

func usageChunk(prompt, completion int) string {
	return fmt.Sprintf(`{"id":"c","object":"chat.completion.chunk","model":"m","choices":[],"usage":{"prompt_tokens":%d,"completion_tokens":%d,"total_tokens":%d}}`,
		prompt, completion, prompt+completion)
}

type recorder struct {
	parts []string
}

func (r *recorder) StartStep(string) error {
	r.parts = append(r.parts, "start")
	return nil
}
func (r *recorder) Text(delta string) error {
	r.parts = append(r.parts, "text:"+delta)
	return nil
}
func (r *recorder) ToolCall(_, name string, args []byte) error {
	r.parts = append(r.parts, "call:"+name+":"+string(args))
	return nil
}
func (r *recorder) ToolResult(_ string, result interface{}) error {
	out, _ := result.(entity.ToolOutput)
	r.parts = append(r.parts, "result:"+out.Result)
	return nil
}
func (r *recorder) FinishStep(reason string, _ entity.Usage, isContinued bool) error {
	r.parts = append(r.parts, fmt.Sprintf("step:%s:%t", reason, isContinued))
	return nil
}
func (r *recorder) Finish(reason string, usage entity.Usage) error {
	r.parts = append(r.parts, fmt.Sprintf("finish:%s:%d:%d", reason, usage.PromptTokens, usage.CompletionTokens))
	return nil
}
func (r *recorder) Error(message string) error {
	r.parts = append(r.parts, "error:"+message)
	return nil
}

type fakeTools struct {
	scheduleCalls []string
	bookings      []entity.BookingRequest
}

func (f *fakeTools) CheckSchedule(_ context.Context, vendorID, date string) (string, error) {
	f.scheduleCalls = append(f.scheduleCalls, vendorID+"/"+date)
	return "Available time blocks on " + date + ": 14:00 to 16:00", nil
}

func (f *fakeTools) ConfirmBooking(_ context.Context, turn *entity.ChatTurn, req entity.BookingRequest) (string, error) {
	if !turn.Confirmed() {
		return "", fmt.Errorf("not confirmed")
	}
	f.bookings = append(f.bookings, req)
	return "Booked", nil
}

func newTestAssistant(t *testing.T, llm *fakeLLM, maxSteps int) (*Assistant, *fakeTools) {
	t.Helper()
	srv := httptest.NewServer(llm)
	t.Cleanup(srv.Close)

	conf := &config.Config{}
	conf.OpenAI.ApiKey = "test-key"
	conf.OpenAI.BaseURL = srv.URL + "/v1"
	conf.OpenAI.Model = "test-model"
	conf.OpenAI.MaxSteps = maxSteps

	a := NewAssistant(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	tools := &fakeTools{}
	a.SetToolHandler(tools)
	return a, tools
}

func testTurn(messages ...entity.ChatMessage) *entity.ChatTurn {
	return &entity.ChatTurn{
		VendorID: "id_a",
		System:   "You are a helpful assistant.",
		Messages: messages,
	}
}

func equalParts(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("parts mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestConverseText(t *testing.T) {
	llm := &fakeLLM{replies: [][]string{
		{textChunk("Hello"), textChunk(" there"), finishChunk("stop"), usageChunk(7, 2)},
	}}
	a, _ := newTestAssistant(t, llm, 5)
	rec := &recorder{}

	text, err := a.Converse(context.Background(), testTurn(entity.ChatMessage{Role: entity.RoleUser, Content: "hi"}), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello there" {
		t.Errorf("expected text %q, got %q", "Hello there", text)
	}
	equalParts(t, rec.parts, []string{"start", "text:Hello", "text: there", "step:stop:false", "finish:stop:7:2"})

	if len(llm.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(llm.requests))
	}
	req := llm.requests[0]
	if req.Model != "test-model" || !req.Stream || len(req.Tools) != 3 {
		t.Errorf("unexpected request: model=%s stream=%t tools=%d", req.Model, req.Stream, len(req.Tools))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected system message first, got %s", req.Messages[0].Role)
	}
}

func TestConverseServerTool(t *testing.T) {
	llm := &fakeLLM{replies: [][]string{
		{
			toolChunk(0, "call_1", "checkSchedule", `{"date":`),
			toolChunk(0, "", "", `"2026-10-20"}`),
			finishChunk("tool_calls"),
			usageChunk(10, 5),
		},
		{textChunk("You can book 14:00."), finishChunk("stop"), usageChunk(20, 4)},
	}}
	a, tools := newTestAssistant(t, llm, 5)
	rec := &recorder{}

	text, err := a.Converse(context.Background(), testTurn(entity.ChatMessage{Role: entity.RoleUser, Content: "free on the 20th?"}), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "You can book 14:00." {
		t.Errorf("unexpected text %q", text)
	}
	if len(tools.scheduleCalls) != 1 || tools.scheduleCalls[0] != "id_a/2026-10-20" {
		t.Errorf("unexpected schedule calls %v", tools.scheduleCalls)
	}
	equalParts(t, rec.parts, []string{
		"start",
		`call:checkSchedule:{"date":"2026-10-20"}`,
		"result:Available time blocks on 2026-10-20: 14:00 to 16:00",
		"step:tool-calls:true",
		"start",
		"text:You can book 14:00.",
		"step:stop:false",
		"finish:stop:30:9",
	})

	if len(llm.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(llm.requests))
	}
	second := llm.requests[1].Messages
	last := second[len(second)-1]
	if last.Role != openai.ChatMessageRoleTool || last.ToolCallID != "call_1" {
		t.Fatalf("expected tool message for call_1, got %+v", last)
	}
	if last.Content != `{"result":"Available time blocks on 2026-10-20: 14:00 to 16:00"}` {
		t.Errorf("unexpected tool content %s", last.Content)
	}
	call := second[len(second)-2]
	if len(call.ToolCalls) != 1 || call.ToolCalls[0].Function.Arguments != `{"date":"2026-10-20"}` {
		t.Errorf("unexpected assistant tool call %+v", call)
	}
}

func TestConverseWaitsForConfirmation(t *testing.T) {
	llm := &fakeLLM{replies: [][]string{
		{
			textChunk("Let me confirm."),
			toolChunk(0, "call_c", "askForConfirmation", `{"message":"Book TV mounting at 14:00?"}`),
			finishChunk("tool_calls"),
		},
	}}
	a, tools := newTestAssistant(t, llm, 5)
	rec := &recorder{}

	_, err := a.Converse(context.Background(), testTurn(entity.ChatMessage{Role: entity.RoleUser, Content: "book it"}), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalParts(t, rec.parts, []string{
		"start",
		"text:Let me confirm.",
		`call:askForConfirmation:{"message":"Book TV mounting at 14:00?"}`,
		"step:tool-calls:false",
		"finish:tool-calls:0:0",
	})
	if len(llm.requests) != 1 {
		t.Errorf("expected the loop to stop after 1 request, got %d", len(llm.requests))
	}
	if len(tools.scheduleCalls) != 0 || len(tools.bookings) != 0 {
		t.Error("no server tool should run")
	}
}

func TestConverseConfirmedBooking(t *testing.T) {
	llm := &fakeLLM{replies: [][]string{
		{
			toolChunk(0, "call_b", "confirmBooking", `{"service":"TV mounting","date":"2026-10-20","start":"14:00","end":"15:30"}`),
			finishChunk("tool_calls"),
		},
		{textChunk("Done!"), finishChunk("stop")},
	}}
	a, tools := newTestAssistant(t, llm, 5)
	rec := &recorder{}

	turn := testTurn(
		entity.ChatMessage{Role: entity.RoleUser, Content: "book TV mounting on the 20th at 14:00"},
		entity.ChatMessage{
			Role: entity.RoleAssistant,
			ToolInvocations: []entity.ToolInvocation{{
				State:      entity.ToolStateResult,
				ToolCallID: "call_c",
				ToolName:   "askForConfirmation",
				Args:       json.RawMessage(`{"message":"Confirm?"}`),
				Result:     json.RawMessage(`"Yes"`),
			}},
		},
	)
	if _, err := a.Converse(context.Background(), turn, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tools.bookings) != 1 || tools.bookings[0].Start != "14:00" {
		t.Fatalf("expected one booking, got %+v", tools.bookings)
	}

	first := llm.requests[0].Messages
	if len(first) != 4 {
		t.Fatalf("expected system, user, tool call and tool result, got %d messages", len(first))
	}
	if first[3].Role != openai.ChatMessageRoleTool || first[3].Content != "Yes" {
		t.Errorf("unexpected confirmation message %+v", first[3])
	}
}

func TestConverseStepLimit(t *testing.T) {
	llm := &fakeLLM{replies: [][]string{
		{toolChunk(0, "call_1", "checkSchedule", `{"date":"2026-10-20"}`), finishChunk("tool_calls")},
		{textChunk("never sent")},
	}}
	a, _ := newTestAssistant(t, llm, 1)
	rec := &recorder{}

	if _, err := a.Converse(context.Background(), testTurn(entity.ChatMessage{Role: entity.RoleUser, Content: "x"}), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(llm.requests) != 1 {
		t.Errorf("expected 1 request, got %d", len(llm.requests))
	}
	if rec.parts[len(rec.parts)-1] != "finish:tool-calls:0:0" {
		t.Errorf("unexpected final part %s", rec.parts[len(rec.parts)-1])
	}
}

func TestConverseUpstreamError(t *testing.T) {
	llm := &fakeLLM{}
	a, _ := newTestAssistant(t, llm, 5)
	rec := &recorder{}

	if _, err := a.Converse(context.Background(), testTurn(entity.ChatMessage{Role: entity.RoleUser, Content: "x"}), rec); err == nil {
		t.Fatal("expected an error")
	}
	if rec.parts[len(rec.parts)-1] != "error:The assistant is not available right now" {
		t.Errorf("unexpected parts %q", rec.parts)
	}
}

func TestHandleCommandBadArgs(t *testing.T) {
	a, tools := newTestAssistant(t, &fakeLLM{}, 5)
	got := a.handleCommand(context.Background(), testTurn(), "checkSchedule", "{")
	if !strings.HasPrefix(got, "Invalid arguments") {
		t.Errorf("unexpected result %q", got)
	}
	if got = a.handleCommand(context.Background(), testTurn(), "nope", "{}"); got != `Unknown tool "nope"` {
		t.Errorf("unexpected result %q", got)
	}
	if len(tools.scheduleCalls) != 0 {
		t.Error("tool must not run on bad arguments")
	}
}

func TestFinishReason(t *testing.T) {
	tests := []struct {
		in   openai.FinishReason
		want string
	}{
		{openai.FinishReasonStop, datastream.FinishStop},
		{openai.FinishReasonLength, datastream.FinishLength},
		{openai.FinishReasonToolCalls, datastream.FinishToolCalls},
		{openai.FinishReasonFunctionCall, datastream.FinishToolCalls},
		{openai.FinishReasonContentFilter, datastream.FinishContentFilter},
		{"", datastream.FinishStop},
	}
	for _, tt := range tests {
		if got := finishReason(tt.in); got != tt.want {
			t.Errorf("finishReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
