package datastream

import (
	"VendorChat/entity"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParts(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec)
	usage := entity.Usage{PromptTokens: 3, CompletionTokens: 4}

	steps := []func() error{
		func() error { return w.StartStep("msg-1") },
		func() error { return w.Text("Hello \"there\"\n") },
		func() error { return w.Text("") },
		func() error { return w.ToolCall("call_1", "checkSchedule", []byte(`{"date":"2026-10-17"}`)) },
		func() error { return w.ToolResult("call_1", entity.ToolOutput{Result: "ok"}) },
		func() error { return w.FinishStep(FinishToolCalls, usage, true) },
		func() error { return w.Finish(FinishStop, usage) },
		func() error { return w.Error("boom") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	want := []string{
		`f:{"messageId":"msg-1"}`,
		`0:"Hello \"there\"\n"`,
		`9:{"toolCallId":"call_1","toolName":"checkSchedule","args":{"date":"2026-10-17"}}`,
		`a:{"toolCallId":"call_1","result":{"result":"ok"}}`,
		`e:{"finishReason":"tool-calls","usage":{"promptTokens":3,"completionTokens":4},"isContinued":true}`,
		`d:{"finishReason":"stop","usage":{"promptTokens":3,"completionTokens":4}}`,
		`3:"boom"`,
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), rec.Body.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %s, got %s", i, want[i], lines[i])
		}
	}
	if !rec.Flushed {
		t.Error("expected recorder to be flushed")
	}
}

func TestMalformedArgs(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec)
	if err := w.ToolCall("c", "askForConfirmation", nil); err != nil {
		t.Fatal(err)
	}
	if err := w.ToolCall("d", "checkSchedule", []byte(`{"date":`)); err != nil {
		t.Fatal(err)
	}
	want := "9:{\"toolCallId\":\"c\",\"toolName\":\"askForConfirmation\",\"args\":{}}\n" +
		"9:{\"toolCallId\":\"d\",\"toolName\":\"checkSchedule\",\"args\":{}}\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("unexpected %q", got)
	}
}

func TestSetHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SetHeaders(rec)
	if rec.Header().Get("X-Vercel-AI-Data-Stream") != "v1" {
		t.Error("missing stream header")
	}
}
