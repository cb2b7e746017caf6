package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStandInTransport_Generate(t *testing.T) {
	tr := NewStandInTransport()

	got, err := tr.GenerateContent(context.Background(), GenerateRequest{Instruction: "anything"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "{}" {
		t.Errorf("Expected empty object, got %q", got)
	}

	tr.Response = `{"tone":"Calm"}`
	got, _ = tr.GenerateContent(context.Background(), GenerateRequest{})
	if got != `{"tone":"Calm"}` {
		t.Errorf("Expected configured response, got %q", got)
	}
}

func TestStandInTransport_ResultsFallBackToDefaults(t *testing.T) {
	svc := NewWellnessService(NewStandInTransport(), "m", 0)

	plan := svc.GenerateProductivityPlan(context.Background(), "rest")
	if plan.Tasks == nil || len(plan.Tasks) != 0 {
		t.Errorf("Expected empty task list, got %+v", plan.Tasks)
	}

	live := svc.DetectRealtimeEmotion(context.Background(), testImage)
	if live.Emotion != "Neutral" {
		t.Errorf("Expected Neutral, got %q", live.Emotion)
	}
}

func TestStandInTransport_ChatEcho(t *testing.T) {
	chat := NewChatAdapter(NewStandInTransport(), "m")

	reply, err := chat.Send(context.Background(), "I feel tired")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(reply, `"I feel tired"`) {
		t.Errorf("Expected echo of the message, got %q", reply)
	}
	if !strings.Contains(reply, "No API key configured") {
		t.Errorf("Expected dev notice, got %q", reply)
	}
}

func TestStandInTransport_ChatEchoTruncates(t *testing.T) {
	long := strings.Repeat("é", 250)

	got := truncateRunes(long, standInEchoLimit)
	if utf8.RuneCountInString(got) != 200 {
		t.Errorf("Expected 200 runes, got %d", utf8.RuneCountInString(got))
	}
	if truncateRunes("short", standInEchoLimit) != "short" {
		t.Error("Expected short text untouched")
	}
}

func TestStandInTransport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewStandInTransport().GenerateContent(ctx, GenerateRequest{}); err == nil {
		t.Error("Expected error on cancelled context")
	}
}
