package notifier

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	errs  []error
	sent  []tgbotapi.MessageConfig
	calls int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls++
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{MessageID: 1}, nil
}

func TestTelegramNotifier_SendsHTMLMessage(t *testing.T) {
	sender := &fakeSender{}
	n := newTelegramNotifier(sender, 42)

	if err := n.Notify(context.Background(), "<b>8</b> matches without a draw"); err != nil {
		t.Fatalf("Notify err=%v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.ChatID != 42 {
		t.Errorf("chat id = %d, want 42", msg.ChatID)
	}
	if msg.ParseMode != tgbotapi.ModeHTML {
		t.Errorf("parse mode = %q, want HTML", msg.ParseMode)
	}
	if !msg.DisableWebPagePreview {
		t.Error("web page preview should be disabled")
	}
}

func TestTelegramNotifier_RetriesServerErrors(t *testing.T) {
	sender := &fakeSender{errs: []error{&tgbotapi.Error{Code: 502, Message: "bad gateway"}}}
	n := newTelegramNotifier(sender, 42)
	n.retryCfg.BaseDelay = 0

	if err := n.Notify(context.Background(), "alert"); err != nil {
		t.Fatalf("Notify err=%v", err)
	}
	if sender.calls != 2 {
		t.Errorf("calls = %d, want 2", sender.calls)
	}
}

func TestTelegramNotifier_FailsFastOnClientError(t *testing.T) {
	sender := &fakeSender{errs: []error{
		&tgbotapi.Error{Code: 403, Message: "bot was blocked by the user"},
		&tgbotapi.Error{Code: 403, Message: "bot was blocked by the user"},
	}}
	n := newTelegramNotifier(sender, 42)
	n.retryCfg.BaseDelay = 0

	err := n.Notify(context.Background(), "alert")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if sender.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 403)", sender.calls)
	}
}

func TestClassifyTelegramError(t *testing.T) {
	if classifyTelegramError(nil) != nil {
		t.Error("nil should stay nil")
	}

	plain := errors.New("dial tcp: no route")
	if got := classifyTelegramError(plain); got != plain {
		t.Errorf("plain error should pass through, got %v", got)
	}
}

func TestDryRunNotifierRecordsMessages(t *testing.T) {
	n := NewDryRunNotifier()

	if err := n.Notify(context.Background(), "first"); err != nil {
		t.Fatalf("Notify err=%v", err)
	}
	if err := n.Notify(context.Background(), "second"); err != nil {
		t.Fatalf("Notify err=%v", err)
	}

	got := n.Messages()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("messages = %v", got)
	}
}

func TestNoOpNotifier(t *testing.T) {
	if err := NewNoOpNotifier().Notify(context.Background(), "anything"); err != nil {
		t.Fatalf("Notify err=%v", err)
	}
}
