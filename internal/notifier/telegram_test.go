package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeTelegram struct {
	mu       sync.Mutex
	sent     []map[string]string
	failures int // remaining sendMessage calls that return 500
	replies  chan string
}

func (f *fakeTelegram) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/rejected/sendMessage"):
			w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			f.mu.Lock()
			if f.failures > 0 {
				f.failures--
				f.mu.Unlock()
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			var payload map[string]string
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			f.sent = append(f.sent, payload)
			f.mu.Unlock()
			if f.replies != nil {
				f.replies <- payload["text"]
			}
			w.Write([]byte(`{"ok":true}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if r.URL.Query().Get("offset") == "0" {
				w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /models "}},{"update_id":8}]}`))
				return
			}
			time.Sleep(10 * time.Millisecond)
			w.Write([]byte(`{"ok":true,"result":[]}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestNotifier(t *testing.T, f *fakeTelegram) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	tn.RetryDelay = time.Millisecond
	return tn
}

func TestSend_PostsPayload(t *testing.T) {
	f := &fakeTelegram{}
	tn := newTestNotifier(t, f)

	if err := tn.Send(context.Background(), "<b>hi</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(f.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(f.sent))
	}
	msg := f.sent[0]
	if msg["chat_id"] != "42" || msg["text"] != "<b>hi</b>" || msg["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload: %v", msg)
	}
}

func TestSend_APIError(t *testing.T) {
	f := &fakeTelegram{failures: 1}
	tn := newTestNotifier(t, f)

	err := tn.Send(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status 500 error, got %v", err)
	}
}

func TestSendWithRetry_Recovers(t *testing.T) {
	f := &fakeTelegram{failures: 1}
	tn := newTestNotifier(t, f)

	if err := tn.SendWithRetry(context.Background(), "hi", 1); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(f.sent) != 1 {
		t.Errorf("expected 1 delivered message, got %d", len(f.sent))
	}
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	f := &fakeTelegram{failures: 5}
	tn := newTestNotifier(t, f)

	err := tn.SendWithRetry(context.Background(), "hi", 0)
	if err == nil || !strings.Contains(err.Error(), "all 1 retries exhausted") {
		t.Fatalf("expected exhausted error, got %v", err)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	f := &fakeTelegram{failures: 5}
	tn := newTestNotifier(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tn.SendWithRetry(ctx, "hi", 3); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	f := &fakeTelegram{replies: make(chan string, 1)}
	tn := newTestNotifier(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var got []string
	go func() {
		defer close(done)
		tn.StartPolling(ctx, func(cmd string) string {
			got = append(got, cmd)
			return "reply to " + cmd
		})
	}()

	select {
	case reply := <-f.replies:
		if reply != "reply to /models" {
			t.Errorf("unexpected reply %q", reply)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reply")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}
	if len(got) != 1 || got[0] != "/models" {
		t.Errorf("expected one trimmed command, got %v", got)
	}
}

func TestSend_RejectedEnvelope(t *testing.T) {
	f := &fakeTelegram{}
	tn := newTestNotifier(t, f)
	tn.BotToken = "TOKEN/rejected"

	err := tn.Send(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected rejected error, got %v", err)
	}
}

func TestSendWithRetry_BacksOffBetweenAttempts(t *testing.T) {
	f := &fakeTelegram{failures: 2}
	tn := newTestNotifier(t, f)
	tn.RetryDelay = 20 * time.Millisecond

	start := time.Now()
	if err := tn.SendWithRetry(context.Background(), "hi", 2); err != nil {
		t.Fatalf("expected third attempt to succeed, got %v", err)
	}
	// 20ms then 40ms.
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("expected at least 60ms of backoff, got %v", elapsed)
	}
}
