package telegram

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBotAPI simulates the bot API endpoint, recording the form parameters of
// every method call.
type fakeBotAPI struct {
	t             *testing.T
	rejectWebhook bool
	calls         map[string]url.Values
}

func (f *fakeBotAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			f.t.Errorf("parse form: %v", err)
		}
		method := path.Base(r.URL.Path)
		f.calls[method] = r.Form

		w.Header().Set("Content-Type", "application/json")
		switch method {
		case "getMe":
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"snatcher","username":"snatcher_bot"}}`)
		case "setWebhook":
			if f.rejectWebhook {
				fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"bad webhook: HTTPS url must be provided"}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":true,"description":"Webhook was set"}`)
		case "sendMessage":
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"chat":{"id":7,"type":"private"}}}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		}
	})
}

func newTestClient(t *testing.T, fake *fakeBotAPI) *Client {
	t.Helper()
	fake.calls = make(map[string]url.Values)
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("create bot API client: %v", err)
	}

	return &Client{
		api:           api,
		webhookSecret: "hook-secret",
		logger:        testLogger(),
	}
}

func TestRegisterWebhook(t *testing.T) {
	fake := &fakeBotAPI{t: t}
	client := newTestClient(t, fake)

	if err := client.RegisterWebhook("https://svc.example.com"); err != nil {
		t.Fatalf("RegisterWebhook() error: %v", err)
	}

	params, ok := fake.calls["setWebhook"]
	if !ok {
		t.Fatal("setWebhook was never called")
	}
	if got := params.Get("url"); got != "https://svc.example.com/telegram/webhook" {
		t.Errorf("webhook url = %q", got)
	}
	if got := params.Get("secret_token"); got != "hook-secret" {
		t.Errorf("secret_token = %q", got)
	}
}

func TestRegisterWebhook_Rejected(t *testing.T) {
	fake := &fakeBotAPI{t: t, rejectWebhook: true}
	client := newTestClient(t, fake)

	err := client.RegisterWebhook("http://not-https.example.com")
	if err == nil {
		t.Fatal("RegisterWebhook() should surface a refused registration")
	}
}

func TestReply(t *testing.T) {
	fake := &fakeBotAPI{t: t}
	client := newTestClient(t, fake)

	if err := client.Reply(7, "bhola hello"); err != nil {
		t.Fatalf("Reply() error: %v", err)
	}

	params, ok := fake.calls["sendMessage"]
	if !ok {
		t.Fatal("sendMessage was never called")
	}
	if got := params.Get("chat_id"); got != "7" {
		t.Errorf("chat_id = %q", got)
	}
	if got := params.Get("text"); got != "bhola hello" {
		t.Errorf("text = %q", got)
	}
}
