package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/lumina/internal/database"
	"github.com/yourusername/lumina/internal/errors"
	"github.com/yourusername/lumina/internal/metrics"
	"github.com/yourusername/lumina/internal/output"
	"github.com/yourusername/lumina/internal/user"
)

type sentMessage struct {
	chatID int64
	text   string
}

// fakeSender records outgoing messages
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail error
}

func (f *fakeSender) SendMessage(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("no messages were sent")
	}
	return f.sent[len(f.sent)-1].text
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeInspector returns a fixed membership record
type fakeInspector struct {
	member MemberInfo
	err    error
}

func (f *fakeInspector) BotMember(chatID int64) (MemberInfo, error) {
	return f.member, f.err
}

func newTestDispatcher(t *testing.T, ownerID int64, inspector MemberInspector) (*Dispatcher, *Registry) {
	t.Helper()

	db, err := database.NewTest()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	out, err := output.NewOutput(filepath.Join(t.TempDir(), "error.log"))
	if err != nil {
		t.Fatalf("failed to create output: %v", err)
	}

	registry := NewRegistry()
	return NewDispatcher(
		registry,
		NewSuggester(registry),
		user.NewManager(db, ownerID),
		inspector,
		errors.NewErrorHandler(out),
		output.NewColorLogger(),
		metrics.NewCollector(db.Conn()),
		db,
		"/",
		"LuminaBot",
	), registry
}

func privateMessage(fromID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 100, Type: "private"},
		From: &tgbotapi.User{ID: fromID, UserName: "alice"},
	}
}

func groupMessage(fromID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: -500, Type: "supergroup", Title: "testers"},
		From: &tgbotapi.User{ID: fromID, UserName: "alice"},
	}
}

func TestParseCommand(t *testing.T) {
	d, _ := newTestDispatcher(t, 0, &fakeInspector{})

	tests := []struct {
		name     string
		input    string
		wantCmd  string
		wantArgs []string
	}{
		{name: "bare command", input: "/start", wantCmd: "start", wantArgs: []string{}},
		{name: "case folded", input: "/StArT", wantCmd: "start", wantArgs: []string{}},
		{name: "with args", input: "/remind 10m take out the trash", wantCmd: "remind", wantArgs: []string{"10m", "take", "out", "the", "trash"}},
		{name: "bot mention stripped", input: "/status@LuminaBot", wantCmd: "status", wantArgs: []string{}},
		{name: "bot mention case folded", input: "/status@luminabot now", wantCmd: "status", wantArgs: []string{"now"}},
		{name: "other bot mention ignored", input: "/status@SomeOtherBot", wantCmd: ""},
		{name: "not a command", input: "hello there", wantCmd: ""},
		{name: "prefix only", input: "/", wantCmd: ""},
		{name: "extra whitespace", input: "/echo   a   b", wantCmd: "echo", wantArgs: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := d.ParseCommand(tt.input)
			if cmd != tt.wantCmd {
				t.Fatalf("ParseCommand(%q) command = %q, want %q", tt.input, cmd, tt.wantCmd)
			}
			if tt.wantCmd == "" {
				return
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("ParseCommand(%q) args = %v, want %v", tt.input, args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("ParseCommand(%q) args[%d] = %q, want %q", tt.input, i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestDispatch_PlainTextIsNotHandled(t *testing.T) {
	d, _ := newTestDispatcher(t, 0, &fakeInspector{})
	sender := &fakeSender{}

	if d.Dispatch(sender, privateMessage(42, "just chatting")) {
		t.Error("Dispatch() = true for plain text, want false")
	}
	if sender.count() != 0 {
		t.Errorf("sent %d messages for plain text, want 0", sender.count())
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t, 0, &fakeInspector{})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(42, "/nosuchthing")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got := sender.lastText(t); !strings.Contains(got, "Unknown command") {
		t.Errorf("reply = %q, want an unknown-command notice", got)
	}
}

func TestDispatch_SuggestsNearMiss(t *testing.T) {
	d, registry := newTestDispatcher(t, 0, &fakeInspector{})
	registry.Register(Descriptor{Name: "status", Handler: noopHandler("status")})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(42, "/statu")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got := sender.lastText(t); !strings.Contains(got, "Did you mean /status?") {
		t.Errorf("reply = %q, want a did-you-mean suggestion for /status", got)
	}
}

func TestDispatch_RestrictedDeniesNonOwner(t *testing.T) {
	d, registry := newTestDispatcher(t, 42, &fakeInspector{})

	invoked := false
	registry.Register(Descriptor{
		Name:       "shutdown",
		Restricted: true,
		Handler: func(ctx *Context) error {
			invoked = true
			return nil
		},
	})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(7, "/shutdown")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if invoked {
		t.Error("restricted handler was invoked by a non-owner")
	}
	if got := sender.lastText(t); !strings.Contains(got, "restricted to the bot owner") {
		t.Errorf("reply = %q, want the unauthorized notice", got)
	}
}

func TestDispatch_RestrictedDeniesEveryoneWhenOwnerUnconfigured(t *testing.T) {
	d, registry := newTestDispatcher(t, 0, &fakeInspector{})

	registry.Register(Descriptor{Name: "shutdown", Restricted: true, Handler: noopHandler("shutdown")})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(42, "/shutdown")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got := sender.lastText(t); !strings.Contains(got, "restricted to the bot owner") {
		t.Errorf("reply = %q, want the unauthorized notice (fail closed)", got)
	}
}

func TestDispatch_RestrictedAllowsOwner(t *testing.T) {
	d, registry := newTestDispatcher(t, 42, &fakeInspector{})

	invoked := false
	registry.Register(Descriptor{
		Name:       "shutdown",
		Restricted: true,
		Handler: func(ctx *Context) error {
			invoked = true
			return ctx.Reply("shutting down")
		},
	})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(42, "/shutdown")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if !invoked {
		t.Error("restricted handler was not invoked by the owner")
	}
	if got := sender.lastText(t); got != "shutting down" {
		t.Errorf("reply = %q, want the handler's reply", got)
	}
}

func TestDispatch_GroupRequiresBotAdmin(t *testing.T) {
	// Bot membership status "member" in a supergroup blocks the command
	// before the handler runs
	d, registry := newTestDispatcher(t, 0, &fakeInspector{member: MemberInfo{Status: "member"}})

	invoked := false
	registry.Register(Descriptor{
		Name: "ping",
		Handler: func(ctx *Context) error {
			invoked = true
			return nil
		},
	})
	sender := &fakeSender{}

	if !d.Dispatch(sender, groupMessage(42, "/ping")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if invoked {
		t.Error("handler was invoked although the bot is not an admin")
	}
	if got := sender.lastText(t); !strings.Contains(got, "administrator") {
		t.Errorf("reply = %q, want the not-admin notice", got)
	}
}

func TestDispatch_GroupFullAdminRuns(t *testing.T) {
	d, registry := newTestDispatcher(t, 0, &fakeInspector{member: fullAdmin()})

	registry.Register(Descriptor{
		Name: "ping",
		Handler: func(ctx *Context) error {
			return ctx.Reply("pong")
		},
	})
	sender := &fakeSender{}

	if !d.Dispatch(sender, groupMessage(42, "/ping")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got := sender.lastText(t); got != "pong" {
		t.Errorf("reply = %q, want pong", got)
	}
}

func TestDispatch_PrivateChatSkipsAdminCheck(t *testing.T) {
	// Even a failing inspector must not matter in a private chat
	d, registry := newTestDispatcher(t, 0, &fakeInspector{err: fmt.Errorf("should not be called")})

	registry.Register(Descriptor{
		Name: "ping",
		Handler: func(ctx *Context) error {
			return ctx.Reply("pong")
		},
	})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(42, "/ping")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got := sender.lastText(t); got != "pong" {
		t.Errorf("reply = %q, want pong", got)
	}
}

func TestDispatch_HandlerBotErrorForwardedVerbatim(t *testing.T) {
	d, registry := newTestDispatcher(t, 0, &fakeInspector{})

	registry.Register(Descriptor{
		Name: "echo",
		Handler: func(ctx *Context) error {
			return errors.NewValidationError("Usage: /echo <text>")
		},
	})
	sender := &fakeSender{}

	d.Dispatch(sender, privateMessage(42, "/echo"))
	if got := sender.lastText(t); got != "Usage: /echo <text>" {
		t.Errorf("reply = %q, want the BotError text verbatim", got)
	}
}

func TestDispatch_HandlerInternalErrorIsNotLeaked(t *testing.T) {
	d, registry := newTestDispatcher(t, 0, &fakeInspector{})

	registry.Register(Descriptor{
		Name: "boom",
		Handler: func(ctx *Context) error {
			return fmt.Errorf("pq: connection refused on 10.0.0.3")
		},
	})
	sender := &fakeSender{}

	d.Dispatch(sender, privateMessage(42, "/boom"))
	got := sender.lastText(t)
	if strings.Contains(got, "10.0.0.3") {
		t.Errorf("reply = %q leaks internal error detail", got)
	}
	if !strings.Contains(got, "Something went wrong") {
		t.Errorf("reply = %q, want the generic notice", got)
	}
}

func TestDispatch_HandlerPanicIsRecovered(t *testing.T) {
	d, registry := newTestDispatcher(t, 0, &fakeInspector{})

	registry.Register(Descriptor{
		Name: "crash",
		Handler: func(ctx *Context) error {
			panic("boom")
		},
	})
	sender := &fakeSender{}

	if !d.Dispatch(sender, privateMessage(42, "/crash")) {
		t.Fatal("Dispatch() = false, want true")
	}
	if got := sender.lastText(t); !strings.Contains(got, "Something went wrong") {
		t.Errorf("reply = %q, want the generic notice after a panic", got)
	}
}
