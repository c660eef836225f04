package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/policy"
	"github.com/aldertree/beacon/internal/session"
	"github.com/aldertree/beacon/internal/stats"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(&StatsCommand{})
	r.Register(&ResetStatsCommand{})
	r.Register(&HelpCommand{})
	r.Register(&VersionCommand{})
	return r
}

func TestRegistry_Lookup(t *testing.T) {
	r := newTestRegistry()

	cmd, args, ok := r.Lookup("/stats")
	if !ok || cmd.Name() != "stats" || args != "" {
		t.Fatalf("lookup /stats: ok=%v cmd=%v args=%q", ok, cmd, args)
	}

	cmd, args, ok = r.Lookup("  /HELP  something extra  ")
	if !ok || cmd.Name() != "help" {
		t.Fatalf("expected case-insensitive lookup, ok=%v cmd=%v", ok, cmd)
	}
	if args != "something extra" {
		t.Fatalf("expected trimmed args, got %q", args)
	}

	if _, _, ok := r.Lookup("plain text"); ok {
		t.Fatal("expected no match for non-slash input")
	}
	if _, _, ok := r.Lookup("/unknown"); ok {
		t.Fatal("expected no match for unregistered command")
	}
	if _, _, ok := r.Lookup("/"); ok {
		t.Fatal("expected no match for bare slash")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	cmds := newTestRegistry().List()
	if len(cmds) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(cmds))
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name() >= cmds[i].Name() {
			t.Fatalf("list not sorted: %q before %q", cmds[i-1].Name(), cmds[i].Name())
		}
	}
}

func TestRegistry_RegisterPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	r := NewRegistry()
	r.Register(&StatsCommand{})
	r.Register(&StatsCommand{})
}

func TestStatsCommand_RendersSnapshot(t *testing.T) {
	sess := session.New()
	sess.Stats().Record(stats.Observation{
		Mode: engine.ModeAnswer, Decision: policy.Allow,
		InputRunes: 10, OutputRunes: 50, EstimatedTokens: 12,
		Elapsed: 5 * time.Millisecond,
	})

	res := (&StatsCommand{}).Execute(context.Background(), "", Env{Session: sess})

	for _, want := range []string{"Turns: 1", "Estimated tokens: 12", "**Modes:**", "answer: 1", "**Decisions:**", "allow: 1"} {
		if !strings.Contains(res.Content, want) {
			t.Fatalf("stats output missing %q:\n%s", want, res.Content)
		}
	}
}

func TestStatsCommand_EmptySession(t *testing.T) {
	res := (&StatsCommand{}).Execute(context.Background(), "", Env{Session: session.New()})
	if !strings.Contains(res.Content, "Nothing recorded yet.") {
		t.Fatalf("expected empty-session message, got:\n%s", res.Content)
	}
}

func TestResetStatsCommand_ZeroesCounters(t *testing.T) {
	sess := session.New()
	sess.Stats().Record(stats.Observation{Mode: engine.ModeAnswer, Decision: policy.Allow})

	res := (&ResetStatsCommand{}).Execute(context.Background(), "", Env{Session: sess})
	if res.Content != "Session stats reset." {
		t.Fatalf("unexpected reset output: %q", res.Content)
	}
	if sess.Stats().Snapshot().Turns != 0 {
		t.Fatal("expected counters to be zeroed")
	}
}

func TestHelpCommand_ListsEverything(t *testing.T) {
	r := newTestRegistry()
	env := Env{ListCommands: func() []Command { return r.List() }}

	res := (&HelpCommand{}).Execute(context.Background(), "", env)
	for _, want := range []string{"/help", "/reset_stats", "/stats", "/version", "/quit"} {
		if !strings.Contains(res.Content, want) {
			t.Fatalf("help output missing %q:\n%s", want, res.Content)
		}
	}
}

func TestVersionCommand_NamesBinary(t *testing.T) {
	res := (&VersionCommand{}).Execute(context.Background(), "", Env{})
	if !strings.HasPrefix(res.Content, "beacon ") {
		t.Fatalf("unexpected version output: %q", res.Content)
	}
}
