package printer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_List(t *testing.T) {
	var buf bytes.Buffer

	New(&buf).List("Hosts", []string{"laptop", "work"})

	out := buf.String()
	for _, want := range []string{"Hosts", "laptop", "work"} {
		if !strings.Contains(out, want) {
			t.Errorf("List() output %q missing %q", out, want)
		}
	}

	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("List() wrote %d lines, want 3", got)
	}
}

func TestPrinter_StatusList(t *testing.T) {
	var buf bytes.Buffer

	New(&buf).StatusList("Vault files", []StatusListItem{
		{Ok: true, Status: "a.yml"},
		{Ok: false, Status: "b.yml"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("StatusList() wrote %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "a.yml") || !strings.Contains(lines[1], "✔") {
		t.Errorf("StatusList() line = %q, want check for a.yml", lines[1])
	}
	if !strings.Contains(lines[2], "b.yml") || !strings.Contains(lines[2], "✘") {
		t.Errorf("StatusList() line = %q, want cross for b.yml", lines[2])
	}
}

func TestPrinter_Ctx(t *testing.T) {
	var base, scoped bytes.Buffer

	p := New(&base)
	ctx := WithWriter(context.Background(), &scoped)

	p.Ctx(ctx).Title("scoped")
	p.Ctx(context.Background()).Title("base")

	if !strings.Contains(scoped.String(), "scoped") || strings.Contains(scoped.String(), "base") {
		t.Errorf("context writer got %q", scoped.String())
	}
	if !strings.Contains(base.String(), "base") {
		t.Errorf("base writer got %q", base.String())
	}
}

func TestPrinter_FatalError(t *testing.T) {
	var buf bytes.Buffer

	New(&buf).FatalError(errors.New("no task found: deploy"))

	if !strings.Contains(buf.String(), "no task found: deploy") {
		t.Errorf("FatalError() output %q missing message", buf.String())
	}
}

func TestDeferredWriter(t *testing.T) {
	var out bytes.Buffer

	w := NewDeferedWriter(&out)
	_, _ = w.Write([]byte("held"))

	if out.Len() != 0 {
		t.Fatalf("DeferredWriter wrote before Flush: %q", out.String())
	}

	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "held" {
		t.Errorf("Flush() wrote %q, want %q", out.String(), "held")
	}
}
