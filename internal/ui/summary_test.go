package ui

import (
	"strings"
	"testing"
)

func TestRenderSummaryPlain(t *testing.T) {
	var b strings.Builder
	RenderSummary(&b, []Row{
		{Symbol: "IntVec", Template: "Vec", Args: "int"},
		{Symbol: "", Template: "Pair", Args: "int,double", Uses: 3},
	}, false)
	out := b.String()
	for _, want := range []string{"symbol", "IntVec", "Vec", "(anonymous)", "(3 uses)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain summary contains escape codes:\n%q", out)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var b strings.Builder
	RenderSummary(&b, nil, false)
	if !strings.Contains(b.String(), "no template instantiations") {
		t.Fatalf("empty summary = %q", b.String())
	}
}
