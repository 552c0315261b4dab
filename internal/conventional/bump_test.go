package conventional

import "testing"

func TestBumpFor_TypeTable(t *testing.T) {
	cases := []struct {
		message string
		want    BumpType
	}{
		{"fix: resolve crash", BumpPatch},
		{"feat: add login", BumpMinor},
		{"perf: faster index build", BumpPatch},
		{"revert: undo broken change", BumpPatch},
		{"refactor: shuffle packages", BumpNone},
		{"style: gofmt", BumpNone},
		{"test: cover edge cases", BumpNone},
		{"docs: update readme", BumpNone},
		{"chore: update deps", BumpNone},
		{"build: bump go version", BumpNone},
		{"ci: cache modules", BumpNone},
		{"wip: unknown type", BumpNone},
	}

	for _, tc := range cases {
		c, ok := Parse(tc.message)
		if !ok {
			t.Fatalf("Parse(%q) failed", tc.message)
		}
		if got := BumpFor(c); got != tc.want {
			t.Errorf("BumpFor(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestBumpFor_BreakingBeatsTable(t *testing.T) {
	c, ok := Parse("chore!: drop legacy config")
	if !ok {
		t.Fatal("parse failed")
	}
	if got := BumpFor(c); got != BumpMajor {
		t.Errorf("got %v, want major", got)
	}
}

func TestBumpFor_EpochBeatsBreaking(t *testing.T) {
	c, ok := Parse("epoch!: rewrite everything")
	if !ok {
		t.Fatal("parse failed")
	}
	if got := BumpFor(c); got != BumpEpoch {
		t.Errorf("got %v, want epoch", got)
	}
}

func TestCalculate_MaxWins(t *testing.T) {
	got := Calculate([]string{
		"docs: notes",
		"fix: small thing",
		"feat: new command",
		"not a conventional commit",
	})
	if got != BumpMinor {
		t.Errorf("got %v, want minor", got)
	}
}

func TestCalculate_EpochAnywhere(t *testing.T) {
	// The fold is a commutative max: the epoch commit may sit at any
	// position without changing the result.
	base := []string{"fix: a", "feat: b", "chore: c"}
	for pos := 0; pos <= len(base); pos++ {
		msgs := make([]string, 0, len(base)+1)
		msgs = append(msgs, base[:pos]...)
		msgs = append(msgs, "arch: move to event sourcing")
		msgs = append(msgs, base[pos:]...)

		if got := Calculate(msgs); got != BumpEpoch {
			t.Errorf("epoch commit at position %d: got %v, want epoch", pos, got)
		}
	}
}

func TestCalculate_Empty(t *testing.T) {
	if got := Calculate(nil); got != BumpNone {
		t.Errorf("got %v, want none", got)
	}
	if got := Calculate([]string{"random", "noise"}); got != BumpNone {
		t.Errorf("all-unparseable input: got %v, want none", got)
	}
}

func TestAnalyze_ReportsSkipped(t *testing.T) {
	a := Analyze([]string{
		"feat(cli): add ask command",
		"merge branch 'main'",
		"fix: typo",
		"WIP",
	})
	if a.Bump != BumpMinor {
		t.Errorf("bump = %v, want minor", a.Bump)
	}
	if len(a.Commits) != 2 {
		t.Errorf("commits = %d, want 2", len(a.Commits))
	}
	if a.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", a.Skipped)
	}
}

func TestBumpTypeOrdering(t *testing.T) {
	order := []BumpType{BumpNone, BumpPatch, BumpMinor, BumpMajor, BumpEpoch}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("%v should sort below %v", order[i-1], order[i])
		}
	}
}

func TestParseBumpType(t *testing.T) {
	for _, s := range []string{"patch", "minor", "major", "epoch", "PATCH"} {
		if _, err := ParseBumpType(s); err != nil {
			t.Errorf("ParseBumpType(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"none", "", "huge", "major "} {
		if _, err := ParseBumpType(s); err == nil {
			t.Errorf("ParseBumpType(%q) should fail", s)
		}
	}
}
