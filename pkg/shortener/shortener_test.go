// SPDX-License-Identifier: MPL-2.0

package shortener

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HCRitter/PSCommandShortener/internal/reassemble"
	"github.com/HCRitter/PSCommandShortener/pkg/parser"
	"github.com/HCRitter/PSCommandShortener/pkg/registry"
)

func testRegistry(t *testing.T) *registry.InMemory {
	t.Helper()
	reg, err := registry.NewInMemory([]registry.Command{
		{
			Name:    "Get-ChildItem",
			Aliases: []string{"gci", "dir", "ls"},
			Parameters: []registry.Parameter{
				{Name: "Path"},
				{Name: "Recurse", Aliases: []string{"s"}},
			},
		},
		{
			Name:    "Select-Object",
			Aliases: []string{"select"},
			Parameters: []registry.Parameter{
				{Name: "ExpandProperty", Aliases: []string{"ep"}},
				{Name: "First"},
			},
		},
		{Name: "Get-Date", Parameters: []registry.Parameter{{Name: "Format"}}},
		{Name: "Test-Path", Parameters: []registry.Parameter{{Name: "Path"}}},
	}, []registry.Parameter{
		{Name: "ErrorAction", Aliases: []string{"ea"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func newTestShortener(t *testing.T, opts ...Option) *Shortener {
	t.Helper()
	opts = append([]Option{
		WithRegistry(testRegistry(t)),
		WithLineEnding(reassemble.LF),
	}, opts...)
	s, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestShortener_Shorten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "known alias, no parameters",
			source: "Get-ChildItem C:\\temp",
			want:   "ls C:\\temp",
		},
		{
			name:   "pipeline rewrites both sides and keeps the pipe",
			source: "Get-ChildItem | Select-Object -ExpandProperty Name",
			want:   "ls | select -ep Name",
		},
		{
			name:   "retrieval verb stripped when no alias exists",
			source: "Get-Date -Format o",
			want:   "Date -Format o",
		},
		{
			name:   "already shortened source is unchanged",
			source: "ls -s",
			want:   "ls -s",
		},
		{
			name:   "unknown command passes through verbatim",
			source: "Invoke-Mystery -Foo bar",
			want:   "Invoke-Mystery -Foo bar",
		},
		{
			name:   "no alias and no implied prefix keeps original",
			source: "Test-Path -Path C:\\temp",
			want:   "Test-Path -Path C:\\temp",
		},
		{
			name:   "parameter alias and common parameter",
			source: "Get-ChildItem -Recurse -ErrorAction Stop",
			want:   "ls -s -ea Stop",
		},
		{
			name:   "unknown parameter left as typed",
			source: "Get-ChildItem -Recurse -Bogus x",
			want:   "ls -s -Bogus x",
		},
		{
			name:   "semicolon statements rewritten independently",
			source: "Get-Date; Get-ChildItem -Recurse",
			want:   "Date; ls -s",
		},
		{
			name:   "command token inside a string literal untouched",
			source: `Write-Output "Get-ChildItem is verbose"; Get-ChildItem`,
			want:   `Write-Output "Get-ChildItem is verbose"; ls`,
		},
		{
			name:   "empty source",
			source: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := newTestShortener(t).Shorten(tt.source)
			if err != nil {
				t.Fatalf("Shorten(%q) error: %v", tt.source, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Shorten(%q) mismatch (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

// A substitution for one invocation must never touch text belonging to a
// different invocation.
func TestShortener_ParameterScoping(t *testing.T) {
	t.Parallel()

	source := "Get-ChildItem -ErrorAction Stop; Get-Date -ErrorAction Stop"
	got, err := newTestShortener(t).Shorten(source)
	if err != nil {
		t.Fatal(err)
	}
	want := "ls -ea Stop; Date -ea Stop"
	if got != want {
		t.Errorf("Shorten(%q) = %q, want %q", source, got, want)
	}
}

func TestShortener_ParseFailurePropagates(t *testing.T) {
	t.Parallel()

	_, err := newTestShortener(t).Shorten("Get-ChildItem | ; |")
	if err == nil {
		t.Fatal("Shorten() on unparseable source should fail")
	}
	if !errors.Is(err, parser.ErrParse) {
		t.Errorf("error should wrap parser.ErrParse, got: %v", err)
	}
}

type fixedParser struct {
	invocations []parser.Invocation
}

func (p *fixedParser) Parse(string) ([]parser.Invocation, error) {
	return p.invocations, nil
}

// When the splitter and the parser disagree on counts, the zipped prefix is
// processed and trailing fragments pass through unmodified.
func TestShortener_PositionalMismatchFailSoft(t *testing.T) {
	t.Parallel()

	s := newTestShortener(t, WithParser(&fixedParser{
		invocations: []parser.Invocation{{Command: "Get-ChildItem"}},
	}))

	got, err := s.Shorten("Get-ChildItem; Get-Date; Get-ChildItem")
	if err != nil {
		t.Fatal(err)
	}
	want := "ls; Get-Date; Get-ChildItem"
	if got != want {
		t.Errorf("Shorten() = %q, want %q", got, want)
	}
}

// Comment-only lines carry no invocation. They must not steal the rewrite
// meant for the next real statement, and their text survives verbatim.
func TestShortener_CommentLinesPassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "leading comment line",
			source: "# Get-ChildItem is great\nGet-ChildItem -Recurse",
			want:   "# Get-ChildItem is great\nls -s",
		},
		{
			name:   "comment between statements",
			source: "Get-Date\n# housekeeping\nGet-ChildItem -Recurse",
			want:   "Date\n# housekeeping\nls -s",
		},
		{
			name:   "trailing comment on a statement stays put",
			source: "Get-ChildItem # Get-ChildItem lists files",
			want:   "ls # Get-ChildItem lists files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := newTestShortener(t).Shorten(tt.source)
			if err != nil {
				t.Fatalf("Shorten(%q) error: %v", tt.source, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Shorten(%q) mismatch (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

func TestShortener_DefaultsUseEmbeddedTableAndCRLF(t *testing.T) {
	t.Parallel()

	s, err := New()
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Shorten("Get-ChildItem -Recurse\nGet-Location")
	if err != nil {
		t.Fatal(err)
	}
	want := "ls -s\r\ngl"
	if got != want {
		t.Errorf("Shorten() = %q, want %q", got, want)
	}
}

func TestShortener_CustomPrefixes(t *testing.T) {
	t.Parallel()

	s := newTestShortener(t, WithImpliedPrefixes([]string{"Test-"}))
	got, err := s.Shorten("Test-Path -Path C:\\x")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Path -Path C:\\x" {
		t.Errorf("Shorten() = %q, want %q", got, "Path -Path C:\\x")
	}
}

func TestShortener_Report(t *testing.T) {
	t.Parallel()

	source := "Get-ChildItem -Recurse | Select-Object -ExpandProperty Name"
	result, err := newTestShortener(t).Report(source)
	if err != nil {
		t.Fatal(err)
	}

	if result.Source != source {
		t.Errorf("Result.Source = %q, want the input", result.Source)
	}
	if result.Shortened != "ls -s | select -ep Name" {
		t.Errorf("Result.Shortened = %q", result.Shortened)
	}
	if result.Saved != len(source)-len(result.Shortened) {
		t.Errorf("Result.Saved = %d, want %d", result.Saved, len(source)-len(result.Shortened))
	}

	if len(result.Changes) != 2 {
		t.Fatalf("len(Changes) = %d, want 2", len(result.Changes))
	}
	first := result.Changes[0]
	if first.Canonical != "Get-ChildItem" || first.After != "ls -s" {
		t.Errorf("Changes[0] = %+v", first)
	}
	if first.Saved <= 0 {
		t.Errorf("Changes[0].Saved = %d, want > 0", first.Saved)
	}

	// Nothing to change: no entries, zero savings beyond normalization.
	unchanged, err := newTestShortener(t).Report("ls -s")
	if err != nil {
		t.Fatal(err)
	}
	if len(unchanged.Changes) != 0 {
		t.Errorf("Changes = %+v, want none", unchanged.Changes)
	}
	if unchanged.Shortened != "ls -s" {
		t.Errorf("Shortened = %q, want input back", unchanged.Shortened)
	}
}
