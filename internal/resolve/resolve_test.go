// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/HCRitter/PSCommandShortener/pkg/registry"
)

func testRegistry(t *testing.T) *registry.InMemory {
	t.Helper()
	r, err := registry.NewInMemory([]registry.Command{
		{
			Name:    "Get-ChildItem",
			Aliases: []string{"gci", "dir", "ls"},
			Parameters: []registry.Parameter{
				{Name: "Path"},
				{Name: "Recurse", Aliases: []string{"s"}},
			},
		},
		{
			Name:    "Get-Content",
			Aliases: []string{"gc", "cat"},
			Parameters: []registry.Parameter{
				{Name: "TotalCount", Aliases: []string{"First", "Head"}},
			},
		},
		{Name: "Get-Date"},
		{Name: "Test-Path", Parameters: []registry.Parameter{{Name: "Path"}}},
		{Name: "Invoke-Widget", Aliases: []string{"iwa", "iwb"}},
	}, []registry.Parameter{
		{Name: "ErrorAction", Aliases: []string{"ea"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestResolver_Command(t *testing.T) {
	t.Parallel()

	r := NewResolver(testRegistry(t))

	tests := []struct {
		name      string
		query     string
		want      ResolvedCommand
		wantFound bool
	}{
		{
			name:      "shortest alias wins",
			query:     "Get-ChildItem",
			want:      ResolvedCommand{Canonical: "Get-ChildItem", Short: "ls"},
			wantFound: true,
		},
		{
			name:      "lookup by alias",
			query:     "dir",
			want:      ResolvedCommand{Canonical: "Get-ChildItem", Short: "ls"},
			wantFound: true,
		},
		{
			name:      "no alias strips implied verb prefix",
			query:     "Get-Date",
			want:      ResolvedCommand{Canonical: "Get-Date", Short: "Date"},
			wantFound: true,
		},
		{
			name:      "no alias and no prefix keeps original",
			query:     "Test-Path",
			want:      ResolvedCommand{Canonical: "Test-Path", Short: ""},
			wantFound: true,
		},
		{
			name:      "unknown command",
			query:     "Get-Widget",
			want:      ResolvedCommand{},
			wantFound: false,
		},
		{
			name:      "already shortest spelling",
			query:     "ls",
			want:      ResolvedCommand{Canonical: "Get-ChildItem", Short: "ls"},
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := r.Command(tt.query)
			if found != tt.wantFound {
				t.Fatalf("Command(%q) found = %v, want %v", tt.query, found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("Command(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestResolver_Command_TieBreakIsDeterministic(t *testing.T) {
	t.Parallel()

	// iwa and iwb have equal length; declaration order decides, every time.
	r := NewResolver(testRegistry(t))
	for range 100 {
		got, found := r.Command("Invoke-Widget")
		if !found {
			t.Fatal("Invoke-Widget should be registered")
		}
		if got.Short != "iwa" {
			t.Fatalf("tie-break picked %q, want first-declared %q", got.Short, "iwa")
		}
	}
}

func TestResolver_Command_CustomPrefixes(t *testing.T) {
	t.Parallel()

	r := NewResolver(testRegistry(t), WithImpliedPrefixes([]string{"Test-"}))

	got, found := r.Command("Test-Path")
	if !found {
		t.Fatal("Test-Path should be registered")
	}
	if got.Short != "Path" {
		t.Errorf("Short = %q, want %q", got.Short, "Path")
	}

	// Get-Date no longer matches any configured prefix.
	got, _ = r.Command("Get-Date")
	if got.Short != "" {
		t.Errorf("Short = %q, want no short form", got.Short)
	}
}

func TestResolver_ParameterMap(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	r := NewResolver(reg)

	gci, _ := reg.Lookup("Get-ChildItem")
	gc, _ := reg.Lookup("Get-Content")

	tests := []struct {
		name   string
		cmd    *registry.Command
		tokens []string
		want   []ParameterRewrite
	}{
		{
			name:   "declared alias",
			cmd:    gci,
			tokens: []string{"-Recurse"},
			want: []ParameterRewrite{
				{Canonical: "Recurse", Token: "-Recurse", Replacement: "-s"},
			},
		},
		{
			name:   "no alias skipped",
			cmd:    gci,
			tokens: []string{"-Path"},
			want:   nil,
		},
		{
			name:   "unknown parameter skipped",
			cmd:    gci,
			tokens: []string{"-Bogus", "-Recurse"},
			want: []ParameterRewrite{
				{Canonical: "Recurse", Token: "-Recurse", Replacement: "-s"},
			},
		},
		{
			name:   "common parameter",
			cmd:    gci,
			tokens: []string{"-ErrorAction"},
			want: []ParameterRewrite{
				{Canonical: "ErrorAction", Token: "-ErrorAction", Replacement: "-ea"},
			},
		},
		{
			name:   "already shortest token is a no-op",
			cmd:    gci,
			tokens: []string{"-s"},
			want:   nil,
		},
		{
			name:   "alias token resolves to shorter alias",
			cmd:    gc,
			tokens: []string{"-First"},
			want: []ParameterRewrite{
				{Canonical: "TotalCount", Token: "-First", Replacement: "-Head"},
			},
		},
		{
			name:   "duplicate canonical keeps first",
			cmd:    gc,
			tokens: []string{"-TotalCount", "-First"},
			want: []ParameterRewrite{
				{Canonical: "TotalCount", Token: "-TotalCount", Replacement: "-Head"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.ParameterMap(tt.cmd, tt.tokens)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParameterMap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
