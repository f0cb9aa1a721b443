// SPDX-License-Identifier: MPL-2.0

package interp

import (
	"errors"
	"slices"
	"testing"
)

func TestParseCandidate(t *testing.T) {
	t.Setenv("CJC_TEST_VENV", "/opt/venv")

	tests := []struct {
		name     string
		spec     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{name: "bare name", spec: "python3", wantName: "python3"},
		{name: "with args", spec: "py -3 -u", wantName: "py", wantArgs: []string{"-3", "-u"}},
		{name: "quoted path", spec: `"/opt/my python/bin/python3" -E`, wantName: "/opt/my python/bin/python3", wantArgs: []string{"-E"}},
		{name: "env expansion", spec: "$CJC_TEST_VENV/bin/python", wantName: "/opt/venv/bin/python"},
		{name: "surrounding space", spec: "  python  ", wantName: "python"},
		{name: "empty", spec: "", wantErr: true},
		{name: "whitespace", spec: "   ", wantErr: true},
		{name: "unterminated quote", spec: `"python`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCandidate(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCandidate(%q) expected error, got %+v", tt.spec, got)
				}
				if !errors.Is(err, ErrInvalidCandidate) {
					t.Errorf("ParseCandidate(%q) error = %v, want ErrInvalidCandidate", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCandidate(%q) error = %v", tt.spec, err)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if len(got.Args) != len(tt.wantArgs) || !slices.Equal(got.Args, tt.wantArgs) {
				t.Errorf("Args = %q, want %q", got.Args, tt.wantArgs)
			}
		})
	}
}

func TestParseCandidates_DefaultsWhenEmpty(t *testing.T) {
	got, err := ParseCandidates(nil)
	if err != nil {
		t.Fatalf("ParseCandidates(nil) error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "python3" || got[1].Name != "python" {
		t.Errorf("ParseCandidates(nil) = %+v, want [python3 python]", got)
	}
}

func TestParseCandidates_StopsAtFirstError(t *testing.T) {
	_, err := ParseCandidates([]string{"python3", " ", "python"})
	var candErr *InvalidCandidateError
	if !errors.As(err, &candErr) {
		t.Fatalf("ParseCandidates() error = %v, want *InvalidCandidateError", err)
	}
	if candErr.Spec != " " {
		t.Errorf("InvalidCandidateError.Spec = %q, want %q", candErr.Spec, " ")
	}
}

func TestCandidate_Command(t *testing.T) {
	c := Candidate{Name: "py", Args: []string{"-3"}}

	name, args := c.Command("-c", "pass")
	if name != "py" {
		t.Errorf("name = %q, want %q", name, "py")
	}
	if !slices.Equal(args, []string{"-3", "-c", "pass"}) {
		t.Errorf("args = %q, want [-3 -c pass]", args)
	}
	if !slices.Equal(c.Args, []string{"-3"}) {
		t.Errorf("Command() mutated candidate args: %q", c.Args)
	}

	if s := c.String(); s != "py -3" {
		t.Errorf("String() = %q, want %q", s, "py -3")
	}
}
