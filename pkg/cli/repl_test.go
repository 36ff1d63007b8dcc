package cli

import (
	"github.com/funvibe/galaxy/internal/config"
	"reflect"
	"strings"
	"testing"
)

func TestSessionHandle(t *testing.T) {
	s := newSession(config.Default(), nil)

	steps := []struct {
		input    string
		wantOut  string
		wantQuit bool
		wantErr  string
	}{
		{input: ""},
		{input: "// comment"},
		{input: ":1 = ap ap add 2 3"},
		{input: ":1", wantOut: "5"},
		{input: "ap ap mul :1 :1", wantOut: "25"},
		{input: ":2 = ap ap cons :1 nil"},
		{input: "ap car :2", wantOut: "5"},
		{input: ":2", wantOut: "( 5 )"},
		{input: "galaxy = :2"},
		{input: ":env", wantOut: ":1 = ap ap add 2 3\n:2 = ap ap cons :1 nil\ngalaxy = :2"},
		{input: ":3", wantErr: "unbound identifier"},
		{input: "ap car 1", wantErr: "type mismatch"},
		{input: "ap frob 1", wantErr: "[P002]"},
		{input: ":frob", wantErr: "unknown command :frob"},
		{input: ":reset"},
		{input: ":env"},
		{input: ":1", wantErr: "unbound identifier"},
		{input: ":q", wantQuit: true},
	}

	for _, step := range steps {
		out, quit, err := s.handle(step.input)
		if step.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), step.wantErr) {
				t.Errorf("handle(%q) error = %v, want %q", step.input, err, step.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("handle(%q) unexpected error: %v", step.input, err)
			continue
		}
		if out != step.wantOut {
			t.Errorf("handle(%q) = %q, want %q", step.input, out, step.wantOut)
		}
		if quit != step.wantQuit {
			t.Errorf("handle(%q) quit = %v, want %v", step.input, quit, step.wantQuit)
		}
	}
}

func TestSessionLimits(t *testing.T) {
	cfg := config.Default()
	cfg.MaxIterations = 40
	cfg.MaxNodes = 100
	s := newSession(cfg, nil)

	for _, def := range []string{":1 = :1", ":2 = ap ap cons 0 :2"} {
		if _, _, err := s.handle(def); err != nil {
			t.Fatal(err)
		}
	}
	for _, expr := range []string{":1", ":2", "ap ap eq :2 :2"} {
		if _, _, err := s.handle(expr); err == nil || !strings.Contains(err.Error(), "divergence") {
			t.Errorf("%s: error = %v, want divergence", expr, err)
		}
	}
}

func TestIsVariable(t *testing.T) {
	tests := map[string]bool{
		":1029":  true,
		":1 = 1": true,
		":env":   false,
		":":      false,
	}
	for line, want := range tests {
		if got := isVariable(line); got != want {
			t.Errorf("isVariable(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"ap ca", []string{"ap car"}},
		{"ap i", []string{"ap i", "ap if0", "ap inc", "ap interact", "ap isnil"}},
		{"( 1 , ni", []string{"( 1 , nil"}},
		{"ap ", nil},
		{"zz", []string{}},
	}
	for _, tt := range tests {
		got := complete(tt.line)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("complete(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
