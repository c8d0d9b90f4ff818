package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RELDATE_LANG", "")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "between english",
			args: []string{"between", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z", "--lang", "en"},
			want: "2 days ago",
		},
		{
			name: "between german",
			args: []string{"between", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z", "--lang", "de"},
			want: "vor 2 Tagen",
		},
		{
			name: "ago with fixed clock",
			args: []string{"ago", "2024-01-01T00:00:00Z", "--now", "2024-01-01T03:00:00Z", "--tz", "UTC", "--lang", "en"},
			want: "3 hours ago",
		},
		{
			name: "day yesterday",
			args: []string{"day", "2024-03-09", "--now", "2024-03-10T23:30:00Z", "--tz", "UTC", "--lang", "en"},
			want: "Yesterday",
		},
		{
			name: "years ago fragment",
			args: []string{"years-ago", "--lang", "en"},
			want: "years ago",
		},
		{
			name: "years ago caption",
			args: []string{"years-ago", "1", "--lang", "en"},
			want: "Last year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanguagesCommand(t *testing.T) {
	got, err := execute(t, "languages")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(got, "CODE") {
		t.Fatalf("missing header:\n%s", got)
	}
	for _, code := range []string{"be-tarask", "simple", "zh-min-nan"} {
		if !strings.Contains(got, code) {
			t.Fatalf("languages output missing %q:\n%s", code, got)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := execute(t, "ago", "yesterday-ish"); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if _, err := execute(t, "years-ago", "many"); err == nil {
		t.Fatal("expected error for invalid count")
	}
	if _, err := execute(t, "ago", "2024-01-01", "--tz", "Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
