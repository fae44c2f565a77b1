package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatText, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"passed": 3}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var out map[string]int
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out["passed"] != 3 {
		t.Errorf("passed = %d", out["passed"])
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable("TASK", "PASS", "REWARD")
	table.AddRow("cake-failure-escalation", true, 1.0)
	table.AddRow("walk-in-seating", false, 0.5)
	if err := table.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "TASK") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "walk-in-seating") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(2, &buf)
	p.Record(true)
	p.Record(false)
	if p.Passed() != 1 {
		t.Errorf("Passed = %d, want 1", p.Passed())
	}
	if !strings.Contains(buf.String(), "[2/2]") {
		t.Errorf("output missing final counter: %q", buf.String())
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("run", inner)
	if !errors.Is(err, inner) {
		t.Error("Unwrap does not reach inner error")
	}
	if !strings.Contains(err.Error(), "run") {
		t.Errorf("Error() = %q", err.Error())
	}
}
