package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cardex/cardex/internal/card"
)

var testRecords = []card.Record{
	{Name: "Son Goku", Code: "BT1-001", Rarity: "SCR"},
	{Name: "Vegeta", Code: "BT1-002", Rarity: "SR"},
}

func render(t *testing.T, format Format, recs []card.Record) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, format)
	if err != nil {
		t.Fatalf("NewWriter(%s) error: %v", format, err)
	}
	if err := w.WriteAll(recs); err != nil {
		t.Fatalf("WriteAll() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	return buf.String()
}

func TestCSVWriter(t *testing.T) {
	got := render(t, FormatCSV, testRecords)
	want := "name,code,rarity\nSon Goku,BT1-001,SCR\nVegeta,BT1-002,SR\n"

	if got != want {
		t.Errorf("CSV output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestCSVWriter_EmptyRecords_HeaderOnly(t *testing.T) {
	got := render(t, FormatCSV, nil)

	if got != "name,code,rarity\n" {
		t.Errorf("expected header-only output, got %q", got)
	}
}

func TestCSVWriter_QuotesCommas(t *testing.T) {
	recs := []card.Record{{Name: "Goku, Super Saiyan", Code: "BT1-003", Rarity: "SR"}}
	got := render(t, FormatCSV, recs)

	if !strings.Contains(got, `"Goku, Super Saiyan"`) {
		t.Errorf("expected quoted name field, got %q", got)
	}
}

func TestCSVWriter_Idempotent(t *testing.T) {
	first := render(t, FormatCSV, testRecords)
	second := render(t, FormatCSV, testRecords)

	if first != second {
		t.Error("two runs over identical records should produce identical output")
	}
}

func TestJSONWriter(t *testing.T) {
	got := render(t, FormatJSON, testRecords)

	if !strings.Contains(got, `"code": "BT1-001"`) {
		t.Errorf("expected code field in JSON output, got %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestJSONLWriter(t *testing.T) {
	got := render(t, FormatJSONL, testRecords)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != `{"name":"Son Goku","code":"BT1-001","rarity":"SCR"}` {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}

func TestYAMLWriter(t *testing.T) {
	got := render(t, FormatYAML, testRecords)

	if !strings.Contains(got, "code: BT1-001") {
		t.Errorf("expected code field in YAML output, got %q", got)
	}
	if !strings.Contains(got, "rarity: SR") {
		t.Errorf("expected rarity field in YAML output, got %q", got)
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWriter(&buf, Format("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}
