package display

import (
	"strings"
	"testing"
)

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable()
	if got := tbl.Render(); got != "" {
		t.Errorf("Render() with empty headers = %q, want empty", got)
	}
}

func TestTable_BasicRender(t *testing.T) {
	SetEnabled(false) // disable colors for predictable output

	tbl := NewTable("Date", "Fajr", "Isha")
	tbl.AddRow("Mon 01 Jan", "04:16", "19:26")
	tbl.AddRow("Tue 02 Jan", "04:17", "19:26")

	got := tbl.Render()
	want := "" +
		"  Date        Fajr   Isha\n" +
		"  ──────────  ─────  ─────\n" +
		"  Mon 01 Jan  04:16  19:26\n" +
		"  Tue 02 Jan  04:17  19:26\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTable_RuneWidths(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable("Prayer", "Arabic", "Time")
	tbl.AddRow("Fajr", "فجر", "04:16")
	tbl.AddRow("Maghrib", "مغرب", "18:10")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	// Time column starts at the same rune offset on every data row.
	col := strings.Index(lines[2], "04:16")
	if got := strings.Index(lines[3], "18:10"); len([]rune(lines[2][:col])) != len([]rune(lines[3][:got])) {
		t.Errorf("misaligned rows:\n%s\n%s", lines[2], lines[3])
	}
}

func TestTable_Highlight(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tbl := NewTable("Prayer", "Time")
	tbl.AddRow("Fajr", "04:16")
	tbl.AddRow("Dhuhr", "11:58")
	tbl.AddRow("Asr", "15:23")
	tbl.Highlight(1, Accent)
	tbl.Highlight(2, Urgent)

	lines := strings.Split(tbl.Render(), "\n")
	// Line 0 is header, line 1 separator, data rows start at line 2.
	if strings.Contains(lines[2], "\033[36m") || strings.Contains(lines[2], "\033[31m") {
		t.Errorf("unhighlighted row has color: %q", lines[2])
	}
	if !strings.Contains(lines[3], "\033[36m") {
		t.Errorf("accent row missing cyan: %q", lines[3])
	}
	if !strings.Contains(lines[4], "\033[31m") {
		t.Errorf("urgent row missing red: %q", lines[4])
	}
}

func TestFormatRow(t *testing.T) {
	got := formatRow([]string{"abc", "de"}, []int{5, 4})
	want := "abc    de"
	if got != want {
		t.Errorf("formatRow = %q, want %q", got, want)
	}
}

func TestFormatRow_MissingCells(t *testing.T) {
	got := formatRow([]string{"a"}, []int{3, 5, 2})
	want := "a           "
	if got != want {
		t.Errorf("formatRow = %q, want %q", got, want)
	}
}
