package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestWriteProducesReadableWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		Sheet{
			Name:    "Summary",
			Headers: []string{"Metric", "Amount"},
			Rows: [][]interface{}{
				{"Revenue", decimal.RequireFromString("1000.50")},
				{"Net profit", decimal.RequireFromString("-1400")},
			},
		},
		Sheet{
			Name:    "Daily",
			Headers: []string{"Date", "Revenue"},
			Rows:    [][]interface{}{{"2024-02-01", 12.5}},
		},
	)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Daily" {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Metric" || rows[1][0] != "Revenue" || rows[1][1] != "1000.5" {
		t.Errorf("unexpected summary rows: %v", rows)
	}
	if rows[2][1] != "-1400" {
		t.Errorf("net profit cell = %q, want -1400", rows[2][1])
	}
}

func TestWriteWithoutSheetsFails(t *testing.T) {
	if err := Write(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error when no sheets are given")
	}
}
