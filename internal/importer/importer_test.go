package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const carsCSV = "\ufeffmake, year ,model\nBMW,2020,X5\nbmw,2020 ,\n\n,,\nAudi,twenty,A4\n"

// --- CSV ---

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(carsCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(tbl.Header, "|"); got != "make|year|model" {
		t.Errorf("header = %q", got)
	}
	if len(tbl.Rows) != 4 {
		t.Errorf("rows = %d, want 4", len(tbl.Rows))
	}
}

func TestReadCSV_Empty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestReadCSV_Ragged(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b,c\n1\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := tbl.Records(Options{})
	if len(recs) != 2 {
		t.Fatalf("records = %d", len(recs))
	}
	if recs[0]["b"] != "" || recs[0]["c"] != "" {
		t.Errorf("missing cells should be empty strings: %v", recs[0])
	}
	if len(recs[1]) != 3 {
		t.Errorf("extra cells should be dropped: %v", recs[1])
	}
}

// --- Records ---

func TestRecords_SniffsNumbers(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(carsCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := tbl.Records(Options{})
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3 (blank rows skipped)", len(recs))
	}
	if y, ok := recs[0]["year"].(float64); !ok || y != 2020 {
		t.Errorf("year = %#v, want 2020", recs[0]["year"])
	}
	if y, ok := recs[1]["year"].(float64); !ok || y != 2020 {
		t.Errorf("padded year = %#v, want 2020", recs[1]["year"])
	}
	if recs[1]["model"] != "" {
		t.Errorf("model = %#v, want empty string", recs[1]["model"])
	}
	if recs[2]["year"] != "twenty" {
		t.Errorf("year = %#v, want string", recs[2]["year"])
	}
}

func TestRecords_KeepStrings(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(carsCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := tbl.Records(Options{KeepStrings: true})
	if recs[0]["year"] != "2020" {
		t.Errorf("year = %#v, want \"2020\"", recs[0]["year"])
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{"blank duplicate reserved", []string{"make", "", "make", "_id", " __v "},
			[]string{"make", "field2", "field3", "field4", "field5"}},
		{"bom", []string{"\ufeffmake", "year"}, []string{"make", "year"}},
		{"generated skips real name before it", []string{"field2", ""}, []string{"field2", "field3"}},
		{"generated skips real name after it", []string{"", "field1"}, []string{"field2", "field1"}},
		{"generated skips each other", []string{"field2", "", "field3", ""},
			[]string{"field2", "field4", "field3", "field5"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeHeader(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("header = %v, want %v", got, tc.want)
			}
		})
	}

	if _, err := normalizeHeader([]string{" ", ""}); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestRecords_GeneratedHeaderKeepsEveryCell(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("field2,\nkeep,other\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := tbl.Records(Options{})
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0]["field2"] != "keep" || recs[0]["field3"] != "other" {
		t.Errorf("record = %v", recs[0])
	}
}

func TestRecords_GoOnlyNumberFormsStayText(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("code,hex\n1_000,0x1p4\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := tbl.Records(Options{})[0]
	if rec["code"] != "1_000" || rec["hex"] != "0x1p4" {
		t.Errorf("record = %#v, want strings", rec)
	}
}

// --- Open / XLSX ---

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if _, err := f.NewSheet("cars"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		r := row
		if err := f.SetSheetRow("cars", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "cars.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"make", "year"},
		{"BMW", 2020},
		{"Audi"},
	})

	tbl, err := Open(path, "cars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := tbl.Records(Options{})
	if len(recs) != 2 {
		t.Fatalf("records = %d", len(recs))
	}
	if y, ok := recs[0]["year"].(float64); !ok || y != 2020 {
		t.Errorf("year = %#v", recs[0]["year"])
	}
	if recs[1]["year"] != "" {
		t.Errorf("missing cell = %#v, want empty string", recs[1]["year"])
	}
}

func TestReadXLSX_EmptySheet(t *testing.T) {
	path := writeWorkbook(t, nil)
	if _, err := ReadXLSX(path, "cars"); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestOpen_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.CSV")
	if err := os.WriteFile(path, []byte(carsCSV), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tbl, err := Open(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Header) != 3 {
		t.Errorf("header = %v", tbl.Header)
	}
}

func TestOpen_Unsupported(t *testing.T) {
	if _, err := Open("cars.json", ""); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
