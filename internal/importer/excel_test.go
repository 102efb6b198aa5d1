package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"First Name", "Last Name", "Email", "Is Offline"},
		{"John", "Doe", "john@example.com", true},
		{"Jane", "Smith", "jane@example.com", nil},
	})

	rows, err := parseXLSX(data, memberHeaderRules)
	if err != nil {
		t.Fatalf("parseXLSX failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["firstName"] != "John" || rows[0]["email"] != "john@example.com" {
		t.Errorf("row 0 mismatch: %v", rows[0])
	}
	if rows[0]["offline"] != "true" {
		t.Errorf("boolean cell should stringify to lowercase true, got %v", rows[0]["offline"])
	}
	if _, ok := rows[1]["offline"]; ok {
		t.Error("empty cell should not produce a key")
	}
}

func TestParseXLSXHeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"First Name", "Email"},
	})

	_, err := parseXLSX(data, memberHeaderRules)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("header-only workbook should return ErrEmptyFile, got %v", err)
	}
}

func TestParseXLSXNoRows(t *testing.T) {
	data := buildWorkbook(t, nil)

	_, err := parseXLSX(data, memberHeaderRules)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("blank workbook should return ErrEmptyFile, got %v", err)
	}
}

func TestParseXLSXFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	first := []interface{}{"Event Name", "Event Info"}
	if err := f.SetSheetRow("Sheet1", "A1", &first); err != nil {
		t.Fatal(err)
	}
	row := []interface{}{"Launch", "Big launch"}
	if err := f.SetSheetRow("Sheet1", "A2", &row); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatal(err)
	}
	extra := []interface{}{"Event Name", "Event Info"}
	if err := f.SetSheetRow("Extra", "A1", &extra); err != nil {
		t.Fatal(err)
	}
	extraRow := []interface{}{"Ignored", "from second sheet"}
	if err := f.SetSheetRow("Extra", "A2", &extraRow); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := parseXLSX(buf.Bytes(), eventHeaderRules)
	if err != nil {
		t.Fatalf("parseXLSX failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["eventName"] != "Launch" {
		t.Errorf("only the first sheet should be read: %v", rows)
	}
}

func TestParseXLSXMalformed(t *testing.T) {
	_, err := parseXLSX([]byte("this is not a workbook"), memberHeaderRules)
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("garbage input should return ErrMalformedInput, got %v", err)
	}
}

func TestImportMembersXLSX(t *testing.T) {
	svc, members, _ := newTestService()

	data := buildWorkbook(t, [][]interface{}{
		{"First Name", "Last Name", "Email"},
		{"John", "Doe", "john@example.com"},
		{"Jane", "Smith", nil},
	})

	report, err := svc.ImportRecords(data, "members.xlsx", KindMember)
	if err != nil {
		t.Fatalf("ImportRecords failed: %v", err)
	}
	if report.TotalProcessed != 2 || report.Successful != 1 || report.Failed != 1 {
		t.Fatalf("report mismatch: %+v", report)
	}
	if report.Errors[0] != "Row 2: Email is required" {
		t.Errorf("error message == %q", report.Errors[0])
	}

	list, err := members.List()
	if err != nil || len(list) != 1 {
		t.Errorf("expected one imported member, got %v, %v", list, err)
	}
}
