package importer

import (
	"errors"
	"testing"
)

func TestParseCSV(t *testing.T) {
	data := []byte("First Name,Last Name,Email\nJohn,Doe,john@example.com\nJane,Smith,jane@example.com\n")
	rows, err := parseCSV(data, memberHeaderRules)
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["firstName"] != "John" || rows[0]["email"] != "john@example.com" {
		t.Errorf("row 0 mismatch: %v", rows[0])
	}
}

func TestParseCSVQuotedFields(t *testing.T) {
	data := []byte("Name,Email,Address\n\"Acme, Inc.\",acme@example.com,\"12 \"\"Main\"\" St\"\n")
	rows, err := parseCSV(data, memberHeaderRules)
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if rows[0]["name"] != "Acme, Inc." {
		t.Errorf("quoted comma lost: %v", rows[0]["name"])
	}
	if rows[0]["address"] != `12 "Main" St` {
		t.Errorf("doubled quote not unescaped: %v", rows[0]["address"])
	}
}

func TestParseCSVSkipsEmptyCells(t *testing.T) {
	data := []byte("First Name,Email,Phone\nJohn,john@example.com,\n\nJane,jane@example.com,555\n")
	rows, err := parseCSV(data, memberHeaderRules)
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("blank line should be skipped, got %d rows", len(rows))
	}
	if _, ok := rows[0]["phone"]; ok {
		t.Error("empty cell should not produce a key")
	}
	if rows[1]["phone"] != "555" {
		t.Errorf("row 1 phone == %v, want 555", rows[1]["phone"])
	}
}

func TestParseCSVUnknownColumnsDropped(t *testing.T) {
	data := []byte("First Name,Email,Favourite Color\nJohn,john@example.com,blue\n")
	rows, err := parseCSV(data, memberHeaderRules)
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if len(rows[0]) != 2 {
		t.Errorf("unrecognized column should be dropped: %v", rows[0])
	}
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := parseCSV([]byte(""), memberHeaderRules)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty input should return ErrEmptyFile, got %v", err)
	}
}

func TestParseCSVRowLongerThanHeader(t *testing.T) {
	data := []byte("First Name,Email\nJohn,john@example.com,extra,cells\n")
	rows, err := parseCSV(data, memberHeaderRules)
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if len(rows[0]) != 2 {
		t.Errorf("extra cells should be ignored: %v", rows[0])
	}
}

func TestParseJSON(t *testing.T) {
	rows, err := parseJSON([]byte(`[{"firstName":"John","email":"j@x.com"},{"name":"Acme"}]`))
	if err != nil {
		t.Fatalf("parseJSON failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestParseJSONMalformed(t *testing.T) {
	for _, payload := range []string{`{"not":"an array"}`, `[{`, ``} {
		if _, err := parseJSON([]byte(payload)); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("payload %q should return ErrMalformedInput, got %v", payload, err)
		}
	}
}

func TestCellString(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{" text ", "text"},
		{"TRUE", "true"},
		{"False", "false"},
		{"3.0", "3"},
		{"3.5", "3.5"},
		{"", ""},
	}

	for _, c := range cases {
		result := cellString(c.input)
		if result != c.expected {
			t.Errorf("cellString(%q) == %q, want %q", c.input, result, c.expected)
		}
	}
}
