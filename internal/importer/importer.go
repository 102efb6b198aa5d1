package importer

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"smart_events_app/internal/app"
	"smart_events_app/internal/planner"
)

// Kind selects which field semantics an import uses.
type Kind string

const (
	KindMember Kind = "member"
	KindEvent  Kind = "event"
)

// Report accumulates the outcome of one import run. Row order follows input
// order; row numbers in error messages are 1-based.
type Report struct {
	TotalProcessed  int           `json:"totalProcessed"`
	Successful      int           `json:"successful"`
	Failed          int           `json:"failed"`
	Errors          []string      `json:"errors"`
	ImportedRecords []interface{} `json:"importedRecords"`
}

// Service runs the import pipeline: format dispatch, parsing, header
// normalization, row materialization and per-row persistence.
type Service struct {
	members *planner.MemberService
	events  *planner.EventService
}

func New(members *planner.MemberService, events *planner.EventService) *Service {
	return &Service{members: members, events: events}
}

// ImportRecords parses the file (format chosen by extension) and processes
// every row. Row-level failures are recorded in the report and never abort
// the batch; only whole-file problems return an error.
func (s *Service) ImportRecords(data []byte, filename string, kind Kind) (*Report, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	rules := memberHeaderRules
	if kind == KindEvent {
		rules = eventHeaderRules
	}

	var rows []app.RawRow
	var err error
	switch ext {
	case "json":
		rows, err = parseJSON(data)
	case "csv":
		rows, err = parseCSV(data, rules)
	case "xlsx":
		rows, err = parseXLSX(data, rules)
	case "xls":
		rows, err = parseXLS(data, rules)
	default:
		return nil, fmt.Errorf("%w: %s. Supported formats: JSON, CSV, Excel", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalProcessed:  len(rows),
		Errors:          []string{},
		ImportedRecords: []interface{}{},
	}

	for i, row := range rows {
		rowNumber := i + 1
		created, err := s.processRow(row, kind)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", rowNumber, err.Error()))
			report.Failed++
			log.Printf("[WARN] Import row %d failed: %v", rowNumber, err)
			continue
		}
		report.ImportedRecords = append(report.ImportedRecords, created)
		report.Successful++
	}
	return report, nil
}

func (s *Service) processRow(row app.RawRow, kind Kind) (interface{}, error) {
	if kind == KindEvent {
		req, err := eventRequestFromRow(row)
		if err != nil {
			return nil, err
		}
		return s.events.Create(req)
	}
	req, err := memberRequestFromRow(row)
	if err != nil {
		return nil, err
	}
	return s.members.Create(req)
}
