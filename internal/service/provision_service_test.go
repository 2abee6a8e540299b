package service

import (
	"strings"
	"testing"
)

func TestParseProvisionCSV(t *testing.T) {
	csvData := `name,email,department,start_date
Ada Lovelace,ada@example.com,Engineering,2025-04-01
Grace Hopper,grace@example.com,,
Alan Turing, alan@example.com ,Research,2025-05-01
`
	inputs, err := ParseProvisionCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseProvisionCSV failed: %v", err)
	}
	if len(inputs) != 3 {
		t.Fatalf("got %d rows, want 3", len(inputs))
	}
	if inputs[0].Name != "Ada Lovelace" || inputs[0].Email != "ada@example.com" || inputs[0].Department != "Engineering" {
		t.Errorf("row 0 = %+v", inputs[0])
	}
	if inputs[1].Department != "" || inputs[1].StartDate != "" {
		t.Errorf("row 1 should have empty optional fields, got %+v", inputs[1])
	}
	if inputs[2].Email != "alan@example.com" {
		t.Errorf("row 2 email not trimmed: %q", inputs[2].Email)
	}
}

func TestParseProvisionCSVColumnOrder(t *testing.T) {
	csvData := `Email,Name
ada@example.com,Ada Lovelace
`
	inputs, err := ParseProvisionCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseProvisionCSV failed: %v", err)
	}
	if inputs[0].Name != "Ada Lovelace" || inputs[0].Email != "ada@example.com" {
		t.Errorf("columns not mapped by header: %+v", inputs[0])
	}
}

func TestParseProvisionCSVMissingColumns(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no email column", "name,department\nAda,Engineering\n"},
		{"no name column", "email\nada@example.com\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProvisionCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected an error for missing required column")
			}
		})
	}
}

func TestParseProvisionCSVEmptyBody(t *testing.T) {
	inputs, err := ParseProvisionCSV(strings.NewReader("name,email\n"))
	if err != nil {
		t.Fatalf("ParseProvisionCSV failed: %v", err)
	}
	if len(inputs) != 0 {
		t.Errorf("got %d rows, want 0", len(inputs))
	}
}
