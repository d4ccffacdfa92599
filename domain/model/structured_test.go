package model

import (
	"reflect"
	"testing"
)

func TestNewHeaderSection_DropsEmptyRows(t *testing.T) {
	t.Parallel()

	section := NewHeaderSection("header", [][]string{
		{"Key", "Value"},
		{"", "   ", ""},
		{},
		{"Workflow", "GenerateFASTQ"},
	})

	want := [][]string{
		{"Key", "Value"},
		{"Workflow", "GenerateFASTQ"},
	}
	if !reflect.DeepEqual(section.Rows(), want) {
		t.Errorf("Rows() = %v, want %v", section.Rows(), want)
	}
	if section.RowCount() != 2 {
		t.Errorf("RowCount() = %v, want 2", section.RowCount())
	}
	if section.Name() != "header" {
		t.Errorf("Name() = %v, want header", section.Name())
	}
}

func TestHeaderSectionKeyValues(t *testing.T) {
	t.Parallel()

	section := NewHeaderSection("settings", [][]string{
		{"Adapter", "ATCG"},
		{"", "Padded", "Value", ""},
		{"KeyOnly"},
		{"A", "B", "C"},
		{"Adapter", "GGTT"},
	})

	kv := section.KeyValues()
	if kv.Len() != 2 {
		t.Fatalf("KeyValues().Len() = %v, want 2", kv.Len())
	}
	if value, ok := kv.Get("adapter"); !ok || value != "GGTT" {
		t.Errorf("Get(adapter) = %v, %v; want last duplicate to win", value, ok)
	}
	if value, ok := kv.Get("Padded"); !ok || value != "Value" {
		t.Errorf("Get(Padded) = %v, %v; want padded pairs to project", value, ok)
	}
	if _, ok := kv.Get("KeyOnly"); ok {
		t.Error("key-only rows must not project")
	}
	if _, ok := kv.Get("A"); ok {
		t.Error("rows with three meaningful cells must not project")
	}
}

func TestKeyValueCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		row       []string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"plain pair", []string{"Key", "Value"}, "Key", "Value", true},
		{"trimmed pair", []string{" Key ", " Value "}, "Key", "Value", true},
		{"padded pair", []string{"", "Key", "", "Value", ""}, "Key", "Value", true},
		{"single cell", []string{"Key"}, "", "", false},
		{"single cell padded", []string{"Key", ""}, "", "", false},
		{"three cells", []string{"a", "b", "c"}, "", "", false},
		{"empty row", nil, "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := keyValueCells(tt.row)
		if key != tt.wantKey || value != tt.wantValue || ok != tt.wantOK {
			t.Errorf("%s: keyValueCells(%v) = (%q, %q, %v), want (%q, %q, %v)",
				tt.name, tt.row, key, value, ok, tt.wantKey, tt.wantValue, tt.wantOK)
		}
	}
}

func TestHeaderSectionEqual(t *testing.T) {
	t.Parallel()

	base := NewHeaderSection("s", [][]string{{"k", "v"}})
	if !base.Equal(NewHeaderSection("s", [][]string{{"k", "v"}})) {
		t.Error("identical sections should be equal")
	}
	if base.Equal(NewHeaderSection("t", [][]string{{"k", "v"}})) {
		t.Error("sections with different names must not be equal")
	}
	if base.Equal(NewHeaderSection("s", [][]string{{"k", "w"}})) {
		t.Error("sections with different cells must not be equal")
	}
}

func TestNewDataSection(t *testing.T) {
	t.Parallel()

	headers := []string{"SampleName", "Index1"}
	index := map[string]int{"samplename": 0, "index1": 1}
	records := [][]string{{"S1", "ATCG"}}
	section := NewDataSection("samples", headers, index, records)

	if section.Name() != "samples" {
		t.Errorf("Name() = %v, want samples", section.Name())
	}
	if !reflect.DeepEqual(section.Headers(), headers) {
		t.Errorf("Headers() = %v, want %v", section.Headers(), headers)
	}
	if !reflect.DeepEqual(section.HeaderIndex(), index) {
		t.Errorf("HeaderIndex() = %v, want %v", section.HeaderIndex(), index)
	}
	if section.RecordCount() != 1 {
		t.Errorf("RecordCount() = %v, want 1", section.RecordCount())
	}
	if section.IsEmpty() {
		t.Error("IsEmpty() = true for a populated section")
	}

	// Mutations on the copies must not reach the section.
	section.Headers()[0] = "mutated"
	section.HeaderIndex()["samplename"] = 9
	section.Records()[0][0] = "mutated"
	if section.Headers()[0] != "SampleName" || section.HeaderIndex()["samplename"] != 0 || section.Records()[0][0] != "S1" {
		t.Error("DataSection shares storage with the caller")
	}
}

func TestDataSectionIsEmpty(t *testing.T) {
	t.Parallel()

	if !NewDataSection("", nil, nil, nil).IsEmpty() {
		t.Error("a section without headers and records should be empty")
	}
	if NewDataSection("", []string{"h"}, map[string]int{"h": 0}, nil).IsEmpty() {
		t.Error("a section with headers is not empty even without records")
	}
}

func TestDataSectionEqual(t *testing.T) {
	t.Parallel()

	build := func(name string, record string) DataSection {
		return NewDataSection(name, []string{"h"}, map[string]int{"h": 0}, [][]string{{record}})
	}

	if !build("data", "x").Equal(build("data", "x")) {
		t.Error("identical sections should be equal")
	}
	if build("data", "x").Equal(build("other", "x")) {
		t.Error("sections with different names must not be equal")
	}
	if build("data", "x").Equal(build("data", "y")) {
		t.Error("sections with different records must not be equal")
	}
}

func TestStructuredDocument(t *testing.T) {
	t.Parallel()

	header := NewHeaderSection("runvalues", [][]string{{"RunName", "R1"}})
	data := NewDataSection("samples", []string{"SampleName"}, map[string]int{"samplename": 0}, [][]string{{"S1"}})
	doc := NewStructuredDocument(',', SheetTypeSectioned, []HeaderSection{header}, data)

	if doc.Delimiter() != ',' {
		t.Errorf("Delimiter() = %q, want comma", doc.Delimiter())
	}
	if doc.SheetType() != SheetTypeSectioned {
		t.Errorf("SheetType() = %v, want sectioned", doc.SheetType())
	}
	if len(doc.HeaderSections()) != 1 || doc.HeaderSections()[0].Name() != "runvalues" {
		t.Errorf("HeaderSections() = %v, want the runvalues section", doc.HeaderSections())
	}
	if doc.DataSection().Name() != "samples" {
		t.Errorf("DataSection().Name() = %v, want samples", doc.DataSection().Name())
	}

	same := NewStructuredDocument(',', SheetTypeSectioned, []HeaderSection{header}, data)
	if !doc.Equal(same) {
		t.Error("identical documents should be equal")
	}
	differentData := NewStructuredDocument(',', SheetTypeSectioned, []HeaderSection{header},
		NewDataSection("samples", []string{"SampleName"}, map[string]int{"samplename": 0}, [][]string{{"S2"}}))
	if doc.Equal(differentData) {
		t.Error("documents with different records must not be equal")
	}
}
