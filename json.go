package samplesheet

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/nao1215/samplesheet/domain/model"
)

// avitiSheetJSON is the document shape MarshalAvitiJSON emits.
type avitiSheetJSON struct {
	RunValues *model.CaseInsensitiveMap `json:"run_values,omitempty"`
	Settings  []avitiSettingJSON        `json:"settings,omitempty"`
	Samples   []avitiSampleJSON         `json:"samples"`
}

type avitiSettingJSON struct {
	Name  string  `json:"name"`
	Value string  `json:"value"`
	Lane  *string `json:"lane,omitempty"`
}

type avitiSampleJSON struct {
	SampleName    string                    `json:"sample_name"`
	Index1        string                    `json:"index1"`
	Index2        string                    `json:"index2,omitempty"`
	Lane          *string                   `json:"lane,omitempty"`
	Project       *string                   `json:"project,omitempty"`
	ExternalID    *string                   `json:"external_id,omitempty"`
	Description   *string                   `json:"description,omitempty"`
	ExtraMetadata *model.CaseInsensitiveMap `json:"extra_metadata,omitempty"`
}

// illuminaSheetJSON is the document shape MarshalIlluminaV1JSON emits. The
// header flattens into one ordered object, canonical fields in their vendor
// order followed by extra metadata.
type illuminaSheetJSON struct {
	Header   *model.CaseInsensitiveMap `json:"header,omitempty"`
	Reads    []int                     `json:"reads,omitempty"`
	Settings *model.CaseInsensitiveMap `json:"settings,omitempty"`
	Samples  []illuminaSampleJSON      `json:"samples"`
}

type illuminaSampleJSON struct {
	SampleID       string                    `json:"sample_id"`
	Lane           *int                      `json:"lane,omitempty"`
	SampleName     *string                   `json:"sample_name,omitempty"`
	SamplePlate    *string                   `json:"sample_plate,omitempty"`
	SampleWell     *string                   `json:"sample_well,omitempty"`
	IndexPlateWell *string                   `json:"index_plate_well,omitempty"`
	InlineID       *string                   `json:"inline_id,omitempty"`
	I7IndexID      *string                   `json:"i7_index_id,omitempty"`
	Index          *string                   `json:"index,omitempty"`
	I5IndexID      *string                   `json:"i5_index_id,omitempty"`
	Index2         *string                   `json:"index2,omitempty"`
	SampleProject  *string                   `json:"sample_project,omitempty"`
	Description    *string                   `json:"description,omitempty"`
	ExtraMetadata  *model.CaseInsensitiveMap `json:"extra_metadata,omitempty"`
}

// MarshalAvitiJSON encodes the sheet as JSON. Key-value maps keep their
// insertion order; absent optional values are omitted.
func MarshalAvitiJSON(sheet *model.AvitiSampleSheet) ([]byte, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}

	doc := avitiSheetJSON{Samples: []avitiSampleJSON{}}
	if runValues := sheet.RunValues(); runValues != nil && runValues.Len() > 0 {
		doc.RunValues = runValues
	}
	for _, setting := range sheet.Settings() {
		entry := avitiSettingJSON{Name: setting.Name(), Value: setting.Value()}
		if lane, ok := setting.Lane(); ok {
			entry.Lane = &lane
		}
		doc.Settings = append(doc.Settings, entry)
	}
	for _, sample := range sheet.Samples() {
		entry := avitiSampleJSON{
			SampleName:  sample.SampleName(),
			Index1:      sample.Index1(),
			Index2:      sample.Index2(),
			Lane:        optionalJSONString(sample.Lane()),
			Project:     optionalJSONString(sample.Project()),
			ExternalID:  optionalJSONString(sample.ExternalID()),
			Description: optionalJSONString(sample.Description()),
		}
		if extras := sample.ExtraMetadata(); extras.Len() > 0 {
			entry.ExtraMetadata = extras
		}
		doc.Samples = append(doc.Samples, entry)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sample sheet: %w", err)
	}
	return data, nil
}

// UnmarshalAvitiJSON decodes JSON produced by MarshalAvitiJSON back into a
// validated sheet. Sample validation failures carry the 1-based record
// number.
func UnmarshalAvitiJSON(data []byte) (*model.AvitiSampleSheet, error) {
	var doc avitiSheetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode sample sheet: %w", err)
	}

	var settings []model.AvitiSetting
	for _, entry := range doc.Settings {
		if entry.Lane != nil {
			settings = append(settings, model.NewAvitiSettingWithLane(entry.Name, entry.Value, *entry.Lane))
			continue
		}
		settings = append(settings, model.NewAvitiSetting(entry.Name, entry.Value))
	}

	samples := make([]model.AvitiSample, 0, len(doc.Samples))
	for i, entry := range doc.Samples {
		sample, err := model.NewAvitiSample(entry.SampleName, entry.Index1, entry.Index2)
		if err != nil {
			return nil, stampRecordNumber(err, i+1)
		}
		if entry.Lane != nil {
			sample = sample.WithLane(*entry.Lane)
		}
		if entry.Project != nil {
			sample = sample.WithProject(*entry.Project)
		}
		if entry.ExternalID != nil {
			sample = sample.WithExternalID(*entry.ExternalID)
		}
		if entry.Description != nil {
			sample = sample.WithDescription(*entry.Description)
		}
		if entry.ExtraMetadata != nil {
			entry.ExtraMetadata.Range(func(key, value string) bool {
				sample = sample.WithExtraMetadata(key, value)
				return true
			})
		}
		samples = append(samples, sample)
	}

	return model.NewAvitiSampleSheet(doc.RunValues, settings, samples), nil
}

// MarshalIlluminaV1JSON encodes the sheet as JSON. Key-value maps keep their
// insertion order; absent optional values are omitted.
func MarshalIlluminaV1JSON(sheet *model.IlluminaV1SampleSheet) ([]byte, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}

	doc := illuminaSheetJSON{Samples: []illuminaSampleJSON{}, Reads: sheet.Reads()}
	if rows := illuminaHeaderRows(sheet.Header()); len(rows) > 0 {
		header := model.NewCaseInsensitiveMap()
		for _, row := range rows {
			header.Set(row[0], row[1])
		}
		doc.Header = header
	}
	if settings := sheet.Settings(); settings != nil && settings.Len() > 0 {
		doc.Settings = settings
	}
	for _, sample := range sheet.Samples() {
		entry := illuminaSampleJSON{
			SampleID:       sample.SampleID(),
			Lane:           optionalJSONInt(sample.Lane()),
			SampleName:     optionalJSONString(sample.SampleName()),
			SamplePlate:    optionalJSONString(sample.SamplePlate()),
			SampleWell:     optionalJSONString(sample.SampleWell()),
			IndexPlateWell: optionalJSONString(sample.IndexPlateWell()),
			InlineID:       optionalJSONString(sample.InlineID()),
			I7IndexID:      optionalJSONString(sample.I7IndexID()),
			Index:          optionalJSONString(sample.Index()),
			I5IndexID:      optionalJSONString(sample.I5IndexID()),
			Index2:         optionalJSONString(sample.Index2()),
			SampleProject:  optionalJSONString(sample.SampleProject()),
			Description:    optionalJSONString(sample.Description()),
		}
		if extras := sample.ExtraMetadata(); extras.Len() > 0 {
			entry.ExtraMetadata = extras
		}
		doc.Samples = append(doc.Samples, entry)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sample sheet: %w", err)
	}
	return data, nil
}

// UnmarshalIlluminaV1JSON decodes JSON produced by MarshalIlluminaV1JSON back
// into a validated sheet. Sample validation failures carry the 1-based
// record number; read lengths are checked against the [1, 1000] range.
func UnmarshalIlluminaV1JSON(data []byte) (*model.IlluminaV1SampleSheet, error) {
	var doc illuminaSheetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode sample sheet: %w", err)
	}

	var header *model.IlluminaHeader
	if doc.Header != nil {
		built := model.NewIlluminaHeader()
		doc.Header.Range(func(key, value string) bool {
			built = built.WithField(key, value)
			return true
		})
		header = &built
	}

	samples := make([]model.IlluminaSample, 0, len(doc.Samples))
	for i, entry := range doc.Samples {
		sample, err := model.NewIlluminaSample(entry.SampleID)
		if err != nil {
			return nil, stampRecordNumber(err, i+1)
		}
		if entry.Lane != nil {
			sample = sample.WithLane(*entry.Lane)
		}
		if entry.SampleName != nil {
			sample = sample.WithSampleName(*entry.SampleName)
		}
		if entry.SamplePlate != nil {
			sample = sample.WithSamplePlate(*entry.SamplePlate)
		}
		if entry.SampleWell != nil {
			sample = sample.WithSampleWell(*entry.SampleWell)
		}
		if entry.IndexPlateWell != nil {
			sample = sample.WithIndexPlateWell(*entry.IndexPlateWell)
		}
		if entry.InlineID != nil {
			sample = sample.WithInlineID(*entry.InlineID)
		}
		if entry.I7IndexID != nil {
			sample = sample.WithI7IndexID(*entry.I7IndexID)
		}
		if entry.Index != nil {
			sample = sample.WithIndex(*entry.Index)
		}
		if entry.I5IndexID != nil {
			sample = sample.WithI5IndexID(*entry.I5IndexID)
		}
		if entry.Index2 != nil {
			sample = sample.WithIndex2(*entry.Index2)
		}
		if entry.SampleProject != nil {
			sample = sample.WithSampleProject(*entry.SampleProject)
		}
		if entry.Description != nil {
			sample = sample.WithDescription(*entry.Description)
		}
		if entry.ExtraMetadata != nil {
			entry.ExtraMetadata.Range(func(key, value string) bool {
				sample = sample.WithExtraMetadata(key, value)
				return true
			})
		}
		if err := sample.Validate(); err != nil {
			return nil, stampRecordNumber(err, i+1)
		}
		samples = append(samples, sample)
	}

	sheet := model.NewIlluminaV1SampleSheet(header, nil, doc.Settings, samples)
	if doc.Reads != nil {
		updated, err := sheet.WithReadsUpdated(doc.Reads)
		if err != nil {
			return nil, err
		}
		sheet = updated
	}
	return sheet, nil
}

// optionalJSONString converts a present-flagged accessor result into an
// optional JSON field.
func optionalJSONString(value string, ok bool) *string {
	if !ok {
		return nil
	}
	return &value
}

// optionalJSONInt converts a present-flagged accessor result into an
// optional JSON field.
func optionalJSONInt(value int, ok bool) *int {
	if !ok {
		return nil
	}
	return &value
}
