package model

import (
	"fmt"
	"unicode"
)

// AvitiSample represents a single sample row of an AVITI sample sheet.
// Instances are immutable; use the With methods to derive modified copies.
type AvitiSample struct {
	// sampleName is the required value from the SampleName column.
	sampleName string
	// index1 is the required value from the Index1 column. It may contain
	// composite indices separated by +.
	index1 string
	// index2 is the value from the Index2 column. Unlike the other optional
	// fields it is required-but-possibly-empty, so absence is the empty
	// string rather than a missing value.
	index2 string
	// Optional columns.
	lane        *string
	project     *string
	externalID  *string
	description *string
	// extraMetadata holds values from unrecognized columns.
	extraMetadata *CaseInsensitiveMap
}

// NewAvitiSample create new AvitiSample. The sample name must be non-empty,
// index1 must be a well-formed index sequence, and index2 must be either
// empty or well-formed.
func NewAvitiSample(sampleName, index1, index2 string) (AvitiSample, error) {
	s := AvitiSample{
		sampleName:    trimCell(sampleName),
		index1:        trimCell(index1),
		index2:        trimCell(index2),
		extraMetadata: NewCaseInsensitiveMap(),
	}
	if err := s.Validate(); err != nil {
		return AvitiSample{}, err
	}
	return s, nil
}

// Validate checks the sample against the AVITI field rules.
func (s AvitiSample) Validate() error {
	if s.sampleName == "" {
		return newMissingFieldError(0, "SampleName")
	}
	if s.index1 == "" {
		return newMissingFieldError(0, "Index1")
	}
	if err := validateIndexSequence("Index1", s.index1); err != nil {
		return err
	}
	if s.index2 != "" {
		if err := validateIndexSequence("Index2", s.index2); err != nil {
			return err
		}
	}
	return nil
}

// validateIndexSequence checks one index column value. Composite indices are
// split on + and every part must be non-empty and contain only nucleotide
// letters, alphanumerics, underscore, or hyphen.
func validateIndexSequence(field, value string) error {
	start := 0
	for i := 0; i <= len(value); i++ {
		if i < len(value) && value[i] != '+' {
			continue
		}
		part := trimCell(value[start:i])
		if part == "" {
			return &ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("empty part in composite index %q", value),
			}
		}
		for _, r := range part {
			if !isIndexRune(r) {
				return &ValidationError{
					Field:  field,
					Reason: fmt.Sprintf("invalid character %q in index part %q", r, part),
				}
			}
		}
		start = i + 1
	}
	return nil
}

// isIndexRune reports whether r may occur in an index sequence part.
func isIndexRune(r rune) bool {
	switch r {
	case 'A', 'T', 'C', 'G', 'N', 'a', 't', 'c', 'g', 'n', '_', '-':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SampleName return the sample name.
func (s AvitiSample) SampleName() string {
	return s.sampleName
}

// Index1 return the first index sequence.
func (s AvitiSample) Index1() string {
	return s.index1
}

// Index2 return the second index sequence, "" when unset.
func (s AvitiSample) Index2() string {
	return s.index2
}

// Lane return the lane value and whether it is set.
func (s AvitiSample) Lane() (string, bool) {
	return optionalValue(s.lane)
}

// Project return the project value and whether it is set.
func (s AvitiSample) Project() (string, bool) {
	return optionalValue(s.project)
}

// ExternalID return the external ID value and whether it is set.
func (s AvitiSample) ExternalID() (string, bool) {
	return optionalValue(s.externalID)
}

// Description return the description value and whether it is set.
func (s AvitiSample) Description() (string, bool) {
	return optionalValue(s.description)
}

// ExtraMetadata return a copy of the unrecognized-column values.
func (s AvitiSample) ExtraMetadata() *CaseInsensitiveMap {
	if s.extraMetadata == nil {
		return NewCaseInsensitiveMap()
	}
	return s.extraMetadata.Clone()
}

// optionalValue unwraps an optional field.
func optionalValue(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// stringPtr returns a pointer to a copy of v.
func stringPtr(v string) *string {
	return &v
}

// WithLane returns a copy of the sample with the lane set.
func (s AvitiSample) WithLane(lane string) AvitiSample {
	s.lane = stringPtr(lane)
	return s
}

// WithProject returns a copy of the sample with the project set.
func (s AvitiSample) WithProject(project string) AvitiSample {
	s.project = stringPtr(project)
	return s
}

// WithExternalID returns a copy of the sample with the external ID set.
func (s AvitiSample) WithExternalID(externalID string) AvitiSample {
	s.externalID = stringPtr(externalID)
	return s
}

// WithDescription returns a copy of the sample with the description set.
func (s AvitiSample) WithDescription(description string) AvitiSample {
	s.description = stringPtr(description)
	return s
}

// WithIndex1 returns a copy of the sample with index1 replaced. The new
// value is validated.
func (s AvitiSample) WithIndex1(index1 string) (AvitiSample, error) {
	s.index1 = trimCell(index1)
	if err := s.Validate(); err != nil {
		return AvitiSample{}, err
	}
	return s, nil
}

// WithIndex2 returns a copy of the sample with index2 replaced. The new
// value is validated; empty is allowed.
func (s AvitiSample) WithIndex2(index2 string) (AvitiSample, error) {
	s.index2 = trimCell(index2)
	if err := s.Validate(); err != nil {
		return AvitiSample{}, err
	}
	return s, nil
}

// WithExtraMetadata returns a copy of the sample with one extra-metadata
// entry added or overwritten.
func (s AvitiSample) WithExtraMetadata(key, value string) AvitiSample {
	meta := s.ExtraMetadata()
	meta.Set(key, value)
	s.extraMetadata = meta
	return s
}

// Equal compare AvitiSample.
func (s AvitiSample) Equal(s2 AvitiSample) bool {
	if s.sampleName != s2.sampleName || s.index1 != s2.index1 || s.index2 != s2.index2 {
		return false
	}
	if !optionalEqual(s.lane, s2.lane) ||
		!optionalEqual(s.project, s2.project) ||
		!optionalEqual(s.externalID, s2.externalID) ||
		!optionalEqual(s.description, s2.description) {
		return false
	}
	return s.ExtraMetadata().Equal(s2.ExtraMetadata())
}

// optionalEqual compare two optional fields by value.
func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// AvitiSetting represents one entry of the AVITI Settings section. A setting
// may be scoped to one or more lanes via the lane specification (for example
// "1" or "1+2"); without a lane it applies to the whole run.
type AvitiSetting struct {
	name  string
	value string
	lane  *string
}

// NewAvitiSetting create new AvitiSetting without a lane scope.
func NewAvitiSetting(name, value string) AvitiSetting {
	return AvitiSetting{name: trimCell(name), value: trimCell(value)}
}

// NewAvitiSettingWithLane create new AvitiSetting scoped to a lane
// specification.
func NewAvitiSettingWithLane(name, value, lane string) AvitiSetting {
	return AvitiSetting{
		name:  trimCell(name),
		value: trimCell(value),
		lane:  stringPtr(trimCell(lane)),
	}
}

// Name return the setting name.
func (s AvitiSetting) Name() string {
	return s.name
}

// Value return the setting value.
func (s AvitiSetting) Value() string {
	return s.value
}

// Lane return the lane specification and whether the setting is lane-scoped.
func (s AvitiSetting) Lane() (string, bool) {
	return optionalValue(s.lane)
}

// Equal compare AvitiSetting.
func (s AvitiSetting) Equal(s2 AvitiSetting) bool {
	return s.name == s2.name && s.value == s2.value && optionalEqual(s.lane, s2.lane)
}

// AvitiSampleSheet represents an AVITI sample sheet, officially known as a
// Sequencing Manifest. A minimal sheet looks as follows:
//
//	[RunValues]
//	KeyName,Value
//	[Settings]
//	SettingName,Value
//	[Samples]
//	SampleName,Index1,Index2
//
// The extended form adds the optional sample columns:
//
//	[Samples]
//	SampleName,Index1,Index2,Lane,Project,ExternalId,Description
//
// Sheets are immutable. Use the With methods to derive modified copies, or
// AvitiSampleSheetBuilder for staged construction.
type AvitiSampleSheet struct {
	// runValues is the RunValues section, nil when absent.
	runValues *CaseInsensitiveMap
	// settings is the Settings section, nil when absent.
	settings []AvitiSetting
	// samples is the Samples section.
	samples []AvitiSample
}

// NewAvitiSampleSheet create new AvitiSampleSheet. Pass nil for runValues or
// settings to mark the section absent. All inputs are copied.
func NewAvitiSampleSheet(runValues *CaseInsensitiveMap, settings []AvitiSetting, samples []AvitiSample) *AvitiSampleSheet {
	sheet := &AvitiSampleSheet{
		samples: make([]AvitiSample, len(samples)),
	}
	copy(sheet.samples, samples)
	if runValues != nil {
		sheet.runValues = runValues.Clone()
	}
	if settings != nil {
		sheet.settings = make([]AvitiSetting, len(settings))
		copy(sheet.settings, settings)
	}
	return sheet
}

// RunValues return a copy of the RunValues section, nil when absent.
func (t *AvitiSampleSheet) RunValues() *CaseInsensitiveMap {
	if t.runValues == nil {
		return nil
	}
	return t.runValues.Clone()
}

// Settings return a copy of the Settings section, nil when absent.
func (t *AvitiSampleSheet) Settings() []AvitiSetting {
	if t.settings == nil {
		return nil
	}
	dup := make([]AvitiSetting, len(t.settings))
	copy(dup, t.settings)
	return dup
}

// Samples return a copy of the sample list.
func (t *AvitiSampleSheet) Samples() []AvitiSample {
	dup := make([]AvitiSample, len(t.samples))
	copy(dup, t.samples)
	return dup
}

// SampleCount returns the number of samples.
func (t *AvitiSampleSheet) SampleCount() int {
	return len(t.samples)
}

// Equal compare AvitiSampleSheet by observable values.
func (t *AvitiSampleSheet) Equal(t2 *AvitiSampleSheet) bool {
	if t == nil || t2 == nil {
		return t == t2
	}
	if (t.runValues == nil) != (t2.runValues == nil) {
		return false
	}
	if t.runValues != nil && !t.runValues.Equal(t2.runValues) {
		return false
	}
	if (t.settings == nil) != (t2.settings == nil) {
		return false
	}
	if len(t.settings) != len(t2.settings) {
		return false
	}
	for i, setting := range t.settings {
		if !setting.Equal(t2.settings[i]) {
			return false
		}
	}
	if len(t.samples) != len(t2.samples) {
		return false
	}
	for i, sample := range t.samples {
		if !sample.Equal(t2.samples[i]) {
			return false
		}
	}
	return true
}

// WithSampleAdded returns a new sheet with the sample appended.
func (t *AvitiSampleSheet) WithSampleAdded(sample AvitiSample) *AvitiSampleSheet {
	samples := t.Samples()
	samples = append(samples, sample)
	return &AvitiSampleSheet{
		runValues: t.runValues,
		settings:  t.settings,
		samples:   samples,
	}
}

// WithSampleRemoved returns a new sheet with the named sample removed.
func (t *AvitiSampleSheet) WithSampleRemoved(sampleName string) (*AvitiSampleSheet, error) {
	samples := make([]AvitiSample, 0, len(t.samples))
	found := false
	for _, sample := range t.samples {
		if !found && sample.SampleName() == sampleName {
			found = true
			continue
		}
		samples = append(samples, sample)
	}
	if !found {
		return nil, fmt.Errorf("no sample found with name %q: %w", sampleName, ErrSampleNotFound)
	}
	return &AvitiSampleSheet{
		runValues: t.runValues,
		settings:  t.settings,
		samples:   samples,
	}, nil
}

// WithSampleModified returns a new sheet with the named sample replaced by
// modify's result.
func (t *AvitiSampleSheet) WithSampleModified(sampleName string, modify func(AvitiSample) AvitiSample) (*AvitiSampleSheet, error) {
	samples := t.Samples()
	found := false
	for i, sample := range samples {
		if sample.SampleName() == sampleName {
			samples[i] = modify(sample)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no sample found with name %q: %w", sampleName, ErrSampleNotFound)
	}
	return &AvitiSampleSheet{
		runValues: t.runValues,
		settings:  t.settings,
		samples:   samples,
	}, nil
}

// WithSamplesFiltered returns a new sheet keeping only samples for which
// keep returns true.
func (t *AvitiSampleSheet) WithSamplesFiltered(keep func(AvitiSample) bool) *AvitiSampleSheet {
	samples := make([]AvitiSample, 0, len(t.samples))
	for _, sample := range t.samples {
		if keep(sample) {
			samples = append(samples, sample)
		}
	}
	return &AvitiSampleSheet{
		runValues: t.runValues,
		settings:  t.settings,
		samples:   samples,
	}
}

// WithRunValueAdded returns a new sheet with one run value added or
// overwritten. A sheet without a RunValues section gains one.
func (t *AvitiSampleSheet) WithRunValueAdded(key, value string) *AvitiSampleSheet {
	runValues := t.RunValues()
	if runValues == nil {
		runValues = NewCaseInsensitiveMap()
	}
	runValues.Set(key, value)
	return &AvitiSampleSheet{
		runValues: runValues,
		settings:  t.settings,
		samples:   t.samples,
	}
}

// WithRunValuesUpdated returns a new sheet with all entries of updates
// applied in their insertion order.
func (t *AvitiSampleSheet) WithRunValuesUpdated(updates *CaseInsensitiveMap) *AvitiSampleSheet {
	runValues := t.RunValues()
	if runValues == nil {
		runValues = NewCaseInsensitiveMap()
	}
	if updates != nil {
		updates.Range(func(key, value string) bool {
			runValues.Set(key, value)
			return true
		})
	}
	return &AvitiSampleSheet{
		runValues: runValues,
		settings:  t.settings,
		samples:   t.samples,
	}
}

// WithSettingAdded returns a new sheet with the setting appended. A sheet
// without a Settings section gains one.
func (t *AvitiSampleSheet) WithSettingAdded(setting AvitiSetting) *AvitiSampleSheet {
	settings := t.Settings()
	settings = append(settings, setting)
	return &AvitiSampleSheet{
		runValues: t.runValues,
		settings:  settings,
		samples:   t.samples,
	}
}
