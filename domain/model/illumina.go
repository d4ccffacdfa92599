package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeFieldName folds a header key or column name for dispatch lookup.
// Lower-casing and dropping spaces and underscores lets "Experiment Name",
// "experiment_name", and "ExperimentName" all address the same field.
func NormalizeFieldName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// IlluminaHeader represents the [Header] section of an Illumina v1 sample
// sheet. All fields are optional; keys that match none of them are kept in
// extraMetadata. Instances are immutable; use WithField to derive modified
// copies.
type IlluminaHeader struct {
	iemFileVersion   *string
	investigatorName *string
	experimentName   *string
	date             *string
	workflow         *string
	application      *string
	instrumentType   *string
	assay            *string
	indexAdapters    *string
	description      *string
	chemistry        *string
	run              *string
	// extraMetadata holds values for unrecognized header keys.
	extraMetadata *CaseInsensitiveMap
}

// illuminaHeaderSetters dispatches normalized header keys to field setters.
var illuminaHeaderSetters = map[string]func(h *IlluminaHeader, value string){
	"iemfileversion":   func(h *IlluminaHeader, v string) { h.iemFileVersion = &v },
	"investigatorname": func(h *IlluminaHeader, v string) { h.investigatorName = &v },
	"experimentname":   func(h *IlluminaHeader, v string) { h.experimentName = &v },
	"date":             func(h *IlluminaHeader, v string) { h.date = &v },
	"workflow":         func(h *IlluminaHeader, v string) { h.workflow = &v },
	"application":      func(h *IlluminaHeader, v string) { h.application = &v },
	"instrumenttype":   func(h *IlluminaHeader, v string) { h.instrumentType = &v },
	"assay":            func(h *IlluminaHeader, v string) { h.assay = &v },
	"indexadapters":    func(h *IlluminaHeader, v string) { h.indexAdapters = &v },
	"description":      func(h *IlluminaHeader, v string) { h.description = &v },
	"chemistry":        func(h *IlluminaHeader, v string) { h.chemistry = &v },
	"run":              func(h *IlluminaHeader, v string) { h.run = &v },
}

// NewIlluminaHeader create new empty IlluminaHeader.
func NewIlluminaHeader() IlluminaHeader {
	return IlluminaHeader{
		extraMetadata: NewCaseInsensitiveMap(),
	}
}

// WithField returns a copy of the header with the named field set. Known
// field names match case-insensitively and ignore spaces and underscores,
// so "Experiment Name" and "experiment_name" both set the experiment name.
// Unknown names are stored in extraMetadata instead of failing.
func (h IlluminaHeader) WithField(name, value string) IlluminaHeader {
	if setter, ok := illuminaHeaderSetters[NormalizeFieldName(name)]; ok {
		setter(&h, value)
		return h
	}
	extra := NewCaseInsensitiveMap()
	if h.extraMetadata != nil {
		extra = h.extraMetadata.Clone()
	}
	extra.Set(name, value)
	h.extraMetadata = extra
	return h
}

// IEMFileVersion returns the IEMFileVersion field and whether it is set.
func (h IlluminaHeader) IEMFileVersion() (string, bool) {
	return optionalValue(h.iemFileVersion)
}

// InvestigatorName returns the Investigator Name field and whether it is set.
func (h IlluminaHeader) InvestigatorName() (string, bool) {
	return optionalValue(h.investigatorName)
}

// ExperimentName returns the Experiment Name field and whether it is set.
func (h IlluminaHeader) ExperimentName() (string, bool) {
	return optionalValue(h.experimentName)
}

// Date returns the Date field and whether it is set.
func (h IlluminaHeader) Date() (string, bool) {
	return optionalValue(h.date)
}

// Workflow returns the Workflow field and whether it is set.
func (h IlluminaHeader) Workflow() (string, bool) {
	return optionalValue(h.workflow)
}

// Application returns the Application field and whether it is set.
func (h IlluminaHeader) Application() (string, bool) {
	return optionalValue(h.application)
}

// InstrumentType returns the Instrument Type field and whether it is set.
func (h IlluminaHeader) InstrumentType() (string, bool) {
	return optionalValue(h.instrumentType)
}

// Assay returns the Assay field and whether it is set.
func (h IlluminaHeader) Assay() (string, bool) {
	return optionalValue(h.assay)
}

// IndexAdapters returns the Index Adapters field and whether it is set.
func (h IlluminaHeader) IndexAdapters() (string, bool) {
	return optionalValue(h.indexAdapters)
}

// Description returns the Description field and whether it is set.
func (h IlluminaHeader) Description() (string, bool) {
	return optionalValue(h.description)
}

// Chemistry returns the Chemistry field and whether it is set.
func (h IlluminaHeader) Chemistry() (string, bool) {
	return optionalValue(h.chemistry)
}

// Run returns the Run field and whether it is set.
func (h IlluminaHeader) Run() (string, bool) {
	return optionalValue(h.run)
}

// ExtraMetadata return a copy of the unrecognized header keys.
func (h IlluminaHeader) ExtraMetadata() *CaseInsensitiveMap {
	if h.extraMetadata == nil {
		return NewCaseInsensitiveMap()
	}
	return h.extraMetadata.Clone()
}

// Equal compare IlluminaHeader by field values.
func (h IlluminaHeader) Equal(h2 IlluminaHeader) bool {
	return optionalEqual(h.iemFileVersion, h2.iemFileVersion) &&
		optionalEqual(h.investigatorName, h2.investigatorName) &&
		optionalEqual(h.experimentName, h2.experimentName) &&
		optionalEqual(h.date, h2.date) &&
		optionalEqual(h.workflow, h2.workflow) &&
		optionalEqual(h.application, h2.application) &&
		optionalEqual(h.instrumentType, h2.instrumentType) &&
		optionalEqual(h.assay, h2.assay) &&
		optionalEqual(h.indexAdapters, h2.indexAdapters) &&
		optionalEqual(h.description, h2.description) &&
		optionalEqual(h.chemistry, h2.chemistry) &&
		optionalEqual(h.run, h2.run) &&
		h.extraMetadata.Equal(h2.extraMetadata)
}

// IlluminaSample represents a single record of the [Data] section. Only the
// Sample_ID column is required; every other standard column is optional and
// unrecognized columns land in extraMetadata. Instances are immutable; use
// the With methods to derive modified copies.
type IlluminaSample struct {
	// sampleID is the required value from the Sample_ID column.
	sampleID string
	// lane is the optional Lane column, parsed as an integer.
	lane *int
	// Optional standard columns.
	sampleName     *string
	samplePlate    *string
	sampleWell     *string
	indexPlateWell *string
	inlineID       *string
	i7IndexID      *string
	index          *string
	i5IndexID      *string
	index2         *string
	sampleProject  *string
	description    *string
	// extraMetadata holds values from unrecognized columns.
	extraMetadata *CaseInsensitiveMap
}

// illuminaSampleSetters dispatches normalized column names to field setters.
// Only Sample_ID and Lane can reject a value.
var illuminaSampleSetters = map[string]func(s *IlluminaSample, value string) error{
	"sampleid": func(s *IlluminaSample, v string) error {
		v = trimCell(v)
		if v == "" {
			return newMissingFieldError(0, "Sample_ID")
		}
		s.sampleID = v
		return nil
	},
	"lane": func(s *IlluminaSample, v string) error {
		lane, err := strconv.Atoi(trimCell(v))
		if err != nil {
			return &ValidationError{Field: "Lane", Reason: fmt.Sprintf("cannot parse %q as an integer", v)}
		}
		s.lane = &lane
		return nil
	},
	"samplename":     func(s *IlluminaSample, v string) error { s.sampleName = &v; return nil },
	"sampleplate":    func(s *IlluminaSample, v string) error { s.samplePlate = &v; return nil },
	"samplewell":     func(s *IlluminaSample, v string) error { s.sampleWell = &v; return nil },
	"indexplatewell": func(s *IlluminaSample, v string) error { s.indexPlateWell = &v; return nil },
	"inlineid":       func(s *IlluminaSample, v string) error { s.inlineID = &v; return nil },
	"i7indexid":      func(s *IlluminaSample, v string) error { s.i7IndexID = &v; return nil },
	"index":          func(s *IlluminaSample, v string) error { s.index = &v; return nil },
	"i5indexid":      func(s *IlluminaSample, v string) error { s.i5IndexID = &v; return nil },
	"index2":         func(s *IlluminaSample, v string) error { s.index2 = &v; return nil },
	"sampleproject":  func(s *IlluminaSample, v string) error { s.sampleProject = &v; return nil },
	"description":    func(s *IlluminaSample, v string) error { s.description = &v; return nil },
}

// NewIlluminaSample create new IlluminaSample. The sample ID must be
// non-empty.
func NewIlluminaSample(sampleID string) (IlluminaSample, error) {
	s := IlluminaSample{
		sampleID:      trimCell(sampleID),
		extraMetadata: NewCaseInsensitiveMap(),
	}
	if err := s.Validate(); err != nil {
		return IlluminaSample{}, err
	}
	return s, nil
}

// Validate checks the sample against the Illumina v1 field rules.
func (s IlluminaSample) Validate() error {
	if s.sampleID == "" {
		return newMissingFieldError(0, "Sample_ID")
	}
	if s.lane != nil && *s.lane < 1 {
		return &ValidationError{Field: "Lane", Reason: "must be a positive integer"}
	}
	return nil
}

// SampleID returns the required Sample_ID value.
func (s IlluminaSample) SampleID() string {
	return s.sampleID
}

// Lane returns the lane number and whether it is set.
func (s IlluminaSample) Lane() (int, bool) {
	if s.lane == nil {
		return 0, false
	}
	return *s.lane, true
}

// SampleName returns the Sample_Name value and whether it is set.
func (s IlluminaSample) SampleName() (string, bool) {
	return optionalValue(s.sampleName)
}

// SamplePlate returns the Sample_Plate value and whether it is set.
func (s IlluminaSample) SamplePlate() (string, bool) {
	return optionalValue(s.samplePlate)
}

// SampleWell returns the Sample_Well value and whether it is set.
func (s IlluminaSample) SampleWell() (string, bool) {
	return optionalValue(s.sampleWell)
}

// IndexPlateWell returns the Index_Plate_Well value and whether it is set.
func (s IlluminaSample) IndexPlateWell() (string, bool) {
	return optionalValue(s.indexPlateWell)
}

// InlineID returns the Inline_ID value and whether it is set.
func (s IlluminaSample) InlineID() (string, bool) {
	return optionalValue(s.inlineID)
}

// I7IndexID returns the I7_Index_ID value and whether it is set.
func (s IlluminaSample) I7IndexID() (string, bool) {
	return optionalValue(s.i7IndexID)
}

// Index returns the index value and whether it is set.
func (s IlluminaSample) Index() (string, bool) {
	return optionalValue(s.index)
}

// I5IndexID returns the I5_Index_ID value and whether it is set.
func (s IlluminaSample) I5IndexID() (string, bool) {
	return optionalValue(s.i5IndexID)
}

// Index2 returns the index2 value and whether it is set.
func (s IlluminaSample) Index2() (string, bool) {
	return optionalValue(s.index2)
}

// SampleProject returns the Sample_Project value and whether it is set.
func (s IlluminaSample) SampleProject() (string, bool) {
	return optionalValue(s.sampleProject)
}

// Description returns the Description value and whether it is set.
func (s IlluminaSample) Description() (string, bool) {
	return optionalValue(s.description)
}

// ExtraMetadata return a copy of the unrecognized column values.
func (s IlluminaSample) ExtraMetadata() *CaseInsensitiveMap {
	if s.extraMetadata == nil {
		return NewCaseInsensitiveMap()
	}
	return s.extraMetadata.Clone()
}

// WithLane returns a copy of the sample with the lane set.
func (s IlluminaSample) WithLane(lane int) IlluminaSample {
	s.lane = &lane
	return s
}

// WithSampleName returns a copy of the sample with the sample name set.
func (s IlluminaSample) WithSampleName(sampleName string) IlluminaSample {
	s.sampleName = &sampleName
	return s
}

// WithSamplePlate returns a copy of the sample with the sample plate set.
func (s IlluminaSample) WithSamplePlate(samplePlate string) IlluminaSample {
	s.samplePlate = &samplePlate
	return s
}

// WithSampleWell returns a copy of the sample with the sample well set.
func (s IlluminaSample) WithSampleWell(sampleWell string) IlluminaSample {
	s.sampleWell = &sampleWell
	return s
}

// WithIndexPlateWell returns a copy of the sample with the index plate well
// set.
func (s IlluminaSample) WithIndexPlateWell(indexPlateWell string) IlluminaSample {
	s.indexPlateWell = &indexPlateWell
	return s
}

// WithInlineID returns a copy of the sample with the inline ID set.
func (s IlluminaSample) WithInlineID(inlineID string) IlluminaSample {
	s.inlineID = &inlineID
	return s
}

// WithI7IndexID returns a copy of the sample with the i7 index ID set.
func (s IlluminaSample) WithI7IndexID(i7IndexID string) IlluminaSample {
	s.i7IndexID = &i7IndexID
	return s
}

// WithIndex returns a copy of the sample with the index sequence set.
func (s IlluminaSample) WithIndex(index string) IlluminaSample {
	s.index = &index
	return s
}

// WithI5IndexID returns a copy of the sample with the i5 index ID set.
func (s IlluminaSample) WithI5IndexID(i5IndexID string) IlluminaSample {
	s.i5IndexID = &i5IndexID
	return s
}

// WithIndex2 returns a copy of the sample with the second index sequence
// set.
func (s IlluminaSample) WithIndex2(index2 string) IlluminaSample {
	s.index2 = &index2
	return s
}

// WithSampleProject returns a copy of the sample with the project set.
func (s IlluminaSample) WithSampleProject(sampleProject string) IlluminaSample {
	s.sampleProject = &sampleProject
	return s
}

// WithDescription returns a copy of the sample with the description set.
func (s IlluminaSample) WithDescription(description string) IlluminaSample {
	s.description = &description
	return s
}

// WithExtraMetadata returns a copy of the sample with one extra metadata
// entry added or overwritten.
func (s IlluminaSample) WithExtraMetadata(key, value string) IlluminaSample {
	extra := NewCaseInsensitiveMap()
	if s.extraMetadata != nil {
		extra = s.extraMetadata.Clone()
	}
	extra.Set(key, value)
	s.extraMetadata = extra
	return s
}

// WithField returns a copy of the sample with the named column set. Known
// column names match case-insensitively and ignore spaces and underscores.
// Unknown names are stored in extraMetadata instead of failing. Setting
// Sample_ID to an empty value or Lane to a non-integer returns a
// ValidationError.
func (s IlluminaSample) WithField(name, value string) (IlluminaSample, error) {
	if setter, ok := illuminaSampleSetters[NormalizeFieldName(name)]; ok {
		if err := setter(&s, value); err != nil {
			return IlluminaSample{}, err
		}
		return s, nil
	}
	return s.WithExtraMetadata(name, value), nil
}

// Equal compare IlluminaSample by field values.
func (s IlluminaSample) Equal(s2 IlluminaSample) bool {
	if s.sampleID != s2.sampleID {
		return false
	}
	if (s.lane == nil) != (s2.lane == nil) {
		return false
	}
	if s.lane != nil && *s.lane != *s2.lane {
		return false
	}
	return optionalEqual(s.sampleName, s2.sampleName) &&
		optionalEqual(s.samplePlate, s2.samplePlate) &&
		optionalEqual(s.sampleWell, s2.sampleWell) &&
		optionalEqual(s.indexPlateWell, s2.indexPlateWell) &&
		optionalEqual(s.inlineID, s2.inlineID) &&
		optionalEqual(s.i7IndexID, s2.i7IndexID) &&
		optionalEqual(s.index, s2.index) &&
		optionalEqual(s.i5IndexID, s2.i5IndexID) &&
		optionalEqual(s.index2, s2.index2) &&
		optionalEqual(s.sampleProject, s2.sampleProject) &&
		optionalEqual(s.description, s2.description) &&
		s.extraMetadata.Equal(s2.extraMetadata)
}

// validateReadLengths checks that every read length is within [1, 1000].
func validateReadLengths(reads []int) error {
	for _, length := range reads {
		if length < 1 || length > 1000 {
			return &ValidationError{
				Field:  "Reads",
				Reason: fmt.Sprintf("read length %d is outside [1, 1000]", length),
			}
		}
	}
	return nil
}

// copyReadLengths duplicates a read length list, keeping nil distinct from
// empty.
func copyReadLengths(reads []int) []int {
	if reads == nil {
		return nil
	}
	dup := make([]int, len(reads))
	copy(dup, reads)
	return dup
}

// IlluminaV1SampleSheet represents an Illumina v1 sample sheet. The minimal
// layout is:
//
//	[Header]
//	IEMFileVersion,5
//	Experiment Name,MyExperiment
//
//	[Reads]
//	151
//
//	[Settings]
//	Adapter,CTGTCTCTTATACACATCT
//
//	[Data]
//	Sample_ID,index
//	Sample1,ATCG
//
// The Header, Reads, and Settings sections may each be absent. Sheets are
// immutable. Use the With methods to derive modified copies, or
// IlluminaV1SampleSheetBuilder for staged construction.
type IlluminaV1SampleSheet struct {
	// header is the Header section, nil when absent.
	header *IlluminaHeader
	// reads is the list of read lengths, nil when the Reads section is
	// absent. A non-nil empty list means the section exists with no rows.
	reads []int
	// settings is the Settings section, nil when absent.
	settings *CaseInsensitiveMap
	// samples is the Data section.
	samples []IlluminaSample
}

// NewIlluminaV1SampleSheet create new IlluminaV1SampleSheet. Pass nil for
// header, reads, or settings to mark the section absent. All inputs are
// copied.
func NewIlluminaV1SampleSheet(header *IlluminaHeader, reads []int, settings *CaseInsensitiveMap, samples []IlluminaSample) *IlluminaV1SampleSheet {
	sheet := &IlluminaV1SampleSheet{
		reads:   copyReadLengths(reads),
		samples: make([]IlluminaSample, len(samples)),
	}
	copy(sheet.samples, samples)
	if header != nil {
		h := *header
		sheet.header = &h
	}
	if settings != nil {
		sheet.settings = settings.Clone()
	}
	return sheet
}

// Header return a copy of the Header section, nil when absent.
func (t *IlluminaV1SampleSheet) Header() *IlluminaHeader {
	if t.header == nil {
		return nil
	}
	h := *t.header
	return &h
}

// Reads return a copy of the read lengths, nil when the Reads section is
// absent.
func (t *IlluminaV1SampleSheet) Reads() []int {
	return copyReadLengths(t.reads)
}

// Settings return a copy of the Settings section, nil when absent.
func (t *IlluminaV1SampleSheet) Settings() *CaseInsensitiveMap {
	if t.settings == nil {
		return nil
	}
	return t.settings.Clone()
}

// Samples return a copy of the sample list.
func (t *IlluminaV1SampleSheet) Samples() []IlluminaSample {
	dup := make([]IlluminaSample, len(t.samples))
	copy(dup, t.samples)
	return dup
}

// SampleCount returns the number of samples.
func (t *IlluminaV1SampleSheet) SampleCount() int {
	return len(t.samples)
}

// Equal compare IlluminaV1SampleSheet by observable values.
func (t *IlluminaV1SampleSheet) Equal(t2 *IlluminaV1SampleSheet) bool {
	if t == nil || t2 == nil {
		return t == t2
	}
	if (t.header == nil) != (t2.header == nil) {
		return false
	}
	if t.header != nil && !t.header.Equal(*t2.header) {
		return false
	}
	if (t.reads == nil) != (t2.reads == nil) {
		return false
	}
	if len(t.reads) != len(t2.reads) {
		return false
	}
	for i, length := range t.reads {
		if length != t2.reads[i] {
			return false
		}
	}
	if (t.settings == nil) != (t2.settings == nil) {
		return false
	}
	if t.settings != nil && !t.settings.Equal(t2.settings) {
		return false
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
func (t *IlluminaV1SampleSheet) WithSampleAdded(sample IlluminaSample) *IlluminaV1SampleSheet {
	samples := t.Samples()
	samples = append(samples, sample)
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}
}

// WithSampleAddedAt returns a new sheet with the sample inserted at the
// given position. Positions outside the sample list are clamped to its
// bounds.
func (t *IlluminaV1SampleSheet) WithSampleAddedAt(index int, sample IlluminaSample) *IlluminaV1SampleSheet {
	if index < 0 {
		index = 0
	}
	if index > len(t.samples) {
		index = len(t.samples)
	}
	samples := make([]IlluminaSample, 0, len(t.samples)+1)
	samples = append(samples, t.samples[:index]...)
	samples = append(samples, sample)
	samples = append(samples, t.samples[index:]...)
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}
}

// WithSampleRemoved returns a new sheet with the first sample matching the
// ID removed.
func (t *IlluminaV1SampleSheet) WithSampleRemoved(sampleID string) (*IlluminaV1SampleSheet, error) {
	samples := make([]IlluminaSample, 0, len(t.samples))
	found := false
	for _, sample := range t.samples {
		if !found && sample.SampleID() == sampleID {
			found = true
			continue
		}
		samples = append(samples, sample)
	}
	if !found {
		return nil, fmt.Errorf("no sample found with ID %q: %w", sampleID, ErrSampleNotFound)
	}
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}, nil
}

// WithSampleRemovedAt returns a new sheet with the sample at the given
// position removed.
func (t *IlluminaV1SampleSheet) WithSampleRemovedAt(index int) (*IlluminaV1SampleSheet, error) {
	if index < 0 || index >= len(t.samples) {
		return nil, fmt.Errorf("sample index %d is out of range: %w", index, ErrSampleIndexOutOfRange)
	}
	samples := make([]IlluminaSample, 0, len(t.samples)-1)
	samples = append(samples, t.samples[:index]...)
	samples = append(samples, t.samples[index+1:]...)
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}, nil
}

// WithSampleModified returns a new sheet with the first sample matching the
// ID replaced by modify's result.
func (t *IlluminaV1SampleSheet) WithSampleModified(sampleID string, modify func(IlluminaSample) IlluminaSample) (*IlluminaV1SampleSheet, error) {
	samples := t.Samples()
	found := false
	for i, sample := range samples {
		if sample.SampleID() == sampleID {
			samples[i] = modify(sample)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no sample found with ID %q: %w", sampleID, ErrSampleNotFound)
	}
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}, nil
}

// WithSampleModifiedAt returns a new sheet with the sample at the given
// position replaced by modify's result.
func (t *IlluminaV1SampleSheet) WithSampleModifiedAt(index int, modify func(IlluminaSample) IlluminaSample) (*IlluminaV1SampleSheet, error) {
	if index < 0 || index >= len(t.samples) {
		return nil, fmt.Errorf("sample index %d is out of range: %w", index, ErrSampleIndexOutOfRange)
	}
	samples := t.Samples()
	samples[index] = modify(samples[index])
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}, nil
}

// WithSamplesFiltered returns a new sheet keeping only samples for which
// keep returns true.
func (t *IlluminaV1SampleSheet) WithSamplesFiltered(keep func(IlluminaSample) bool) *IlluminaV1SampleSheet {
	samples := make([]IlluminaSample, 0, len(t.samples))
	for _, sample := range t.samples {
		if keep(sample) {
			samples = append(samples, sample)
		}
	}
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: t.settings,
		samples:  samples,
	}
}

// WithHeaderFieldUpdated returns a new sheet with one header field set. A
// sheet without a Header section gains one. Unknown field names are stored
// in the header's extraMetadata.
func (t *IlluminaV1SampleSheet) WithHeaderFieldUpdated(name, value string) *IlluminaV1SampleSheet {
	header := NewIlluminaHeader()
	if t.header != nil {
		header = *t.header
	}
	header = header.WithField(name, value)
	return &IlluminaV1SampleSheet{
		header:   &header,
		reads:    t.reads,
		settings: t.settings,
		samples:  t.samples,
	}
}

// WithReadsUpdated returns a new sheet with the read lengths replaced. Every
// length must be within [1, 1000]. Passing nil removes the Reads section; a
// non-nil empty list keeps the section with no rows.
func (t *IlluminaV1SampleSheet) WithReadsUpdated(reads []int) (*IlluminaV1SampleSheet, error) {
	if err := validateReadLengths(reads); err != nil {
		return nil, err
	}
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    copyReadLengths(reads),
		settings: t.settings,
		samples:  t.samples,
	}, nil
}

// WithSettingsFieldUpdated returns a new sheet with one settings entry added
// or overwritten. A sheet without a Settings section gains one.
func (t *IlluminaV1SampleSheet) WithSettingsFieldUpdated(name, value string) *IlluminaV1SampleSheet {
	settings := t.Settings()
	if settings == nil {
		settings = NewCaseInsensitiveMap()
	}
	settings.Set(name, value)
	return &IlluminaV1SampleSheet{
		header:   t.header,
		reads:    t.reads,
		settings: settings,
		samples:  t.samples,
	}
}
