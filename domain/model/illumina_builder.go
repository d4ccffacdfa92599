package model

import "fmt"

// IlluminaV1SampleSheetBuilder is a mutable staging area for constructing
// IlluminaV1SampleSheet values. All mutators return the builder for
// chaining; lookup failures are recorded and reported by Build. The builder
// is not safe for concurrent use.
//
// Example:
//
//	sample, err := model.NewIlluminaSample("Sample1")
//	if err != nil {
//		return err
//	}
//	sheet, err := model.NewIlluminaV1SampleSheetBuilder().
//		SetHeader(model.NewIlluminaHeader().WithField("Experiment Name", "Exp001")).
//		SetReads([]int{151, 151}).
//		AddSample(sample.WithIndex("ATCG")).
//		Build()
type IlluminaV1SampleSheetBuilder struct {
	header   *IlluminaHeader
	reads    []int
	settings *CaseInsensitiveMap
	samples  []IlluminaSample
	err      error
}

// NewIlluminaV1SampleSheetBuilder create new empty
// IlluminaV1SampleSheetBuilder.
func NewIlluminaV1SampleSheetBuilder() *IlluminaV1SampleSheetBuilder {
	return &IlluminaV1SampleSheetBuilder{
		samples: []IlluminaSample{},
	}
}

// NewIlluminaV1SampleSheetBuilderFromSheet create new builder seeded with
// the contents of an existing sheet.
func NewIlluminaV1SampleSheetBuilderFromSheet(sheet *IlluminaV1SampleSheet) *IlluminaV1SampleSheetBuilder {
	return &IlluminaV1SampleSheetBuilder{
		header:   sheet.Header(),
		reads:    sheet.Reads(),
		settings: sheet.Settings(),
		samples:  sheet.Samples(),
	}
}

// stageErr records the first error hit while staging.
func (b *IlluminaV1SampleSheetBuilder) stageErr(err error) *IlluminaV1SampleSheetBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// SetHeader stages the Header section, replacing any previous one.
func (b *IlluminaV1SampleSheetBuilder) SetHeader(header IlluminaHeader) *IlluminaV1SampleSheetBuilder {
	b.header = &header
	return b
}

// UpdateHeaderField sets one field of the staged header. Unknown field names
// are stored in the header's extraMetadata. A header must have been staged
// first.
func (b *IlluminaV1SampleSheetBuilder) UpdateHeaderField(name, value string) *IlluminaV1SampleSheetBuilder {
	if b.header == nil {
		return b.stageErr(ErrNoHeader)
	}
	header := b.header.WithField(name, value)
	b.header = &header
	return b
}

// SetReads stages the Reads section, replacing any previous one. Passing nil
// marks the section absent.
func (b *IlluminaV1SampleSheetBuilder) SetReads(reads []int) *IlluminaV1SampleSheetBuilder {
	b.reads = copyReadLengths(reads)
	return b
}

// UpdateReads replaces the staged read lengths. Reads must have been staged
// first.
func (b *IlluminaV1SampleSheetBuilder) UpdateReads(reads []int) *IlluminaV1SampleSheetBuilder {
	if b.reads == nil {
		return b.stageErr(ErrNoReads)
	}
	b.reads = copyReadLengths(reads)
	if b.reads == nil {
		b.reads = []int{}
	}
	return b
}

// SetSettings stages the Settings section, replacing any previous one.
// Passing nil marks the section absent.
func (b *IlluminaV1SampleSheetBuilder) SetSettings(settings *CaseInsensitiveMap) *IlluminaV1SampleSheetBuilder {
	if settings == nil {
		b.settings = nil
		return b
	}
	b.settings = settings.Clone()
	return b
}

// UpdateSettingsField adds or overwrites one settings entry. Settings must
// have been staged first.
func (b *IlluminaV1SampleSheetBuilder) UpdateSettingsField(name, value string) *IlluminaV1SampleSheetBuilder {
	if b.settings == nil {
		return b.stageErr(ErrNoSettings)
	}
	b.settings.Set(name, value)
	return b
}

// AddSample stages one sample.
func (b *IlluminaV1SampleSheetBuilder) AddSample(sample IlluminaSample) *IlluminaV1SampleSheetBuilder {
	b.samples = append(b.samples, sample)
	return b
}

// AddSamples stages multiple samples.
func (b *IlluminaV1SampleSheetBuilder) AddSamples(samples []IlluminaSample) *IlluminaV1SampleSheetBuilder {
	b.samples = append(b.samples, samples...)
	return b
}

// UpdateSampleByID sets one field of the first staged sample with the given
// ID. Unknown field names are stored in the sample's extraMetadata.
func (b *IlluminaV1SampleSheetBuilder) UpdateSampleByID(sampleID, field, value string) *IlluminaV1SampleSheetBuilder {
	for i, staged := range b.samples {
		if staged.SampleID() == sampleID {
			updated, err := staged.WithField(field, value)
			if err != nil {
				return b.stageErr(err)
			}
			b.samples[i] = updated
			return b
		}
	}
	return b.stageErr(fmt.Errorf("no sample found with ID %q: %w", sampleID, ErrSampleNotFound))
}

// UpdateSampleByIndex sets one field of the staged sample at the given
// position. Unknown field names are stored in the sample's extraMetadata.
func (b *IlluminaV1SampleSheetBuilder) UpdateSampleByIndex(index int, field, value string) *IlluminaV1SampleSheetBuilder {
	if index < 0 || index >= len(b.samples) {
		return b.stageErr(fmt.Errorf("sample index %d is out of range: %w", index, ErrSampleIndexOutOfRange))
	}
	updated, err := b.samples[index].WithField(field, value)
	if err != nil {
		return b.stageErr(err)
	}
	b.samples[index] = updated
	return b
}

// RemoveSampleByID removes the first staged sample with the given ID.
func (b *IlluminaV1SampleSheetBuilder) RemoveSampleByID(sampleID string) *IlluminaV1SampleSheetBuilder {
	for i, staged := range b.samples {
		if staged.SampleID() == sampleID {
			b.samples = append(b.samples[:i], b.samples[i+1:]...)
			return b
		}
	}
	return b.stageErr(fmt.Errorf("no sample found with ID %q: %w", sampleID, ErrSampleNotFound))
}

// RemoveSampleByIndex removes the staged sample at the given position.
func (b *IlluminaV1SampleSheetBuilder) RemoveSampleByIndex(index int) *IlluminaV1SampleSheetBuilder {
	if index < 0 || index >= len(b.samples) {
		return b.stageErr(fmt.Errorf("sample index %d is out of range: %w", index, ErrSampleIndexOutOfRange))
	}
	b.samples = append(b.samples[:index], b.samples[index+1:]...)
	return b
}

// RemoveSamplesByProject removes every staged sample belonging to the
// project. Removing zero samples is not an error.
func (b *IlluminaV1SampleSheetBuilder) RemoveSamplesByProject(project string) *IlluminaV1SampleSheetBuilder {
	kept := make([]IlluminaSample, 0, len(b.samples))
	for _, staged := range b.samples {
		if p, ok := staged.SampleProject(); ok && p == project {
			continue
		}
		kept = append(kept, staged)
	}
	b.samples = kept
	return b
}

// ClearSamples removes all staged samples.
func (b *IlluminaV1SampleSheetBuilder) ClearSamples() *IlluminaV1SampleSheetBuilder {
	b.samples = []IlluminaSample{}
	return b
}

// Build validates the staged state and assembles an immutable sheet. The
// first error recorded by a mutator, an out-of-range read length, or an
// invalid sample fails the build. The builder keeps its staged state and no
// built sheet aliases it.
func (b *IlluminaV1SampleSheetBuilder) Build() (*IlluminaV1SampleSheet, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validateReadLengths(b.reads); err != nil {
		return nil, err
	}
	for i, sample := range b.samples {
		if err := sample.Validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
	}
	return NewIlluminaV1SampleSheet(b.header, b.reads, b.settings, b.samples), nil
}
