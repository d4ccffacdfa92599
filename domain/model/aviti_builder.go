package model

import "fmt"

// AvitiSampleSheetBuilder is a mutable staging area for constructing
// AvitiSampleSheet values. All mutators return the builder for chaining;
// lookup failures are recorded and reported by Build. The builder is not
// safe for concurrent use.
//
// Example:
//
//	sample, err := model.NewAvitiSample("Sample1", "ATCG", "")
//	if err != nil {
//		return err
//	}
//	sheet, err := model.NewAvitiSampleSheetBuilder().
//		SetRunValue("RunName", "Run001").
//		AddSetting(model.NewAvitiSetting("ReadLength", "150")).
//		AddSample(sample).
//		Build()
type AvitiSampleSheetBuilder struct {
	runValues *CaseInsensitiveMap
	settings  []AvitiSetting
	samples   []AvitiSample
	err       error
}

// NewAvitiSampleSheetBuilder create new empty AvitiSampleSheetBuilder.
func NewAvitiSampleSheetBuilder() *AvitiSampleSheetBuilder {
	return &AvitiSampleSheetBuilder{
		samples: []AvitiSample{},
	}
}

// NewAvitiSampleSheetBuilderFromSheet create new builder seeded with the
// contents of an existing sheet.
func NewAvitiSampleSheetBuilderFromSheet(sheet *AvitiSampleSheet) *AvitiSampleSheetBuilder {
	return &AvitiSampleSheetBuilder{
		runValues: sheet.RunValues(),
		settings:  sheet.Settings(),
		samples:   sheet.Samples(),
	}
}

// stageErr records the first error hit while staging.
func (b *AvitiSampleSheetBuilder) stageErr(err error) *AvitiSampleSheetBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// AddSample stages one sample.
func (b *AvitiSampleSheetBuilder) AddSample(sample AvitiSample) *AvitiSampleSheetBuilder {
	b.samples = append(b.samples, sample)
	return b
}

// AddSamples stages multiple samples.
func (b *AvitiSampleSheetBuilder) AddSamples(samples []AvitiSample) *AvitiSampleSheetBuilder {
	b.samples = append(b.samples, samples...)
	return b
}

// RemoveSample removes the first staged sample equal to sample.
func (b *AvitiSampleSheetBuilder) RemoveSample(sample AvitiSample) *AvitiSampleSheetBuilder {
	for i, staged := range b.samples {
		if staged.Equal(sample) {
			b.samples = append(b.samples[:i], b.samples[i+1:]...)
			return b
		}
	}
	return b.stageErr(ErrSampleNotFound)
}

// RemoveSampleByName removes the first staged sample with the given name.
func (b *AvitiSampleSheetBuilder) RemoveSampleByName(sampleName string) *AvitiSampleSheetBuilder {
	for i, staged := range b.samples {
		if staged.SampleName() == sampleName {
			b.samples = append(b.samples[:i], b.samples[i+1:]...)
			return b
		}
	}
	return b.stageErr(fmt.Errorf("no sample found with name %q: %w", sampleName, ErrSampleNotFound))
}

// RemoveSamplesByProject removes every staged sample belonging to the
// project. Removing zero samples is not an error.
func (b *AvitiSampleSheetBuilder) RemoveSamplesByProject(project string) *AvitiSampleSheetBuilder {
	kept := make([]AvitiSample, 0, len(b.samples))
	for _, staged := range b.samples {
		if p, ok := staged.Project(); ok && p == project {
			continue
		}
		kept = append(kept, staged)
	}
	b.samples = kept
	return b
}

// UpdateSampleByName replaces the first staged sample with the given name by
// modify's result.
func (b *AvitiSampleSheetBuilder) UpdateSampleByName(sampleName string, modify func(AvitiSample) AvitiSample) *AvitiSampleSheetBuilder {
	for i, staged := range b.samples {
		if staged.SampleName() == sampleName {
			b.samples[i] = modify(staged)
			return b
		}
	}
	return b.stageErr(fmt.Errorf("no sample found with name %q: %w", sampleName, ErrSampleNotFound))
}

// ClearSamples removes all staged samples.
func (b *AvitiSampleSheetBuilder) ClearSamples() *AvitiSampleSheetBuilder {
	b.samples = []AvitiSample{}
	return b
}

// SetRunValue stages one run value, creating the RunValues section if
// needed.
func (b *AvitiSampleSheetBuilder) SetRunValue(key, value string) *AvitiSampleSheetBuilder {
	if b.runValues == nil {
		b.runValues = NewCaseInsensitiveMap()
	}
	b.runValues.Set(key, value)
	return b
}

// SetRunValues stages all entries of values in their insertion order.
func (b *AvitiSampleSheetBuilder) SetRunValues(values *CaseInsensitiveMap) *AvitiSampleSheetBuilder {
	if values == nil {
		return b
	}
	values.Range(func(key, value string) bool {
		b.SetRunValue(key, value)
		return true
	})
	return b
}

// RemoveRunValue removes one run value by key.
func (b *AvitiSampleSheetBuilder) RemoveRunValue(key string) *AvitiSampleSheetBuilder {
	if b.runValues == nil || !b.runValues.Delete(key) {
		return b.stageErr(fmt.Errorf("no run value with key %q: %w", key, ErrKeyNotFound))
	}
	return b
}

// ClearRunValues removes the whole RunValues section.
func (b *AvitiSampleSheetBuilder) ClearRunValues() *AvitiSampleSheetBuilder {
	b.runValues = nil
	return b
}

// AddSetting stages one setting, creating the Settings section if needed.
func (b *AvitiSampleSheetBuilder) AddSetting(setting AvitiSetting) *AvitiSampleSheetBuilder {
	b.settings = append(b.settings, setting)
	return b
}

// AddSettings stages multiple settings.
func (b *AvitiSampleSheetBuilder) AddSettings(settings []AvitiSetting) *AvitiSampleSheetBuilder {
	b.settings = append(b.settings, settings...)
	return b
}

// RemoveSettingsByName removes every staged setting with the given name
// regardless of lane scope. Removing zero settings is not an error.
func (b *AvitiSampleSheetBuilder) RemoveSettingsByName(name string) *AvitiSampleSheetBuilder {
	if b.settings == nil {
		return b
	}
	kept := make([]AvitiSetting, 0, len(b.settings))
	for _, staged := range b.settings {
		if staged.Name() != name {
			kept = append(kept, staged)
		}
	}
	b.settings = kept
	return b
}

// RemoveSettingsByNameAndLane removes staged settings with the given name
// and lane specification. An empty lane matches settings without a lane
// scope.
func (b *AvitiSampleSheetBuilder) RemoveSettingsByNameAndLane(name, lane string) *AvitiSampleSheetBuilder {
	if b.settings == nil {
		return b
	}
	kept := make([]AvitiSetting, 0, len(b.settings))
	for _, staged := range b.settings {
		stagedLane, _ := staged.Lane()
		if staged.Name() == name && stagedLane == lane {
			continue
		}
		kept = append(kept, staged)
	}
	b.settings = kept
	return b
}

// ClearSettings removes the whole Settings section.
func (b *AvitiSampleSheetBuilder) ClearSettings() *AvitiSampleSheetBuilder {
	b.settings = nil
	return b
}

// Build snapshots the staged state into a new immutable sheet. The first
// error recorded while staging is returned instead; staged samples are
// re-validated. Later builder mutations never affect previously built
// sheets.
func (b *AvitiSampleSheetBuilder) Build() (*AvitiSampleSheet, error) {
	if b.err != nil {
		return nil, b.err
	}
	for i, sample := range b.samples {
		if err := sample.Validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
	}
	return NewAvitiSampleSheet(b.runValues, b.settings, b.samples), nil
}
