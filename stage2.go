package samplesheet

import (
	"strings"

	"github.com/nao1215/samplesheet/domain/model"
)

// structureDocument classifies raw sections into key-value header sections
// and the single tabular data section. Sections without a single meaningful
// row are dropped; of the remainder the last section becomes the data
// section and every earlier one a header section. A document with no
// meaningful sections yields an empty data section.
func structureDocument(raw model.RawDocument, cfg ParserConfiguration) model.StructuredDocument {
	sections := raw.Sections()
	kept := make([]model.RawSection, 0, len(sections))
	for _, section := range sections {
		if !section.IsEmpty() {
			kept = append(kept, section)
		}
	}

	if len(kept) == 0 {
		cfg.logger().Debug("no sections with content, using empty data section")
		empty := model.NewDataSection("", nil, nil, nil)
		return model.NewStructuredDocument(raw.Delimiter(), raw.SheetType(), nil, empty)
	}

	headerSections := make([]model.HeaderSection, 0, len(kept)-1)
	for _, section := range kept[:len(kept)-1] {
		headerSections = append(headerSections, model.NewHeaderSection(section.Name(), section.Rows()))
	}
	dataSection := newDataSection(kept[len(kept)-1], cfg)
	return model.NewStructuredDocument(raw.Delimiter(), raw.SheetType(), headerSections, dataSection)
}

// newDataSection converts a raw section into the tabular data section. The
// first row supplies the trimmed column headers and the lookup index keyed by
// the folded header name; remaining rows become records verbatim.
func newDataSection(section model.RawSection, cfg ParserConfiguration) model.DataSection {
	rows := section.Rows()
	if len(rows) == 0 {
		return model.NewDataSection(section.Name(), nil, nil, nil)
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
	}
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[cfg.ColumnHeaderCase.Fold(header)] = i
	}
	return model.NewDataSection(section.Name(), headers, index, rows[1:])
}
