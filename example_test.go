package samplesheet_test

import (
	"context"
	"fmt"
	"log"

	"github.com/nao1215/samplesheet"
	"github.com/nao1215/samplesheet/domain/model"
)

// ExampleParseAviti demonstrates parsing an Element AVITI sample sheet from
// text. Unrecognized header rows such as the KeyName/Value banner are
// skipped, and per-sample lanes come back through the typed accessors.
func ExampleParseAviti() {
	const data = `[RunValues]
KeyName,Value
RunName,Run001

[Samples]
SampleName,Index1,Index2,Lane
Sample01,ATCGATCG,GGTTCCAA,1
Sample02,TTGGCCAA,AACCGGTT,2
`
	sheet, err := samplesheet.ParseAviti(data)
	if err != nil {
		log.Fatal(err)
	}

	runName, _ := sheet.RunValues().Get("RunName")
	fmt.Println(runName)
	for _, sample := range sheet.Samples() {
		lane, _ := sample.Lane()
		fmt.Println(sample.SampleName(), sample.Index1(), lane)
	}
	// Output:
	// Run001
	// Sample01 ATCGATCG 1
	// Sample02 TTGGCCAA 2
}

// ExampleParseIlluminaV1 demonstrates parsing an Illumina IEM sample sheet,
// including the [Reads] cycle counts.
func ExampleParseIlluminaV1() {
	const data = `[Header]
IEMFileVersion,4
Experiment Name,Run2024

[Reads]
151
151

[Data]
Sample_ID,Sample_Name,index
S1,First,ATCGATCG
S2,Second,GGTTCCAA
`
	sheet, err := samplesheet.ParseIlluminaV1(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sheet.Reads())
	for _, sample := range sheet.Samples() {
		name, _ := sample.SampleName()
		fmt.Println(sample.SampleID(), name)
	}
	// Output:
	// [151 151]
	// S1 First
	// S2 Second
}

// ExampleWriteAvitiToString demonstrates serializing a sheet built from
// model values. Sections without content are omitted; [Samples] is always
// written.
func ExampleWriteAvitiToString() {
	sample, err := model.NewAvitiSample("Sample01", "ATCG", "GGTT")
	if err != nil {
		log.Fatal(err)
	}
	sheet := model.NewAvitiSampleSheet(nil, nil, []model.AvitiSample{sample})

	text, err := samplesheet.WriteAvitiToString(sheet)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(text)
	// Output:
	// [Samples]
	// SampleName,Index1,Index2
	// Sample01,ATCG,GGTT
}

// ExampleOpenAvitiDB demonstrates querying a parsed sheet with SQL.
func ExampleOpenAvitiDB() {
	const data = `[Samples]
SampleName,Index1,Index2,Project
Sample01,ATCG,GGTT,Alpha
Sample02,TTGG,AACC,Beta
Sample03,CCAA,TTGG,Alpha
`
	sheet, err := samplesheet.ParseAviti(data)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := samplesheet.OpenAvitiDB(ctx, sheet)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples WHERE Project = 'Alpha'`).Scan(&count); err != nil {
		log.Fatal(err)
	}
	fmt.Println(count)
	// Output:
	// 2
}

// ExampleMarshalAvitiJSON demonstrates the JSON export shape. Key-value maps
// keep their insertion order.
func ExampleMarshalAvitiJSON() {
	runValues := model.NewCaseInsensitiveMap()
	runValues.Set("RunName", "Run001")
	sample, err := model.NewAvitiSample("Sample01", "ATCG", "GGTT")
	if err != nil {
		log.Fatal(err)
	}
	sheet := model.NewAvitiSampleSheet(runValues, nil, []model.AvitiSample{sample})

	data, err := samplesheet.MarshalAvitiJSON(sheet)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output:
	// {"run_values":{"RunName":"Run001"},"samples":[{"sample_name":"Sample01","index1":"ATCG","index2":"GGTT"}]}
}
