package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/surveykit/sp1conv/internal/convert"
	"github.com/surveykit/sp1conv/internal/sp1"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Input  string `short:"i" long:"in" description:"Input file path. Reads from stdin if empty"`
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	From   string `short:"f" long:"from" description:"Source format. Inferred from the input extension if empty" choice:"sp1" choice:"csv"`
	To     string `short:"t" long:"to" description:"Target format" choice:"geojson" choice:"csv" choice:"sp1" default:"geojson"`
	Strict bool   `short:"s" long:"strict" description:"Fail on unparseable coordinates instead of storing NaN"`

	// survey metadata to attach on CSV import (CSV carries none of its own)
	Version    string `long:"meta-version" description:"Header version for CSV import"`
	Survey     string `long:"meta-survey" description:"Header survey name for CSV import"`
	Datum      string `long:"meta-datum" description:"Header datum for CSV import"`
	Projection string `long:"meta-projection" description:"Header projection for CSV import"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	from := opts.From
	if from == "" {
		if strings.EqualFold(filepath.Ext(opts.Input), ".csv") {
			from = "csv"
		} else {
			from = "sp1"
		}
	}

	content := string(inputData)

	var data *sp1.Data
	switch from {
	case "csv":
		meta := sp1.Header{
			Version:    opts.Version,
			Survey:     opts.Survey,
			Datum:      opts.Datum,
			Projection: opts.Projection,
		}
		if opts.Strict {
			data, err = convert.FromCSVStrict(content, meta)
		} else {
			data, err = convert.FromCSV(content, meta)
		}
	case "sp1":
		if opts.Strict {
			data, err = sp1.ParseStrict(content)
		} else {
			data = sp1.Parse(content)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s input: %v\n", from, err)
		os.Exit(1)
	}

	var outputData []byte
	switch opts.To {
	case "geojson":
		outputData, err = json.MarshalIndent(convert.ToGeoJSON(data), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
			os.Exit(1)
		}
	case "csv":
		outputData = []byte(convert.ToCSV(data))
	case "sp1":
		outputData = []byte(sp1.Write(data))
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d points to %s (format: %s)\n", len(data.Points), opts.Output, opts.To)
	} else {
		fmt.Println(string(outputData))
	}
}
