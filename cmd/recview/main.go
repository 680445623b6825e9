package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/librecorder/archive"
	"github.com/sgostarter/librecorder/recorder"
)

func main() {
	in := flag.String("in", "", "recorder file, encoded archive or text table")
	table := flag.Bool("table", false, "input is a text table")
	from := flag.Float64("from", 0, "first x (default: recorded minimum)")
	to := flag.Float64("to", 0, "last x (default: recorded maximum)")
	n := flag.Int("n", 11, "number of evaluation points")
	wide := flag.Bool("wide", false, "synthesize missing neighbours 100 apart instead of 1")
	flag.Parse()

	logger := l.NewConsoleLoggerWrapper()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	d, err := os.ReadFile(*in)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("read input failed")
	}

	var options []recorder.Option
	if *wide {
		options = append(options, recorder.WithSynthesizer(recorder.WideShift))
	}

	r, err := load(d, *table, options...)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("load recorder failed")
	}

	xMin, xMax := r.EstimateXRange()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	if setFlags["from"] {
		xMin = *from
	}

	if setFlags["to"] {
		xMax = *to
	}

	fmt.Println(render(*in, r, grid(xMin, xMax, *n)))
}

func load(d []byte, table bool, options ...recorder.Option) (*recorder.Recorder, error) {
	if !table {
		return archive.Decode(d, options...)
	}

	ss, err := archive.ParseTable(bytes.NewReader(d))
	if err != nil {
		return nil, err
	}

	r := recorder.NewRecorder(options...)
	r.Replace(ss)

	return r, nil
}
