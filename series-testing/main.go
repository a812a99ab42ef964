package main

import (
	"flag"
	"log"

	sumresample "github.com/keereets/go-sumresample"
)

func main() {
	inputFile := flag.String("in", "", "YAML series file to convert")
	outputFile := flag.String("out", "", "where to write the converted series")
	newPeriod := flag.Uint("period", 300, "new sample period")
	drop := flag.Bool("drop", false, "drop the partly covered oldest period")
	flag.Parse()

	if *inputFile == "" || *outputFile == "" {
		log.Fatal("-in and -out are required")
	}

	period, err := sumresample.ParsePeriod(uint64(*newPeriod))
	if err != nil {
		log.Fatal("-period: ", err)
	}

	series, err := sumresample.LoadSeries(*inputFile)
	if err != nil {
		log.Fatal(err)
	}

	var opts []sumresample.Option
	if *drop {
		opts = append(opts, sumresample.WithPartialPolicy(sumresample.DropPartial))
	}

	converted, err := series.Resample(period, opts...)
	if err != nil {
		log.Fatal(sumresample.StrError(err), ": ", err)
	}

	if err = sumresample.WriteSeries(*outputFile, converted); err != nil {
		log.Fatal(err)
	}
	log.Println("finished converting", *inputFile, "to", *outputFile, series.Period, "->", converted.Period,
		len(series.Values), "->", len(converted.Values), "samples, sum", series.Sum(), "->", converted.Sum())
}
