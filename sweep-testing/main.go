package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	sumresample "github.com/keereets/go-sumresample"
	"gonum.org/v1/gonum/stat"
)

var rampSeries = []uint32{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}

type sweepConfig struct {
	from, toMax, step, newPeriod uint32
	opts                         []sumresample.Option
}

func main() {
	seriesFile := flag.String("series", "", "YAML series file (default: 100..1000 ramp)")
	from := flag.Uint("from", 600, "first old period")
	toMax := flag.Uint("to-max", 20*60, "last old period")
	step := flag.Uint("step", 200, "old period increment")
	newPeriod := flag.Uint("to", 5*60, "new period")
	drop := flag.Bool("drop", false, "drop the partly covered oldest period")
	watch := flag.Bool("watch", false, "run again whenever the series file changes")
	debug := flag.Bool("debug", false, "log every engine decision")
	flag.Parse()

	var cfg sweepConfig
	for _, f := range []struct {
		name string
		in   *uint
		out  *uint32
	}{
		{"-from", from, &cfg.from},
		{"-to-max", toMax, &cfg.toMax},
		{"-step", step, &cfg.step},
		{"-to", newPeriod, &cfg.newPeriod},
	} {
		v, err := sumresample.ParsePeriod(uint64(*f.in))
		if err != nil {
			log.Fatal(f.name, ": ", err)
		}
		*f.out = v
	}
	if *drop {
		cfg.opts = append(cfg.opts, sumresample.WithPartialPolicy(sumresample.DropPartial))
	}
	if *debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg.opts = append(cfg.opts, sumresample.WithTracer(sumresample.NewSlogTracer(logger)))
	}

	series := sumresample.Series{Values: rampSeries}
	if *seriesFile != "" {
		s, err := sumresample.LoadSeries(*seriesFile)
		if err != nil {
			log.Fatal(err)
		}
		series = s
	}

	ok := sweep(series, cfg)

	if *watch {
		if *seriesFile == "" {
			log.Fatal("-watch needs -series")
		}
		done := make(chan struct{})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			close(done)
		}()

		log.Println("watching", *seriesFile)
		err := sumresample.WatchSeries(*seriesFile, done, func(s sumresample.Series, err error) {
			if err != nil {
				log.Println("reload failed:", err)
				return
			}
			ok = sweep(s, cfg)
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	if !ok {
		os.Exit(1)
	}
}

// sweep resamples the series values as if sampled at every old period in
// [from, toMax] and reports whether all sums matched. The period stored in
// the series is ignored.
func sweep(series sumresample.Series, cfg sweepConfig) bool {
	order, err := sumresample.ParseOrder(series.Order)
	if err != nil {
		log.Fatal(err)
	}
	opts := append(cfg.opts[:len(cfg.opts):len(cfg.opts)], sumresample.WithOrder(order))
	values := series.Values
	origSum := series.Sum()
	allMatch := true

	for interval := cfg.from; interval <= cfg.toMax; interval += cfg.step {
		r, err := sumresample.New(interval, cfg.newPeriod, opts...)
		if err != nil {
			log.Fatal(err)
		}
		out, err := r.Resample(values)
		if err != nil {
			log.Printf("❌ %d %s: %v", interval, r, err)
			allMatch = false
			continue
		}

		newSum := sumresample.Series{Values: out}.Sum()
		asFloat := make([]float64, len(out))
		for i, v := range out {
			asFloat[i] = float64(v)
		}
		mean, std := stat.MeanStdDev(asFloat, nil)

		mark := "✅ %d Sum match."
		if origSum != newSum {
			mark = "❌ %d !!!!! Sum mismatch !!!!!"
			allMatch = false
		}
		log.Printf(mark+" (orig: %d (%d samp) new: %d (%d samp), %s, mean %.1f, stddev %.1f)",
			interval, origSum, len(values), newSum, len(out), r, mean, std)

		if interval > cfg.toMax-cfg.step {
			break // uint32 wrap
		}
	}
	return allMatch
}
