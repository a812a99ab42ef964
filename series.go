//
// Copyright (c) 2025, Antonio Chirizzi <antonio.chirizzi@gmail.com>
// All rights reserved.
//
// This code is released under 3-clause BSD license. Please see the
// file LICENSE
//

package sumresample

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Series is a sampled series as stored in a YAML document:
//
//	period: 600
//	order: newest-first
//	values: [100, 200, 300]
type Series struct {
	Period uint32   `yaml:"period"`
	Order  string   `yaml:"order,omitempty"`
	Values []uint32 `yaml:"values,flow"`
}

// Validate checks the period, order and values of s.
func (s Series) Validate() error {
	if s.Period == 0 {
		return newError(ErrInvalidPeriod, 0, "series period is 0")
	}
	if _, err := ParseOrder(s.Order); err != nil {
		return err
	}
	if len(s.Values) == 0 {
		return newError(ErrBadSeries, 0, "series has no values")
	}
	return nil
}

// Sum returns the total quantity of the series.
func (s Series) Sum() uint64 {
	return sumSeries(s.Values)
}

// Resample returns s converted to newPeriod, keeping its order. Options may
// add a tracer or a partial policy; an order option is overridden by s.Order.
func (s Series) Resample(newPeriod uint32, opts ...Option) (Series, error) {
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	order, _ := ParseOrder(s.Order)
	opts = append(opts[:len(opts):len(opts)], WithOrder(order))
	values, err := Resample(s.Values, s.Period, newPeriod, opts...)
	if err != nil {
		return Series{}, err
	}
	return Series{Period: newPeriod, Order: s.Order, Values: values}, nil
}

// ParseSeries decodes and validates a YAML series document.
func ParseSeries(data []byte) (Series, error) {
	var s Series
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Series{}, newError(ErrBadSeries, 0, "parse YAML: "+err.Error())
	}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// LoadSeries reads a YAML series document from path.
func LoadSeries(path string) (Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Series{}, err
	}
	s, err := ParseSeries(data)
	if err != nil {
		return Series{}, fmt.Errorf("load %q: %w", path, err)
	}
	return s, nil
}

// WriteSeries validates s and writes it to path as YAML.
func WriteSeries(path string, s Series) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// WatchSeries calls fn with the reloaded series every time the file at path
// is written or re-created. Load errors are passed to fn rather than ending
// the watch. It blocks until done is closed or the watcher fails.
func WatchSeries(path string, done <-chan struct{}, fn func(Series, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file instead of writing it.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch dir %q: %w", dir, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fn(LoadSeries(path))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
