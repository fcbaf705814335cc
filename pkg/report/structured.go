package report

import (
	"encoding/json"
	"io"

	"github.com/dtnitsch/term-ranker/pkg/batch"
	"gopkg.in/yaml.v3"
)

// YAMLSink writes the Snapshot as YAML.
type YAMLSink struct{}

func (s *YAMLSink) Write(result batch.Result, destination string) error {
	return writeTo(destination, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewSnapshot(result)); err != nil {
			return err
		}
		return enc.Close()
	})
}

// JSONSink writes the Snapshot as indented JSON.
type JSONSink struct{}

func (s *JSONSink) Write(result batch.Result, destination string) error {
	return writeTo(destination, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewSnapshot(result))
	})
}
