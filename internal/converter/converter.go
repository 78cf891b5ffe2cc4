// Package converter orchestrates a conversion run: read the authored world
// document, build the entity graph, and write the canonical form back out.
package converter

import (
	"fmt"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cjmaher/worldnorm/internal/world"
)

// indentWidth is the output document indentation in spaces.
const indentWidth = 2

// Converter owns the read → parse → serialize → write pipeline. Parsing and
// serialization themselves are silent; all diagnostics go through the
// injected logger.
type Converter struct {
	logger *zap.Logger
}

// New constructs a Converter. A nil logger disables diagnostics.
//
// Postcondition: returns a non-nil Converter.
func New(logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{logger: logger}
}

// Report summarizes a conversion run for authoring tools.
type Report struct {
	RunID            string `yaml:"run_id"`
	Input            string `yaml:"input"`
	Output           string `yaml:"output"`
	Rooms            int    `yaml:"rooms"`
	Items            int    `yaml:"items"`
	States           int    `yaml:"states"`
	Conditions       int    `yaml:"conditions"`
	SpecialResponses int    `yaml:"special_responses"`
	Elapsed          string `yaml:"elapsed"`
}

// Write marshals the report as YAML to path.
//
// Precondition: path must be writable.
func (r *Report) Write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("serialising report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}

// Run reads the world document at inputPath, builds the World graph, and
// writes the canonical document to outputPath. The whole input is
// materialized before parsing; on any structural parse failure no output is
// produced.
//
// Postcondition: returns a Report describing the run, or a non-nil error.
func (c *Converter) Run(inputPath, outputPath string) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := c.logger.With(zap.String("run_id", runID))

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(inputPath); err != nil {
		return nil, fmt.Errorf("reading world document %s: %w", inputPath, err)
	}

	w, err := world.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing world document %s: %w", inputPath, err)
	}
	report := buildReport(w, runID, inputPath, outputPath)
	log.Info("parsed world document",
		zap.Int("rooms", report.Rooms),
		zap.Int("items", report.Items),
		zap.Int("states", report.States),
		zap.Int("special_responses", report.SpecialResponses),
	)

	out := world.Serialize(w)
	out.Indent(indentWidth)
	if err := out.WriteToFile(outputPath); err != nil {
		return nil, fmt.Errorf("writing canonical document %s: %w", outputPath, err)
	}

	report.Elapsed = time.Since(start).Round(time.Millisecond).String()
	log.Info("conversion complete",
		zap.String("output", outputPath),
		zap.String("elapsed", report.Elapsed),
	)
	return report, nil
}

// Convert is the in-memory core of Run: parse the document bytes and return
// the canonical serialization.
//
// Postcondition: returns the canonical document bytes or a non-nil error;
// never partial output.
func (c *Converter) Convert(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("reading world document: %w", err)
	}
	w, err := world.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing world document: %w", err)
	}
	out := world.Serialize(w)
	out.Indent(indentWidth)
	return out.WriteToBytes()
}

func buildReport(w *world.World, runID, inputPath, outputPath string) *Report {
	r := &Report{
		RunID:            runID,
		Input:            inputPath,
		Output:           outputPath,
		Rooms:            len(w.Rooms),
		SpecialResponses: len(w.SpecialResponses),
	}
	for i := range w.Rooms {
		room := &w.Rooms[i]
		r.States += len(room.States)
		for j := range room.States {
			r.Conditions += len(room.States[j].Prerequisites)
		}
		r.Items += len(room.Items)
		for j := range room.Items {
			item := &room.Items[j]
			r.States += len(item.States)
			for k := range item.States {
				r.Conditions += len(item.States[k].Actions)
			}
		}
	}
	for i := range w.SpecialResponses {
		r.Conditions += len(w.SpecialResponses[i].Actions)
	}
	return r
}
