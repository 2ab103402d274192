// Package output appends successful lookups to the tabular output file.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"svcmap-crawler/pkg/models"
	"svcmap-crawler/pkg/utils"
)

// HeaderRow is the fixed first line of the output table.
const HeaderRow = "Friendly url,Microservice url,Is k8s enabled?"

// ResultSink appends successful lookups to the output. Append-only: the sink
// never rewrites or deduplicates; dedup is the crawler's responsibility.
type ResultSink interface {
	Initialize() error
	Append(result models.LookupResult) error
	Close() error
}

// CSVSink writes the header row followed by one quoted row per result.
// Every field is quoted, with inner quotes doubled.
type CSVSink struct {
	path string
	file *os.File
	log  *logrus.Logger
}

// NewCSVSink creates a CSVSink targeting path. No file is touched until
// Initialize is called.
func NewCSVSink(path string, log *logrus.Logger) *CSVSink {
	return &CSVSink{path: path, log: log}
}

// Initialize creates (or truncates) the output file and writes the header row.
func (s *CSVSink) Initialize() error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: creating output file '%s': %w", utils.ErrFilesystem, s.path, err)
	}
	s.file = file
	if _, err := fmt.Fprintln(s.file, HeaderRow); err != nil {
		return fmt.Errorf("%w: writing header to '%s': %w", utils.ErrFilesystem, s.path, err)
	}
	s.log.Infof("Output file initialized: %s", s.path)
	return nil
}

// Append writes one quoted row for a successful lookup.
func (s *CSVSink) Append(result models.LookupResult) error {
	row := fmt.Sprintf("%s,%s,%s", quote(result.FriendlyURL), quote(result.ServiceURL), quote(result.K8sEnabled))
	if _, err := fmt.Fprintln(s.file, row); err != nil {
		return fmt.Errorf("%w: appending row to '%s': %w", utils.ErrFilesystem, s.path, err)
	}
	return nil
}

// Close flushes and closes the output file.
func (s *CSVSink) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: closing output file '%s': %w", utils.ErrFilesystem, s.path, err)
	}
	return nil
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
