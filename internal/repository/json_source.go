package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"plant_monitor/internal/models"
)

// FileSource reads the fixture document from a JSON file on disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

var _ FixtureSource = (*FileSource)(nil)

func (s *FileSource) Load(ctx context.Context) ([]models.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %q: %w", s.path, err)
	}
	defer f.Close()

	sites, err := DecodeSites(f)
	if err != nil {
		return nil, fmt.Errorf("fixture %q: %w", s.path, err)
	}
	return sites, nil
}

// DecodeSites parses a fixture document: a JSON array of sites.
func DecodeSites(r io.Reader) ([]models.Site, error) {
	var sites []models.Site
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sites); err != nil {
		return nil, fmt.Errorf("decode sites: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode sites: unexpected data after the site array")
	}
	return sites, nil
}
