// Package csvio reads the participant export and writes result tables as CSV files.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
)

// ParticipantFile is a participant source backed by a CSV export of the participant sheet
type ParticipantFile struct {
	path    string
	columns model.ColumnSpec
}

// NewParticipantFile returns a source reading path
func NewParticipantFile(path string, columns model.ColumnSpec) *ParticipantFile {
	return &ParticipantFile{path: path, columns: columns}
}

// Describe names the source in logs
func (f *ParticipantFile) Describe() string {
	return "file " + f.path
}

// LoadParticipants reads and parses the CSV file. Rows may have differing lengths.
func (f *ParticipantFile) LoadParticipants(ctx context.Context) (*model.ParticipantTable, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open participant file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read participant file %s: %w", f.path, err)
	}
	if len(raw) > 0 && len(raw[0]) > 0 {
		raw[0][0] = trimBOM(raw[0][0])
	}

	table, err := model.ParseParticipantTable(raw, f.columns)
	if err != nil {
		return nil, fmt.Errorf("failed to parse participant file %s: %w", f.path, err)
	}

	return table, nil
}

// trimBOM drops the byte order mark spreadsheet exports put in front of the first header
func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

// Directory is a result sink writing <dir>/<table name>.csv for every table
type Directory struct {
	dir string
}

// NewDirectory returns a sink writing into dir, created on first write
func NewDirectory(dir string) *Directory {
	return &Directory{dir: dir}
}

// Name describes the sink in logs and errors
func (d *Directory) Name() string {
	return "directory " + d.dir
}

// Path returns the file a table is written to
func (d *Directory) Path(tableName string) string {
	return filepath.Join(d.dir, tableName+".csv")
}

// WriteTables writes every table, header first, replacing existing files
func (d *Directory) WriteTables(ctx context.Context, tables []model.Table) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeTable(d.Path(table.Name), table); err != nil {
			return fmt.Errorf("failed to write %s: %w", table.Name, err)
		}
	}

	return nil
}

func writeTable(path string, table model.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write(table.Header); err != nil {
		file.Close()
		return err
	}
	if err := w.WriteAll(table.Rows); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
