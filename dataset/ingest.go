package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
	"github.com/researchos/dataset-builder/logger"
)

// byteOrderMark is stripped from the first column header.
const byteOrderMark = "\ufeff"

// IngestOptions controls how a data objects table is read.
type IngestOptions struct {
	// HeaderRows counts the column header row plus any rows to skip after it.
	// Values below 1 are treated as 1.
	HeaderRows int
	// Delimiter defaults to ','.
	Delimiter  rune
	LazyQuotes bool

	Logger    *zap.SugaredLogger
	Verbosity int
}

// IngestResult is the outcome of reading a table.
type IngestResult struct {
	Graph    *Graph
	Rows     int // data rows turned into relations
	Skipped  int // rows skipped after the column header
	Entities int // distinct (level, name) pairs
}

// Ingest reads a data objects table into the raw relation graph.
//
// For every data row each configured column resolves to the singleton entity
// for (level, cell), and adjacent entities in hierarchy order are joined by a
// parent→child edge. Rows repeating a pair reuse the node and add a parallel
// edge.
//
// Columns are taken from h.Columns(); a hierarchy built from names alone
// reads columns named after its levels.
func Ingest(r io.Reader, h *level.Hierarchy, opts IngestOptions) (*IngestResult, error) {
	log := opts.Logger
	if log == nil {
		log = logger.ComponentLogger("dataset.ingest")
	}
	headerRows := opts.HeaderRows
	if headerRows < 1 {
		headerRows = 1
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(errors.ErrMissingColumn, "table has no header row")
	}
	if err != nil {
		// A malformed table is a table whose columns cannot be read.
		return nil, errors.Wrap(errors.Mark(err, errors.ErrMissingColumn), "failed to read table header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	positions, err := columnPositions(header, columnsOf(h))
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	result := &IngestResult{Graph: NewGraph()}
	row := make([]*Entity, len(positions))

	for count := 0; ; count++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(errors.Mark(err, errors.ErrMissingColumn), "failed to read table row %d", count+1)
		}
		if count < headerRows-1 {
			result.Skipped++
			continue
		}

		for i, p := range positions {
			if p.index >= len(record) {
				line, _ := reader.FieldPos(0)
				return nil, errors.Wrapf(errors.ErrMissingColumn,
					"line %d has %d fields, column %q is field %d", line, len(record), p.column.Column, p.index+1)
			}
			e, _ := registry.Resolve(p.column.Level, record[p.index])
			result.Graph.AddNode(e)
			row[i] = e
		}
		for i := 0; i+1 < len(row); i++ {
			result.Graph.AddEdge(row[i], row[i+1])
		}
		result.Rows++

		if logger.ShouldLogTrace(opts.Verbosity) {
			log.Debugw("Row ingested", logger.FieldRow, count+1, "entities", entityNames(row))
		}
	}

	result.Entities = registry.Len()
	log.Infow("Table ingested",
		logger.FieldRows, result.Rows,
		logger.FieldNodes, result.Graph.Len(),
		logger.FieldEdges, result.Graph.EdgeCount(),
	)
	return result, nil
}

type columnPosition struct {
	column level.Column
	index  int
}

func columnsOf(h *level.Hierarchy) []level.Column {
	if cols := h.Columns(); len(cols) > 0 {
		return cols
	}
	levels := h.Levels()
	cols := make([]level.Column, len(levels))
	for i, l := range levels {
		cols[i] = level.Column{Column: l.Name, Level: l}
	}
	return cols
}

func columnPositions(header []string, columns []level.Column) ([]columnPosition, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	positions := make([]columnPosition, len(columns))
	for i, c := range columns {
		idx, ok := index[c.Column]
		if !ok {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrMissingColumn, "column %q (level %s) not in table header", c.Column, c.Level.Name),
				"table header: %s", strings.Join(header, ", "),
			)
		}
		positions[i] = columnPosition{column: c, index: idx}
	}
	return positions, nil
}

func entityNames(entities []*Entity) []string {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.String()
	}
	return names
}
