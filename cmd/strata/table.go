package main

import (
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/ajitpratap0/strata/pkg/columnar"
	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// categoricalKey marks a utf8 field that should load as a categorical column.
const categoricalKey = "strata.categorical"

// loadedTable is a table whose numeric columns borrow Arrow buffers; Release
// must run after the last pass over it.
type loadedTable struct {
	*columnar.Table
	records []arrow.Record
}

func (t *loadedTable) Release() {
	for _, rec := range t.records {
		rec.Release()
	}
	t.records = nil
}

// readTable loads every field of an Arrow IPC file. Each record batch becomes
// one chunk of every column.
func readTable(path string) (*loadedTable, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to open arrow file").
			WithDetail("path", path)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeData, "failed to read arrow file").
			WithDetail("path", path)
	}
	defer r.Close()

	t := &loadedTable{Table: columnar.NewTable()}
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.RecordAt(i)
		if err != nil {
			t.Release()
			return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeData, "failed to read record batch").
				WithDetail("path", path).
				WithDetail("batch", i)
		}
		t.records = append(t.records, rec)
	}

	schema := r.Schema()
	for c, field := range schema.Fields() {
		arrs := make([]arrow.Array, 0, len(t.records))
		for _, rec := range t.records {
			arrs = append(arrs, rec.Column(c))
		}
		chunked := arrow.NewChunked(field.Type, arrs)
		col, err := columnFromArrow(field, chunked)
		chunked.Release()
		if err != nil {
			t.Release()
			return nil, err
		}
		if err := t.AddColumn(col); err != nil {
			t.Release()
			return nil, err
		}
	}

	logger.Debug("table loaded",
		zap.String("path", path),
		zap.Int("columns", t.ColumnCount()),
		zap.Int("rows", t.RowCount()),
		zap.Int("batches", len(t.records)))
	return t, nil
}

func columnFromArrow(field arrow.Field, chunked *arrow.Chunked) (columnar.AnyColumn, error) {
	if isCategorical(field) {
		return columnar.CategoricalFromArrow(field.Name, chunked)
	}
	switch field.Type.ID() {
	case arrow.INT32:
		return columnar.FromArrow[int32](field.Name, chunked)
	case arrow.INT64:
		return columnar.FromArrow[int64](field.Name, chunked)
	case arrow.UINT32:
		return columnar.FromArrow[uint32](field.Name, chunked)
	case arrow.UINT64:
		return columnar.FromArrow[uint64](field.Name, chunked)
	case arrow.FLOAT32:
		return columnar.FromArrow[float32](field.Name, chunked)
	case arrow.FLOAT64:
		return columnar.FromArrow[float64](field.Name, chunked)
	case arrow.STRING, arrow.LARGE_STRING:
		return columnar.FromArrow[string](field.Name, chunked)
	case arrow.DICTIONARY:
		return columnar.CategoricalFromArrow(field.Name, chunked)
	}
	return nil, strataerrors.Newf(strataerrors.ErrorTypeCapability, "unsupported arrow type %s", field.Type).
		WithDetail("column", field.Name)
}

func isCategorical(field arrow.Field) bool {
	v, ok := field.Metadata.GetValue(categoricalKey)
	return ok && v == "true"
}

// compressionOption maps a codec name onto an IPC writer option. Reading needs
// no option: the reader detects the codec from the file.
func compressionOption(codec string) (ipc.Option, error) {
	switch codec {
	case "", "none":
		return nil, nil
	case "lz4":
		return ipc.WithLZ4(), nil
	case "zstd":
		return ipc.WithZstd(), nil
	}
	return nil, strataerrors.New(strataerrors.ErrorTypeValidation, "unknown compression codec").
		WithDetail("codec", codec)
}

// writeRecords writes one record batch per element of batches to an Arrow IPC
// file, compressing buffers with codec.
func writeRecords(path string, schema *arrow.Schema, batches []arrow.Record, codec string) error {
	opts := []ipc.Option{ipc.WithSchema(schema), ipc.WithAllocator(memory.DefaultAllocator)}
	compress, err := compressionOption(codec)
	if err != nil {
		return err
	}
	if compress != nil {
		opts = append(opts, compress)
	}

	f, err := os.Create(path) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to create arrow file").
			WithDetail("path", path)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, opts...)
	if err != nil {
		return strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to create arrow writer").
			WithDetail("path", path)
	}
	for i, rec := range batches {
		if err := w.Write(rec); err != nil {
			_ = w.Close()
			return strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to write record batch").
				WithDetail("path", path).
				WithDetail("batch", i)
		}
	}
	if err := w.Close(); err != nil {
		return strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to finish arrow file").
			WithDetail("path", path)
	}
	return f.Close()
}
