// Package transactions turns a raw transactions export into a Transaction
// node table plus From and To edge tables, in one unbroken sequential pass
// so the synthesized transaction ID stays consistent across all three
// outputs. Output may be partitioned by calendar date for incremental
// loading.
package transactions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/graphprep-dev/graphprep/internal/partition"
	"github.com/graphprep-dev/graphprep/internal/report"
)

// TransformFile runs the full transactions transform from inputPath into
// outDir. The summary is valid even when err is non-nil.
func TransformFile(inputPath, outDir string, splitByDate bool) (report.Summary, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return report.Summary{}, fmt.Errorf("opening transactions input: %w", err)
	}
	defer f.Close()

	return Transform(f, outDir, splitByDate)
}

// Transform streams the raw transactions CSV into the output tables. Each
// valid row emits one node row, one From edge and one To edge, all keyed by
// the row's 1-based data-row ordinal. Rows with content problems are
// dropped whole (node and both edges) and counted; the ordinal still
// advances so IDs always reflect source position.
func Transform(r io.Reader, outDir string, splitByDate bool) (sum report.Summary, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = rawNumFields

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return sum, fmt.Errorf("%w: input has no header row", ErrHeaderMismatch)
	}
	// A wrong-arity header still comes back as a record; let the header
	// validation report it.
	if err != nil && !errors.Is(err, csv.ErrFieldCount) {
		return sum, fmt.Errorf("reading transactions header: %w", err)
	}
	if err := validateRawHeader(header); err != nil {
		return sum, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return sum, fmt.Errorf("creating output dir: %w", err)
	}

	ws := newWriterSet(outDir)
	defer func() {
		if cerr := ws.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("reading transactions CSV: %w", err)
		}
		row++
		id := int64(row - 1)

		txn, problem := parseRow(rec, id)
		if problem != nil {
			if problem.missing {
				sum.RecordSkip(row, problem.field, problem.msg)
			} else {
				sum.RecordFailure(row, problem.field, problem.msg)
			}
			continue
		}

		key := ""
		if splitByDate {
			key = partition.DayKey(txn.Time)
		}
		idStr := strconv.FormatInt(txn.ID, 10)

		tw, err := ws.get(key, TransactionsFile, TransactionsHeader)
		if err != nil {
			return sum, err
		}
		if err := tw.Write(MarshalTransaction(txn)); err != nil {
			return sum, fmt.Errorf("writing transaction row %d: %w", row, err)
		}

		fw, err := ws.get(key, FromFile, EdgeHeader)
		if err != nil {
			return sum, err
		}
		if err := fw.Write([]string{idStr, txn.FromAccount}); err != nil {
			return sum, fmt.Errorf("writing from edge row %d: %w", row, err)
		}

		tow, err := ws.get(key, ToFile, EdgeHeader)
		if err != nil {
			return sum, err
		}
		if err := tow.Write([]string{idStr, txn.ToAccount}); err != nil {
			return sum, fmt.Errorf("writing to edge row %d: %w", row, err)
		}

		sum.Processed++
	}

	return sum, nil
}
