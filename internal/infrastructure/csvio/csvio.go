// Package csvio loads transaction exports into tables, cleans them, and
// writes annotated tables back out.
package csvio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

var (
	// ErrFileNotFound is returned by LoadFile when the path does not exist.
	ErrFileNotFound = errors.New("transaction file not found")

	// ErrMalformedInput is returned when the stream is not a readable CSV table.
	ErrMalformedInput = errors.New("malformed transaction file")
)

// nanValues are the cells read as missing. Empty cells count as missing for
// every column type, including strings.
var nanValues = []string{"", "NA", "NaN", "N/A", "null", "<nil>"}

// columnTypes declares the ledger columns; anything else is type-detected.
var columnTypes = map[string]series.Type{
	dataset.ColStep:           series.Int,
	dataset.ColType:           series.String,
	dataset.ColAmount:         series.Float,
	dataset.ColNameOrig:       series.String,
	dataset.ColOldBalanceOrig: series.Float,
	dataset.ColNewBalanceOrig: series.Float,
	dataset.ColNameDest:       series.String,
	dataset.ColOldBalanceDest: series.Float,
	dataset.ColNewBalanceDest: series.Float,
	dataset.ColIsFraud:        series.Int,
	dataset.ColIsFlaggedFraud: series.Int,
}

// LoadFile reads a comma separated transaction export from path.
func LoadFile(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	df, err := Load(f)
	if err != nil {
		return df, fmt.Errorf("%s: %w", path, err)
	}
	return df, nil
}

// Load reads a comma separated transaction export with a header row.
// A stream with no data rows yields dataset.ErrEmptyInput.
func Load(r io.Reader) (dataframe.DataFrame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read transactions: %w", err)
	}
	if countLines(data) < 2 {
		return dataframe.DataFrame{}, dataset.ErrEmptyInput
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithTypes(columnTypes),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrMalformedInput, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, dataset.ErrEmptyInput
	}
	return df, nil
}

// Clean drops every row holding a missing cell, then drops exact duplicate
// rows keeping the first occurrence. Row order is preserved.
func Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Ncol() == 0 {
		return df, dataset.ErrEmptyInput
	}
	if df.Err != nil {
		return df, df.Err
	}

	keys := make([]strings.Builder, df.Nrow())
	valid := make([]bool, df.Nrow())
	for i := range valid {
		valid[i] = true
	}

	for _, name := range df.Names() {
		col := df.Col(name)
		for i, isNaN := range col.IsNaN() {
			if isNaN {
				valid[i] = false
			}
		}
		cells := cellKeys(col)
		for i := range keys {
			keys[i].WriteString(cells[i])
			keys[i].WriteByte(0x1f)
		}
	}

	seen := make(map[string]bool, df.Nrow())
	keep := make([]int, 0, df.Nrow())
	for i := range keys {
		if !valid[i] {
			continue
		}
		k := keys[i].String()
		if seen[k] {
			continue
		}
		seen[k] = true
		keep = append(keep, i)
	}

	if len(keep) == df.Nrow() {
		return df, nil
	}
	out := df.Subset(keep)
	if out.Err != nil {
		return df, fmt.Errorf("failed to clean transactions: %w", out.Err)
	}
	return out, nil
}

// Write renders df as CSV with a header row.
func Write(w io.Writer, df dataframe.DataFrame) error {
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}
	return nil
}

// WriteFile renders df to path, replacing any existing file.
func WriteFile(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, df); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cellKeys renders each cell of col losslessly for duplicate detection.
func cellKeys(col series.Series) []string {
	if col.Type() != series.Float {
		return col.Records()
	}
	vals := col.Float()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

func countLines(data []byte) int {
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
			if n >= 2 {
				break
			}
		}
	}
	return n
}
