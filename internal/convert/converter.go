// Package convert turns a holder CSV export into a JSON array of addresses.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"holders-csv/internal/address"
	"holders-csv/internal/infra/fs"
	logging "holders-csv/internal/infra/log"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrInputNotFound is wrapped when the input path cannot be opened as a file.
var ErrInputNotFound = errors.New("input file not found")

// Converter reads and writes through FS.
type Converter struct {
	FS afero.Fs
}

// Result of a successful conversion.
type Result struct {
	Holders []string // in input order, duplicates kept
	Output  string
}

func New(fsys afero.Fs) *Converter {
	return &Converter{FS: fsys}
}

// Convert reads addresses from the first column of inputPath and writes them
// to outputPath as a JSON array. Rows whose first cell is not an address are
// skipped with a warning. The first row goes through the same check, so a
// header is dropped only because it does not look like an address.
func (c *Converter) Convert(inputPath, outputPath string) (*Result, error) {
	holders, err := c.ReadHolders(inputPath)
	if err != nil {
		return nil, err
	}

	logging.LogSuccess(fmt.Sprintf("Found %d valid holder addresses.", len(holders)),
		zap.String("input", inputPath),
		zap.Int("count", len(holders)))

	if err := fs.WriteJSON(c.FS, outputPath, holders); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	logging.LogSuccess(fmt.Sprintf("Successfully created '%s' with %d addresses.", outputPath, len(holders)),
		zap.String("output", outputPath),
		zap.Int("count", len(holders)))

	return &Result{Holders: holders, Output: outputPath}, nil
}

// ReadHolders returns the valid addresses in inputPath. The result is never nil.
func (c *Converter) ReadHolders(inputPath string) ([]string, error) {
	f, err := c.open(inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readHolders(f)
}

func (c *Converter) open(inputPath string) (afero.File, error) {
	f, err := c.FS.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, inputPath, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, inputPath, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, inputPath)
	}

	return f, nil
}

func readHolders(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	holders := make([]string, 0)
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if err := checkUTF8(reader, record); err != nil {
			return nil, err
		}

		if first {
			first = false
			if len(record) > 0 {
				if addr := address.Clean(record[0]); address.IsValid(addr) {
					holders = append(holders, addr)
				} else {
					logging.LogDebug("First row is not an address, treating it as a header",
						zap.String("cell", addr))
				}
			}
			continue
		}

		if len(record) == 0 {
			continue
		}

		addr := address.Clean(record[0])
		if !address.IsValid(addr) {
			line, _ := reader.FieldPos(0)
			logging.LogWarn("Skipping invalid or malformed address: "+addr, zap.Int("line", line))
			continue
		}
		holders = append(holders, addr)
	}

	return holders, nil
}

// checkUTF8 rejects a record holding bytes that are not UTF-8. Encoding them
// as JSON would silently replace those bytes.
func checkUTF8(reader *csv.Reader, record []string) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			line, column := reader.FieldPos(i)
			return fmt.Errorf("invalid UTF-8 on line %d, column %d", line, column)
		}
	}
	return nil
}
