package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	logging "holders-csv/internal/infra/log"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// MarshalIndent encodes v with a two-space indent, no HTML escaping and no
// trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON replaces filePath with the indented JSON encoding of v. The data
// goes to a temporary file next to filePath which is then renamed over it, so
// readers never see a partial file.
func WriteJSON(fsys afero.Fs, filePath string, v any) error {
	data, err := MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	dir := filepath.Dir(filePath)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tempFilePath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tempFilePath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tempFilePath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := fsys.Chmod(tempFilePath, 0644); err != nil {
		fsys.Remove(tempFilePath)
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err := fsys.Rename(tempFilePath, filePath); err != nil {
		fsys.Remove(tempFilePath)
		return fmt.Errorf("failed to rename temporary file to %s: %w", filePath, err)
	}

	logging.LogDebug("Saved JSON file",
		zap.String("file", filePath),
		zap.Int("bytes", len(data)))

	return nil
}
