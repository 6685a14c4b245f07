package persistence

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// SaveGob encodes the given object using gob and writes it to filePath,
// creating parent directories as needed.
func SaveGob(filePath string, object interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close file %s: %v", filePath, closeErr)
		}
	}()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(object); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	return nil
}

// LoadGob decodes a gob-encoded file from filePath into the provided
// object pointer. If the file does not exist it returns os.ErrNotExist,
// so callers can treat a fresh start differently from a corrupted file.
func LoadGob(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close file %s: %v", filePath, closeErr)
		}
	}()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
