package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"javiradio/logger"
	"javiradio/model"
)

// Flat-file primitives shared by the repositories. Each logical store is
// a single file that is read whole, mutated in memory and written whole;
// the owning repository serializes those cycles with its own mutex.

// readJSONFile decodes path into v. A missing file is not an error: v is
// left untouched so the caller's default applies.
func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", model.ErrStorage, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", model.ErrStorage, path, err)
	}
	return nil
}

// writeJSONFile persists v pretty-printed, matching the on-disk format
// the data files have always used.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", model.ErrStorage, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", model.ErrStorage, path, err)
	}
	return nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading %s: %v", model.ErrStorage, path, err)
	}
	return string(data), nil
}

func writeTextFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", model.ErrStorage, path, err)
	}
	return nil
}

// logWriteFailure records a swallowed write error. Callers keep their
// in-memory result, so a failed save silently loses data on the next
// restart. Accepted limitation at this scale.
func logWriteFailure(store string, err error) {
	if err != nil {
		logger.Error("best-effort save failed", logger.String("store", store), logger.ErrorField(err))
	}
}
