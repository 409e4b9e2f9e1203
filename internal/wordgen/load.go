package wordgen

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// historyFile is the on-disk form. It holds either raw messages or
// already aggregated months.
type historyFile struct {
	Contrast    *float64  `yaml:"contrast"`
	TrunkHeight float64   `yaml:"trunk_height"`
	Messages    []Message `yaml:"messages"`
	Months      []Month   `yaml:"months"`
}

// Decode parses a history document. Messages are aggregated with the
// document's contrast, or DefaultContrast when it has none.
func Decode(data []byte) (History, error) {
	var f historyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return History{}, fmt.Errorf("parse history: %w", err)
	}
	if len(f.Messages) > 0 && len(f.Months) > 0 {
		return History{}, errors.New("parse history: messages and months are mutually exclusive")
	}

	var h History
	if len(f.Messages) > 0 {
		contrast := DefaultContrast
		if f.Contrast != nil {
			contrast = *f.Contrast
		}
		h = Aggregate(f.Messages, contrast)
	} else {
		h = History{Months: f.Months, TrunkHeight: TrunkHeight(len(f.Months))}
	}
	if f.TrunkHeight > 0 {
		h.TrunkHeight = f.TrunkHeight
	}
	return h, nil
}

// Load reads and decodes the history file at path.
func Load(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return History{}, fmt.Errorf("load history: %w", err)
	}
	return Decode(data)
}

// Word loads the history at path and generates its word.
func Word(path string) (string, error) {
	h, err := Load(path)
	if err != nil {
		return "", err
	}
	return Generate(h), nil
}
