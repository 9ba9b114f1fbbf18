package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

// FileSource loads the vocabulary table from a JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource reading the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the vocabulary file.
func (s *FileSource) Load(_ context.Context) ([]entities.Group, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Groups []entities.Group `json:"groups"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vocabulary JSON: %w", err)
	}

	if len(wrapper.Groups) == 0 {
		return nil, fmt.Errorf("%w: no groups in %s", ErrInvalidVocabulary, s.path)
	}

	return wrapper.Groups, nil
}
