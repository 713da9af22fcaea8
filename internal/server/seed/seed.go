// Package seed loads public snippets from a YAML file at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"gopkg.in/yaml.v3"
)

// Entry is one snippet in the seed file.
type Entry struct {
	Language string `yaml:"language"`
	Code     string `yaml:"code"`
}

// File is the document shape:
//
//	snippets:
//	  - language: python
//	    code: "print('hi')"
type File struct {
	Snippets []Entry `yaml:"snippets"`
}

// Creator stores a snippet on behalf of a caller; nil is anonymous.
type Creator interface {
	Create(ctx context.Context, caller *auth.Identity, language, code string, private bool) (*models.SnippetView, error)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("malformed seed file: %w", err)
	}
	return &f, nil
}

// Load reads path and creates every entry as a public snippet. It stops at
// the first failure and returns how many snippets were created.
func Load(ctx context.Context, path string, c Creator) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return 0, err
	}

	for i, e := range f.Snippets {
		if _, err := c.Create(ctx, nil, e.Language, e.Code, false); err != nil {
			return i, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
	}
	return len(f.Snippets), nil
}
