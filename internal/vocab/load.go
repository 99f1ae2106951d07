package vocab

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// Error codes for vocabulary loading.
const (
	ErrCodeNotFound = "V001" // file missing or unreadable
	ErrCodeFormat   = "V002" // unsupported file extension
	ErrCodeParse    = "V003" // YAML or CUE syntax/decoding error
	ErrCodeInvalid  = "V004" // decoded vocabulary failed validation
)

// LoadError reports why a vocabulary file could not be used.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads a vocabulary from a .yaml, .yml or .cue file.
//
// Sections the file leaves out (tables, any option list, presets) fall back
// to Default, so a file can override just the presets.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "reading vocabulary file", Err: err}
	}

	var file Vocabulary
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &file)
	case ".cue":
		err = decodeCUE(path, data, &file)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Path: path, Message: fmt.Sprintf("unsupported vocabulary format %q", ext)}
	}
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
			return nil, loadErr
		}
		return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: err.Error(), Err: err}
	}

	v := merge(&file, Default())
	v.normalize()
	if err := v.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Path: path, Message: err.Error(), Err: err}
	}
	return v, nil
}

// decodeYAML rejects unknown fields so that typos ("tabels:") fail loudly.
func decodeYAML(data []byte, v *Vocabulary) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func decodeCUE(path string, data []byte, v *Vocabulary) error {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return cueLoadError(err, "compiling CUE")
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return cueLoadError(err, "validating CUE")
	}
	if err := value.Decode(v); err != nil {
		return cueLoadError(err, "decoding CUE")
	}
	return nil
}

func cueLoadError(err error, context string) *LoadError {
	loadErr := &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("%s: %v", context, err), Err: err}
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}

func merge(file, defaults *Vocabulary) *Vocabulary {
	out := *file
	if len(out.Tables) == 0 {
		out.Tables = defaults.Tables
	}
	if len(out.Options.Categories) == 0 {
		out.Options.Categories = defaults.Options.Categories
	}
	if len(out.Options.Areas) == 0 {
		out.Options.Areas = defaults.Options.Areas
	}
	if len(out.Options.Ingredients) == 0 {
		out.Options.Ingredients = defaults.Options.Ingredients
	}
	if len(out.Options.Diets) == 0 {
		out.Options.Diets = defaults.Options.Diets
	}
	if out.Presets == nil {
		out.Presets = defaults.Presets
	}
	return &out
}
