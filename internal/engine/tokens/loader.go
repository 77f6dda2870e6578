package tokens

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tokenlint/internal/core/errors"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a deprecation table source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultSource names the embedded table in logs and reports.
const DefaultSource = "@primer/primitives/dist/deprecations/colors.json"

//go:embed data/colors.json
var embeddedColors []byte

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Decode(bytes.NewReader(embeddedColors), FormatJSON)
})

// Default returns the embedded primitives color deprecations. The table is
// decoded once per process.
func Default() (*Table, error) {
	return defaultTable()
}

// FormatForPath picks the decoder from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads a table from disk. An empty path yields the embedded table.
func LoadFile(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "deprecation table not found"), errors.CtxTable, path)
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "open deprecation table"), errors.CtxTable, path)
	}
	defer f.Close()

	t, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxTable, path)
	}
	return t, nil
}

// Decode parses a table where each value is null (no replacement), a string
// (single replacement) or a list of strings (multiple candidates).
func Decode(r io.Reader, format Format) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "read deprecation table")
	}

	raw := make(map[string]any)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON, "":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported table format %q", format))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParse, "decode deprecation table")
	}

	entries := make(map[string]Replacement, len(raw))
	for name, value := range raw {
		r, err := replacementFromValue(value)
		if err != nil {
			return nil, errors.AddContext(err, errors.CtxToken, name)
		}
		entries[name] = r
	}
	return NewTable(entries), nil
}

func replacementFromValue(value any) (Replacement, error) {
	switch v := value.(type) {
	case nil:
		return NoReplacement(), nil
	case string:
		return SingleReplacement(v), nil
	case []any:
		names := make([]string, 0, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return Replacement{}, errors.New(errors.CodeValidationError, fmt.Sprintf("candidate %d is %T, want string", i, item))
			}
			names = append(names, name)
		}
		return MultipleReplacement(names...), nil
	default:
		return Replacement{}, errors.New(errors.CodeValidationError, fmt.Sprintf("replacement is %T, want null, string or list", value))
	}
}
