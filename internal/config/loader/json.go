package loader

import (
	"io"

	"github.com/tidwall/gjson"
)

// JSONLoader parses JSON configuration files.
type JSONLoader struct{}

// LoadFrom reads JSON configuration from a path.
func (l *JSONLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader reads JSON configuration from a reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return l.parse("<reader>", data)
}

func (l *JSONLoader) parse(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{
			Path:    source,
			Message: "invalid JSON",
		}
	}

	value := gjson.ParseBytes(data).Value()
	out, ok := value.(map[string]any)
	if !ok {
		return nil, &ParseError{
			Path:    source,
			Message: "top-level value must be an object",
		}
	}
	return out, nil
}
