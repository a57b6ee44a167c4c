package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLDecoder decodes YAML configuration.
type YAMLDecoder struct{}

// yaml.v3 reports positions only inside messages.
var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Decode parses YAML data into v, rejecting keys v does not declare.
// An empty document leaves v unchanged.
func (YAMLDecoder) Decode(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			pe.Line, _ = strconv.Atoi(m[1])
		}
		return pe
	}
	return nil
}
