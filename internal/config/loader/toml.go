package loader

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLDecoder decodes TOML configuration.
type TOMLDecoder struct{}

// Decode parses TOML data into v, rejecting keys v does not declare.
func (TOMLDecoder) Decode(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			pe.Line, pe.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			pe.Line, pe.Column = serr.Errors[0].Position()
			pe.Message = "unknown key " + joinKey(serr.Errors[0].Key())
		}
		return pe
	}
	return nil
}

func joinKey(parts []string) string {
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}
