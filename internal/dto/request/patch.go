package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errPatchNotObject = errors.New("patch document must be a JSON object")

type PatchField struct {
	Name  string
	Value any
}

// Patch is a JSON object decoded with member order preserved. Numbers are
// kept as json.Number so ids survive without float rounding.
type Patch []PatchField

func (p *Patch) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errPatchNotObject
	}

	var fields Patch
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in patch document", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, PatchField{Name: name, Value: value})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = fields
	return nil
}

// Names lists the patched fields in body order.
func (p Patch) Names() []string {
	names := make([]string, len(p))
	for i, field := range p {
		names[i] = field.Name
	}
	return names
}
