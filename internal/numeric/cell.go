package numeric

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// cellKind tags the variant held by a Cell.
type cellKind int

const (
	cellBlank cellKind = iota
	cellNumber
	cellText
)

// Cell is a raw workbook value: a number, free text, or blank.
// The zero value is Blank.
type Cell struct {
	kind cellKind
	num  float64
	text string
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: cellNumber, num: f}
}

// Text returns a free-text cell. The text is stored verbatim.
func Text(s string) Cell {
	return Cell{kind: cellText, text: s}
}

// Blank returns an empty cell.
func Blank() Cell {
	return Cell{}
}

// IsBlank reports whether the cell holds nothing.
func (c Cell) IsBlank() bool { return c.kind == cellBlank }

// Raw returns the text of a text cell and false for any other variant.
func (c Cell) Raw() (string, bool) {
	if c.kind != cellText {
		return "", false
	}
	return c.text, true
}

// String renders the cell the way the workbook would show it.
func (c Cell) String() string {
	switch c.kind {
	case cellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case cellText:
		return c.text
	default:
		return ""
	}
}

// UnmarshalYAML decodes a scalar node. Integer and float tags become Number,
// null becomes Blank, and every other scalar is kept as Text.
func (c *Cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cell must be a scalar", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		*c = Blank()
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			*c = Text(node.Value)
			return nil //nolint:nilerr // unparseable numerics degrade to text
		}
		*c = Number(f)
	default:
		*c = Text(node.Value)
	}
	return nil
}

// MarshalYAML encodes the cell back to its scalar form.
func (c Cell) MarshalYAML() (interface{}, error) {
	switch c.kind {
	case cellNumber:
		return c.num, nil
	case cellText:
		return c.text, nil
	default:
		return nil, nil
	}
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and blanks as null.
// Non-finite numbers are encoded as null since JSON cannot carry them.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case cellNumber:
		if v := FromFloat(c.num); !v.ok {
			return []byte("null"), nil
		}
		return json.Marshal(c.num)
	case cellText:
		return json.Marshal(c.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*c = Blank()
	case float64:
		*c = Number(v)
	case string:
		*c = Text(v)
	case bool:
		*c = Text(strconv.FormatBool(v))
	default:
		return fmt.Errorf("cell must be a number, string or null, got %T", raw)
	}
	return nil
}
