package transform

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CreditFee is deducted from a user's balance per applied transformation.
const CreditFee = 1

// Transformation kinds supported by the media service.
const (
	KindRestore          = "restore"
	KindFillBackground   = "fillBackground"
	KindRemove           = "remove"
	KindRecolor          = "recolor"
	KindRemoveBackground = "removeBackground"
)

// Config maps a transformation kind to its parameter map, e.g.
// {"remove": {"prompt": "cat", "removeShadow": true}}.
type Config map[string]map[string]interface{}

// Value serializes the config for storage as a JSON text column.
func (c Config) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *Config) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported config column type %T", value)
	}

	return json.Unmarshal(data, c)
}

// Template returns the seed parameter map for a transformation kind, or nil
// for an unknown kind.
func Template(kind string) Config {
	switch kind {
	case KindRestore:
		return Config{KindRestore: {"restore": true}}
	case KindFillBackground:
		return Config{KindFillBackground: {"fillBackground": true}}
	case KindRemove:
		return Config{KindRemove: {"prompt": "", "removeShadow": false, "multiple": false}}
	case KindRecolor:
		return Config{KindRecolor: {"prompt": "", "to": "", "multiple": false}}
	case KindRemoveBackground:
		return Config{KindRemoveBackground: {"removeBackground": true}}
	}
	return nil
}

// AspectRatio is a preset working-canvas size selectable in the fill flow.
type AspectRatio struct {
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var aspectRatios = map[string]AspectRatio{
	"1:1":  {Label: "Square (1:1)", Width: 1000, Height: 1000},
	"3:4":  {Label: "Standard Portrait (3:4)", Width: 1000, Height: 1334},
	"9:16": {Label: "Phone Portrait (9:16)", Width: 1000, Height: 1778},
}

// AspectRatioByKey returns the preset for keys like "1:1", "3:4", "9:16".
func AspectRatioByKey(key string) (AspectRatio, bool) {
	ar, ok := aspectRatios[key]
	return ar, ok
}
