package prediction

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ManufacturerCount is one bar of the "events by manufacturer" chart.
type ManufacturerCount struct {
	Name       string `json:"name" validate:"required"`
	EventCount int    `json:"eventCount" validate:"gte=0"`
}

// Manufacturers is the normalized manufacturer sequence. Older servers sent a
// bare name, a list of names, a name->count object or a list of records;
// decoding folds every one of those into records so callers see one shape.
type Manufacturers []ManufacturerCount

func (m *Manufacturers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return errors.Wrap(err, "manufacturers: decode name")
		}
		// A bare name is one manufacturer, commas included ("Medtronic, Inc.").
		if name = strings.TrimSpace(name); name == "" {
			*m = nil
		} else {
			*m = Manufacturers{{Name: name}}
		}
		return nil
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "manufacturers: decode object")
		}
		names := make([]string, 0, len(raw))
		for name := range raw {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make(Manufacturers, 0, len(raw))
		for _, name := range names {
			var count float64
			if err := json.Unmarshal(raw[name], &count); err != nil {
				count = 0
			}
			out = append(out, ManufacturerCount{Name: name, EventCount: int(count)})
		}
		*m = out
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return errors.Wrap(err, "manufacturers: decode list")
		}
		out := make(Manufacturers, 0, len(items))
		for i, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) > 0 && item[0] == '"' {
				var name string
				if err := json.Unmarshal(item, &name); err != nil {
					return errors.Wrapf(err, "manufacturers: decode item %d", i)
				}
				if name = strings.TrimSpace(name); name != "" {
					out = append(out, ManufacturerCount{Name: name})
				}
				continue
			}
			var rec ManufacturerCount
			if err := json.Unmarshal(item, &rec); err != nil {
				return errors.Wrapf(err, "manufacturers: decode item %d", i)
			}
			out = append(out, rec)
		}
		*m = out
		return nil
	}
	return errors.Newf("manufacturers: unsupported JSON value %q", truncate(string(data), 32))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
