package ios

import (
	"fmt"
	"maps"

	"howett.net/plist"
)

// InfoPlist is a decoded property list dictionary.
type InfoPlist map[string]any

// ParseInfoPlist decodes a property list in any format and returns the
// format so it can be written back the same way.
func ParseInfoPlist(data []byte) (InfoPlist, int, error) {
	out := InfoPlist{}
	format, err := plist.Unmarshal(data, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("parse plist: %w", err)
	}
	return out, format, nil
}

// FormatInfoPlist encodes values, defaulting to the XML format Xcode writes.
func FormatInfoPlist(values InfoPlist, format int) ([]byte, error) {
	if format == 0 {
		format = plist.XMLFormat
	}
	indent := ""
	if format == plist.XMLFormat {
		indent = "\t"
	}
	data, err := plist.MarshalIndent(map[string]any(values), format, indent)
	if err != nil {
		return nil, fmt.Errorf("encode plist: %w", err)
	}
	if format == plist.XMLFormat && len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// SetInfoPlistValues returns a copy of current with values assigned at the
// top level. Nested dictionaries are replaced, not merged.
func SetInfoPlistValues(current, values InfoPlist) InfoPlist {
	out := make(InfoPlist, len(current)+len(values))
	maps.Copy(out, current)
	maps.Copy(out, values)
	return out
}

// Clone deep-copies nested dictionaries and arrays.
func (p InfoPlist) Clone() InfoPlist {
	if p == nil {
		return nil
	}
	return cloneValue(map[string]any(p)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case InfoPlist:
		return InfoPlist(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []byte:
		return append([]byte(nil), t...)
	default:
		return v
	}
}
