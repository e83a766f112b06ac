package naming

import (
	"fmt"
	"strings"
)

// GeneratedName composes "<label><objectNo> <deviceId> <functionCode>".
func (c Convention) GeneratedName(t ObjectType, objectNo, code int) string {
	return fmt.Sprintf("%s%d%s", c.Label(t), objectNo, c.nameSuffix(code))
}

// BaseName strips the " <deviceId> <code>" suffix from a final name.
// Names without the suffix are returned unchanged.
func (c Convention) BaseName(finalName string, code int) string {
	return strings.TrimSuffix(finalName, c.nameSuffix(code))
}

// ExpandBaseName appends the " <deviceId> <code>" suffix to a base name.
func (c Convention) ExpandBaseName(base string, code int) string {
	return base + c.nameSuffix(code)
}

func (c Convention) nameSuffix(code int) string {
	return fmt.Sprintf(" %d %d", c.DeviceID, code)
}

// NameMap returns address → final name for a batch.
func NameMap(entries []Entry) map[string]string {
	names := make(map[string]string, len(entries))
	for _, e := range entries {
		names[e.Address] = e.FinalName
	}
	return names
}

// MergeOverrides layers caller overrides on top of base names.
// Overrides are trimmed; blank overrides are ignored. Neither input map
// is modified.
func MergeOverrides(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for addr, name := range base {
		merged[addr] = name
	}
	for addr, name := range overrides {
		if name = strings.TrimSpace(name); name != "" {
			merged[addr] = name
		}
	}
	return merged
}

// ApplyOverrides returns a copy of entries whose final names come from
// overrides where a non-blank override exists and from the generated name
// otherwise.
func ApplyOverrides(entries []Entry, overrides map[string]string) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.FinalName = e.GeneratedName
		if name := strings.TrimSpace(overrides[e.Address]); name != "" {
			e.FinalName = name
		}
		out[i] = e
	}
	return out
}
