package data

import "encoding/json"

// DataPath represents a json-style path locating a Data record.
// The stored string always begins and ends with a period ('.'); validation happens
// on creation and on deserialization, so any json-style path can be supplied.
type DataPath struct {
	path string
}

// NewDataPath validates a path string and returns a DataPath
func NewDataPath(path string) DataPath {
	return DataPath{path: NormalizePath(path)}
}

// NormalizePath ensures that a data entry path begins and ends with a period ('.').
// Empty strings return ".". A single period stays ".". All other strings get periods
// added to the beginning or end as needed. Strings containing runs of periods, or
// composed only of periods, are accepted and returned as given, like any other
// string of length > 1. The function is idempotent.
func NormalizePath(path string) string {
	if path == "" {
		return "."
	}
	if len(path) == 1 {
		if path == "." {
			return "."
		}
		return "." + path + "."
	}

	// '.' is ASCII, so byte comparison is safe on UTF-8 input
	first := path[0] == '.'
	last := path[len(path)-1] == '.'
	switch {
	case first && last:
		return path
	case !first && !last:
		return "." + path + "."
	case !first:
		return "." + path
	default:
		return path + "."
	}
}

// String returns the normalized path string
func (p DataPath) String() string {
	return p.path
}

// Equal reports whether two paths are identical
func (p DataPath) Equal(other DataPath) bool {
	return p.path == other.path
}

// MarshalJSON serializes the path as its string form
func (p DataPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.path)
}

// UnmarshalJSON deserializes and normalizes a path string
func (p *DataPath) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p.path = NormalizePath(s)
	return nil
}
