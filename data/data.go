// Package data defines the unit of data moved between the durable store and the
// cache: a normalized path, one or more leaf values, and the provenance of which
// keys encrypted them. All types are passed by value; transformations return new
// values rather than mutating in place.
package data

import (
	"encoding/json"
	"strings"
)

// Data stores a unit of data. Each Data is located at a DataPath and holds one or
// more DataValues. It can optionally be encrypted by a variety of keys, recorded by
// name in encryptedBy; that provenance list is kept separate from the per-value
// encryption tag and is not reconciled against it here; callers keep them
// consistent.
type Data struct {
	path        DataPath
	values      []DataValue
	encryptedBy []string
}

// New builds a Data from a raw path, values and the optional encrypting-key names.
// The path is normalized; an empty value list is replaced by the default value so
// the non-empty invariant always holds.
func New(path string, values []DataValue, encryptedBy []string) Data {
	vs := make([]DataValue, len(values))
	copy(vs, values)
	if len(vs) == 0 {
		vs = []DataValue{DefaultValue()}
	}

	var keys []string
	if len(encryptedBy) > 0 {
		keys = make([]string, len(encryptedBy))
		copy(keys, encryptedBy)
	}

	return Data{
		path:        NewDataPath(path),
		values:      vs,
		encryptedBy: keys,
	}
}

// Path returns the normalized path string
func (d Data) Path() string {
	return d.path.String()
}

// DataPath returns the typed path
func (d Data) DataPath() DataPath {
	return d.path
}

// Values returns a copy of the ordered value sequence
func (d Data) Values() []DataValue {
	vs := make([]DataValue, len(d.values))
	copy(vs, d.values)
	return vs
}

// EncryptedBy returns a copy of the optional list of encrypting-key names
// (nil when the data is not encrypted)
func (d Data) EncryptedBy() []string {
	if d.encryptedBy == nil {
		return nil
	}
	keys := make([]string, len(d.encryptedBy))
	copy(keys, d.encryptedBy)
	return keys
}

// String concatenates the textual rendering of each value in order
func (d Data) String() string {
	var b strings.Builder
	for _, v := range d.values {
		b.WriteString(v.String())
	}
	return b.String()
}

// dataJSON is the wire shape of Data
type dataJSON struct {
	Path        DataPath    `json:"path"`
	Values      []DataValue `json:"values"`
	EncryptedBy []string    `json:"encryptedby,omitempty"`
}

// MarshalJSON serializes the data unit
func (d Data) MarshalJSON() ([]byte, error) {
	values := d.values
	if len(values) == 0 {
		values = []DataValue{DefaultValue()}
	}
	return json.Marshal(dataJSON{
		Path:        d.path,
		Values:      values,
		EncryptedBy: d.encryptedBy,
	})
}

// UnmarshalJSON deserializes a data unit, restoring the non-empty value invariant
func (d *Data) UnmarshalJSON(b []byte) error {
	var raw dataJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Values) == 0 {
		raw.Values = []DataValue{DefaultValue()}
	}
	if len(raw.EncryptedBy) == 0 {
		raw.EncryptedBy = nil
	}
	d.path = raw.Path
	d.values = raw.Values
	d.encryptedBy = raw.EncryptedBy
	return nil
}

// DataCollection is returned when a find or search matches multiple Data records
type DataCollection struct {
	Data []Data `json:"data"`
}
