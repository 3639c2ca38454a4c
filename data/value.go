package data

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DataType identifies the scalar type a DataValue holds (or held before encryption)
type DataType string

// Supported scalar types
const (
	TypeBool   DataType = "bool"
	TypeU64    DataType = "u64"
	TypeI64    DataType = "i64"
	TypeF64    DataType = "f64"
	TypeString DataType = "string"
)

// DataValue contains the actual raw value of a piece of Data.
// It is a tagged union with two branches: an unencrypted leaf scalar (bool, uint64,
// int64, float64 or string), or an encrypted payload carrying the scalar type it
// decrypts to and the name of the key that encrypted it.
// A DataValue should always be a leaf value, never an array or object.
type DataValue struct {
	typ DataType

	boolVal bool
	u64Val  uint64
	i64Val  int64
	f64Val  float64
	strVal  string

	encrypted bool
	payload   []byte
	keyName   string
}

// DefaultValue returns the default DataValue: unencrypted Bool(false)
func DefaultValue() DataValue {
	return BoolValue(false)
}

// BoolValue creates an unencrypted boolean value
func BoolValue(b bool) DataValue {
	return DataValue{typ: TypeBool, boolVal: b}
}

// U64Value creates an unencrypted unsigned integer value
func U64Value(n uint64) DataValue {
	return DataValue{typ: TypeU64, u64Val: n}
}

// I64Value creates an unencrypted signed integer value
func I64Value(n int64) DataValue {
	return DataValue{typ: TypeI64, i64Val: n}
}

// F64Value creates an unencrypted float value
func F64Value(f float64) DataValue {
	return DataValue{typ: TypeF64, f64Val: f}
}

// StringValue creates an unencrypted string value
func StringValue(s string) DataValue {
	return DataValue{typ: TypeString, strVal: s}
}

// EncryptedValue creates an encrypted value from a raw payload, the scalar type the
// payload represents when decrypted, and the name of the encrypting key
func EncryptedValue(payload []byte, typ DataType, keyName string) DataValue {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return DataValue{typ: typ, encrypted: true, payload: buf, keyName: keyName}
}

// ParseValue infers a scalar DataValue from its textual form.
// Inference order: bool (exactly "true"/"false"), unsigned integer, signed integer,
// float, string.
func ParseValue(s string) DataValue {
	if s == "true" {
		return BoolValue(true)
	}
	if s == "false" {
		return BoolValue(false)
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return U64Value(n)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return I64Value(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return F64Value(f)
	}
	return StringValue(s)
}

// Type returns the scalar type tag (for encrypted values, the decrypted type)
func (v DataValue) Type() DataType {
	return v.typ
}

// IsEncrypted reports whether the value is the encrypted branch
func (v DataValue) IsEncrypted() bool {
	return v.encrypted
}

// Bool returns the boolean scalar (zero unless Type is bool and unencrypted)
func (v DataValue) Bool() bool {
	return v.boolVal
}

// U64 returns the unsigned integer scalar
func (v DataValue) U64() uint64 {
	return v.u64Val
}

// I64 returns the signed integer scalar
func (v DataValue) I64() int64 {
	return v.i64Val
}

// F64 returns the float scalar
func (v DataValue) F64() float64 {
	return v.f64Val
}

// Str returns the string scalar
func (v DataValue) Str() string {
	return v.strVal
}

// Payload returns a copy of the encrypted payload (nil for unencrypted values)
func (v DataValue) Payload() []byte {
	if v.payload == nil {
		return nil
	}
	buf := make([]byte, len(v.payload))
	copy(buf, v.payload)
	return buf
}

// KeyName returns the name of the encrypting key (empty for unencrypted values)
func (v DataValue) KeyName() string {
	return v.keyName
}

// String renders the value in its textual form.
// Unencrypted scalars render naturally (true/false, decimal digits); encrypted
// values render as encrypted(key: "<key>", type: "<type>", value: "<payload>").
func (v DataValue) String() string {
	if v.encrypted {
		return fmt.Sprintf("encrypted(key: \"%s\", type: \"%s\", value: \"%s\")",
			v.keyName, v.typ, string(v.payload))
	}
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.boolVal)
	case TypeU64:
		return strconv.FormatUint(v.u64Val, 10)
	case TypeI64:
		return strconv.FormatInt(v.i64Val, 10)
	case TypeF64:
		return strconv.FormatFloat(v.f64Val, 'f', -1, 64)
	default:
		return v.strVal
	}
}

// dataValueJSON is the wire shape of a DataValue
type dataValueJSON struct {
	Type      DataType `json:"type"`
	Value     string   `json:"value,omitempty"`
	Encrypted bool     `json:"encrypted,omitempty"`
	Key       string   `json:"key,omitempty"`
	Payload   []byte   `json:"payload,omitempty"`
}

// MarshalJSON serializes the value; the scalar travels in its textual form so that
// unmarshalling recovers the exact variant
func (v DataValue) MarshalJSON() ([]byte, error) {
	typ := v.typ
	if typ == "" {
		typ = TypeBool // zero value marshals as the default Bool(false)
	}
	if v.encrypted {
		return json.Marshal(dataValueJSON{
			Type:      typ,
			Encrypted: true,
			Key:       v.keyName,
			Payload:   v.payload,
		})
	}
	return json.Marshal(dataValueJSON{Type: typ, Value: v.String()})
}

// UnmarshalJSON deserializes a value, parsing the textual scalar per its type tag
func (v *DataValue) UnmarshalJSON(b []byte) error {
	var raw dataValueJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.Encrypted {
		*v = DataValue{
			typ:       raw.Type,
			encrypted: true,
			payload:   raw.Payload,
			keyName:   raw.Key,
		}
		return nil
	}

	parsed, err := parseTyped(raw.Type, raw.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// parseTyped parses a textual scalar according to an explicit type tag
func parseTyped(typ DataType, s string) (DataValue, error) {
	switch typ {
	case TypeBool, "":
		switch s {
		case "true":
			return BoolValue(true), nil
		case "false", "":
			return BoolValue(false), nil
		default:
			return DataValue{}, fmt.Errorf("invalid bool value: %q", s)
		}
	case TypeU64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return DataValue{}, fmt.Errorf("invalid u64 value: %q", s)
		}
		return U64Value(n), nil
	case TypeI64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return DataValue{}, fmt.Errorf("invalid i64 value: %q", s)
		}
		return I64Value(n), nil
	case TypeF64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return DataValue{}, fmt.Errorf("invalid f64 value: %q", s)
		}
		return F64Value(f), nil
	case TypeString:
		return StringValue(s), nil
	default:
		return DataValue{}, fmt.Errorf("unknown data type: %q", typ)
	}
}
