package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shroudlabs/go-shroud-data/data"
)

func TestJSONSerializer_DataRoundTrip(t *testing.T) {
	s := NewJSONSerializer()
	assert.Equal(t, "json", s.Name())

	cases := []data.Data{
		data.New("my.path", []data.DataValue{data.BoolValue(true)}, nil),
		data.New("n", []data.DataValue{data.U64Value(7), data.I64Value(-7), data.F64Value(10.52)}, nil),
		data.New("vault.card", []data.DataValue{
			data.EncryptedValue([]byte("blob"), data.TypeU64, "k1"),
		}, []string{"k1"}),
	}
	for _, d := range cases {
		b, err := s.Serialize(d)
		require.NoError(t, err)

		var back data.Data
		require.NoError(t, s.Deserialize(b, &back))
		assert.Equal(t, d, back)
	}
}

func TestJSONSerializer_DeserializeError(t *testing.T) {
	s := NewJSONSerializer()
	var d data.Data
	assert.Error(t, s.Deserialize([]byte("{not json"), &d))
}
