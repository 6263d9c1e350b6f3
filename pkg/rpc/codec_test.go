package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMessage struct {
	Name  string    `json:"name"`
	Count int       `json:"count"`
	Tags  []string  `json:"tags,omitempty"`
	Score []float64 `json:"score,omitempty"`
}

func TestJSONCodec_Name(t *testing.T) {
	assert.Equal(t, "json", JSONCodec{}.Name())
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	codec := JSONCodec{}

	original := testMessage{
		Name:  "corridor",
		Count: 3,
		Tags:  []string{"a", "b"},
		Score: []float64{1.5, 10},
	}

	data, err := codec.Marshal(original)
	require.NoError(t, err)

	var decoded testMessage
	require.NoError(t, codec.Unmarshal(data, &decoded))

	assert.Equal(t, original, decoded)
}

func TestJSONCodec_UnmarshalInvalid(t *testing.T) {
	var decoded testMessage
	err := JSONCodec{}.Unmarshal([]byte("{not json"), &decoded)
	assert.Error(t, err)
}

func TestHandlerOptions(t *testing.T) {
	opts := HandlerOptions()
	assert.Len(t, opts, 1)
}
