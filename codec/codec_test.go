package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type header struct {
	Orders   []string          `json:"orders"`
	Limits   []float64         `json:"limits"`
	Metadata map[string]string `json:"metadata"`
}

func testHeader() header {
	return header{
		Orders:   []string{"as0a2", "as1a2", "as1a2lr1"},
		Limits:   []float64{0, 0.5, 1, 1.5, 2.25},
		Metadata: map[string]string{"arxiv": "1234.5678", "y_label": "dsig/dy"},
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
	assert.Equal(t, "go-json", Default.Name())
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(testHeader())
			require.NoError(t, err)

			var got header
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, testHeader(), got)
		})
	}
}

func TestCodecsAgree(t *testing.T) {
	assert.JSONEq(t, string(MustMarshal(JSON{}, testHeader())), string(MustMarshal(nil, testHeader())))
}

func TestMustMarshalPanics(t *testing.T) {
	assert.Panics(t, func() { MustMarshal(GoJSON{}, make(chan int)) })
}

func BenchmarkCodec_Marshal(b *testing.B) {
	h := testHeader()
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(h); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodec_Unmarshal(b *testing.B) {
	data := MustMarshal(JSON{}, testHeader())
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			var h header
			for b.Loop() {
				if err := c.Unmarshal(data, &h); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
