package tipos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsearTipoCompresionBloque(t *testing.T) {
	testCases := []struct {
		entrada  string
		esperado TipoCompresionBloque
	}{
		{"", Ninguna},
		{"ninguna", Ninguna},
		{"LZ4", LZ4},
		{" zstd ", ZSTD},
		{"Snappy", Snappy},
		{"gzip", Gzip},
	}

	for _, tc := range testCases {
		t.Run(tc.entrada, func(t *testing.T) {
			tipo, err := ParsearTipoCompresionBloque(tc.entrada)
			require.NoError(t, err)
			assert.Equal(t, tc.esperado, tipo)
		})
	}

	_, err := ParsearTipoCompresionBloque("brotli")
	assert.Error(t, err)
}
