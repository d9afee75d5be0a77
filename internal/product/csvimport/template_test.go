package csvimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTemplateCSV(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(string(TemplateCSV())), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,nombre,ubicacion,numero_lotes,tamano_lote,unidades,cantidad_disponible,fecha_expiracion,proveedores,umbral_minimo,umbral_maximo,entrada,precio_compra,total_compra,imagen_url,categoria_abc", lines[0])
	assert.Len(t, strings.Split(lines[1], ","), 16)
}

func TestTemplateXLSX(t *testing.T) {
	data, err := TemplateXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(templateSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Fields, rows[0])
	assert.Equal(t, exampleRow, rows[1])
}
