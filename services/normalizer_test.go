package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDelimited(t *testing.T) {
	t.Run("campos entrecomillados con coma y comilla escapada", func(t *testing.T) {
		csv := "Nombre,Importe\n\"Smith, \"\"J.\"\"\",100\n"
		rows, err := NormalizeFile("reservas.csv", []byte(csv))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, `Smith, "J."`, rows[0]["Nombre"])
		assert.Equal(t, "100", rows[0]["Importe"])
	})

	t.Run("delimitador detectado línea a línea", func(t *testing.T) {
		// export inconsistente: cabecera con coma, datos con punto y coma
		csv := "Nombre,Importe\nAna;200\nLuis,300\n"
		rows, err := NormalizeFile("reservas.csv", []byte(csv))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Ana", rows[0]["Nombre"])
		assert.Equal(t, "200", rows[0]["Importe"])
		assert.Equal(t, "Luis", rows[1]["Nombre"])
	})

	t.Run("BOM inicial eliminado", func(t *testing.T) {
		csv := "\xEF\xBB\xBFNombre,Importe\nAna,200\n"
		rows, err := NormalizeFile("reservas.csv", []byte(csv))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Ana", rows[0]["Nombre"])
	})

	t.Run("líneas vacías ignoradas", func(t *testing.T) {
		csv := "Nombre,Importe\n\nAna,200\n\n"
		rows, err := NormalizeFile("reservas.csv", []byte(csv))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("fila corta rellena con vacío", func(t *testing.T) {
		csv := "Nombre,Importe,Noches\nAna,200\n"
		rows, err := NormalizeFile("reservas.csv", []byte(csv))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0]["Noches"])
	})

	t.Run("fichero sin cabecera", func(t *testing.T) {
		_, err := NormalizeFile("reservas.csv", []byte(""))
		assert.Error(t, err)
	})
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', detectDelimiter("a,b,c"))
	assert.Equal(t, ';', detectDelimiter("a;b;c"))
	// las comas dentro de comillas no cuentan
	assert.Equal(t, ';', detectDelimiter(`"a,b";c;d`))
	assert.Equal(t, ',', detectDelimiter("sin delimitador"))
}
