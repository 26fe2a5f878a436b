package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calderasa/tablequal/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parquetRow struct {
	ID    int64    `parquet:"id"`
	Nome  string   `parquet:"nome"`
	Valor float64  `parquet:"valor"`
	Saldo *float64 `parquet:"saldo,optional"`
}

func writeParquet(t *testing.T, rows []parquetRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := parquet.NewGenericWriter[parquetRow](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoadParquet(t *testing.T) {
	saldoVal := 99.5
	path := writeParquet(t, []parquetRow{
		{ID: 1, Nome: "Cliente A", Valor: 10.5, Saldo: &saldoVal},
		{ID: 2, Nome: "Cliente B", Valor: 12.0},
		{ID: 3, Nome: "Cliente C", Valor: 11.25},
	})

	ds, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "nome", "valor", "saldo"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.Rows())

	id := ds.Column("id")
	require.NotNil(t, id)
	assert.Equal(t, schema.NumericColumn, id.Type)
	assert.Equal(t, "1", id.Cells[0].Raw)

	nome := ds.Column("nome")
	require.NotNil(t, nome)
	assert.Equal(t, schema.TextualColumn, nome.Type)

	// Null parquet values come through as null cells.
	saldo := ds.Column("saldo")
	require.NotNil(t, saldo)
	assert.False(t, saldo.Cells[0].Null)
	assert.True(t, saldo.Cells[1].Null)
	assert.True(t, saldo.Cells[2].Null)
}

func TestLoadParquetMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.parquet"), Options{})
	require.Error(t, err)
}
