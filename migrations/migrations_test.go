package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/brew?sslmode=disable", pgx5URL("postgres://u:p@localhost:5432/brew?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/brew", pgx5URL("postgresql://u@db/brew"))
	assert.Equal(t, "pgx5://already", pgx5URL("pgx5://already"))
}

func TestArchivosEmbebidos(t *testing.T) {
	up, err := fs.Glob(migrations, "*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(migrations, "*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up), "cada migración tiene su reversa")
}
