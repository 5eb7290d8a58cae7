package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_pulse_datasets.sql", names[0])
}

func TestMigrationsAreIdempotent(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	for _, name := range names {
		body, err := files.ReadFile(name)
		require.NoError(t, err)

		for _, stmt := range strings.Split(string(body), ";") {
			stmt = strings.ToUpper(strings.TrimSpace(stmt))
			if strings.HasPrefix(stmt, "CREATE") {
				assert.Contains(t, stmt, "IF NOT EXISTS", "%s: %s", name, stmt)
			}
		}
	}
}
