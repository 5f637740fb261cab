package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	migrations, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_init", migrations[0].Version)
	assert.True(t, strings.Contains(migrations[0].SQL, "appointments_no_overlap"))
	assert.True(t, strings.Contains(migrations[0].SQL, "pg_notify('appointment_changes'"))

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}
