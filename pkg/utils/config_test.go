package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, DriverFile, config.Storage.Driver)
	assert.Equal(t, "movies", config.Storage.SnapshotKey)
	assert.Equal(t, "default-cover.jpg", config.Cover.Fallback)
	assert.Equal(t, 5*time.Second, config.Cover.Timeout)
	assert.False(t, config.App.SecureCookies)
}

func TestLoadConfigFrom_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nSTORAGE_DRIVER=sqlite\nCOVER_TIMEOUT_SECONDS=2\nDB_HOST=db.local\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_HOST", "override.local")

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.App.Port)
	assert.Equal(t, DriverSQLite, config.Storage.Driver)
	assert.Equal(t, 2*time.Second, config.Cover.Timeout)
	assert.Equal(t, "override.local", config.Database.Host)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), id)

	for _, bad := range []string{"", "abc", "-3", "0"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, 3, ParseInt("3", -1))
	assert.Equal(t, -1, ParseInt("x", -1))
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Title  string `validate:"required"`
		Status string `validate:"oneof=a b"`
	}

	errs := ValidateStruct(form{Status: "c"})
	assert.Equal(t, "This field is required", errs["Title"])
	assert.Equal(t, "Must be one of: a, b", errs["Status"])
	assert.Equal(t, "Status: Must be one of: a, b; Title: This field is required", FormatValidationErrors(errs))

	assert.Empty(t, ValidateStruct(form{Title: "x", Status: "a"}))
}
