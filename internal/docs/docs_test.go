package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "churn"), 0o755))
	content := "# Churn\r\n\r\n\r\n\r\nModelo **Random Forest**.\r\n\r\n| a | b |\r\n|---|---|\r\n| 1 | 2 |\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "churn", "README.md"), []byte(content), 0o644))

	res := NewStore(dir).Load("churn")
	require.Nil(t, res.Err)
	assert.Equal(t, "# Churn\n\nModelo **Random Forest**.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n", res.Markdown)
	assert.Contains(t, res.HTML, "<h1>Churn</h1>")
	assert.Contains(t, res.HTML, "<strong>Random Forest</strong>")
	assert.Contains(t, res.HTML, "<table>")
}

func TestLoadMissingFile(t *testing.T) {
	res := NewStore(t.TempDir()).Load("geomarketing")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindNotFound, res.Err.Kind)
	assert.Equal(t, NotFoundMessage, res.Err.Message())
	assert.Empty(t, res.HTML)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\n\nb\nc", Normalize([]byte("a\r\n\r\n\r\n\r\nb\rc")))
}
