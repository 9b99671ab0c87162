package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFSServesAssetsFromRoot(t *testing.T) {
	static, err := StaticFS()
	require.NoError(t, err)
	for _, name := range []string{"css/console.css", "js/console.js"} {
		_, err := fs.Stat(static, name)
		assert.NoError(t, err, name)
	}
}

func TestTemplatePatternsMatchEmbeddedFiles(t *testing.T) {
	for _, pattern := range TemplatePatterns {
		matches, err := fs.Glob(Templates, pattern)
		require.NoError(t, err)
		assert.NotEmpty(t, matches, pattern)
	}
}
