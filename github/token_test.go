package github

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() {
		homedir.DisableCache = false
	})

	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "explicit", Token("explicit"))
	assert.Equal(t, "", Token(""), "no gitconfig present")

	gitconfig := "[user]\n\tname = test\n[github]\n\ttoken = abc123\n"
	err := os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0o644)
	require.NoError(t, err)

	assert.Equal(t, "abc123", Token(""))
	assert.Equal(t, "explicit", Token("explicit"), "explicit token wins over gitconfig")
}
