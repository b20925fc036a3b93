package filex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, b, 0o600))
	return p
}

func TestReadText_Success(t *testing.T) {
	p := writeFile(t, "report.txt", []byte("hello, wörld"))

	name, content, err := ReadText(p)
	require.NoError(t, err)
	assert.Equal(t, "report.txt", name)
	assert.Equal(t, "hello, wörld", content)
}

func TestReadText_Empty(t *testing.T) {
	p := writeFile(t, "empty.txt", nil)

	name, content, err := ReadText(p)
	require.NoError(t, err)
	assert.Equal(t, "empty.txt", name)
	assert.Empty(t, content)
}

func TestReadText_Rejects(t *testing.T) {
	_, _, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = ReadText(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, _, err = ReadText(writeFile(t, "bin.dat", []byte{0xff, 0xfe, 0x00}))
	assert.ErrorIs(t, err, ErrNotText)

	big := strings.Repeat("a", common.MaxDocumentBytes+1)
	_, _, err = ReadText(writeFile(t, "big.txt", []byte(big)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestEnsureParentDir(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "a", "b", "docsim.log")

	require.NoError(t, EnsureParentDir(target))
	require.NoError(t, EnsureParentDir(target))

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
