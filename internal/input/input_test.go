package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadURLs(t *testing.T) {
	data := "url,owner\n" +
		"https://a.example.com/swagger.json,team-a\n" +
		"\n" +
		"  https://b.example.com/v2/api-docs\n" +
		",orphan\n"

	urls, err := ReadURLs(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.example.com/swagger.json",
		"https://b.example.com/v2/api-docs",
	}, urls)
}

func TestReadURLsEmpty(t *testing.T) {
	urls, err := ReadURLs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, urls)

	urls, err = ReadURLs(strings.NewReader("url\n"))
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestReadURLsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger_urls.csv")
	require.NoError(t, os.WriteFile(path, []byte("url\nhttps://a.example.com/swagger.json\n"), 0o644))

	urls, err := ReadURLsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com/swagger.json"}, urls)

	_, err = ReadURLsFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
