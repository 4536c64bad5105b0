package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-recon/internal/catalog/model"
)

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b-main.jpg", "a-main.jpg", "a-2.jpg", "notes.txt", "c-main.JPG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "x-main.jpg"), 0o755))

	got, err := ListImages(dir, "-main.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-main.jpg", "b-main.jpg"}, got)

	all, err := ListImages(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-2.jpg", "a-main.jpg", "b-main.jpg", "c-main.JPG"}, all)

	_, err = ListImages(filepath.Join(dir, "nope"), "")
	assert.Error(t, err)
}

func TestSplitImageList(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, SplitImageList("a.jpg, b.jpg\r\n\nc.jpg,"))
	assert.Empty(t, SplitImageList("  "))
}

func TestWithImagePaths(t *testing.T) {
	records := []model.Record{
		{ID: "A1", ImagePaths: []string{"/old/a.jpg"}},
		{ID: "A2", ImagePaths: []string{"/public/images/products/A2-main.jpg"}},
		{ID: "A3"},
	}
	res := model.MatchResult{Assignments: []model.Assignment{
		{ProductKey: "A1", ImageKey: "A1-main.jpg"},
		{ProductKey: "A2", ImageKey: "A2-main.jpg"},
	}}

	out, n := WithImagePaths(records, res, "/public/images/products")
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"/public/images/products/A1-main.jpg", "/old/a.jpg"}, out[0].ImagePaths)
	assert.Equal(t, []string{"/public/images/products/A2-main.jpg"}, out[1].ImagePaths)
	assert.Nil(t, out[2].ImagePaths)
	assert.Equal(t, []string{"/old/a.jpg"}, records[0].ImagePaths)
}
