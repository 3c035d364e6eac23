package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ticket\n"), 0o644))
	}
}

func TestNewDiscoveryNormalizesExtensions(t *testing.T) {
	d := NewDiscovery([]string{".CSV", "txt", " ", ""})

	assert.Len(t, d.extensions, 2)
	assert.True(t, d.Matches("history.csv"))
	assert.True(t, d.Matches("HISTORY.CSV"))
	assert.True(t, d.Matches("notes.TXT"))
	assert.False(t, d.Matches("book.xlsx"))
	assert.False(t, d.Matches("csv"))
}

func TestFindImportFiles(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "only matching files",
			files: []string{"b.csv", "a.csv", "c.TXT"},
			want:  []string{"a.csv", "b.csv", "c.TXT"},
		},
		{
			name:  "mixed file types",
			files: []string{"trades.csv", "report.xlsx", "doc.pdf"},
			want:  []string{"trades.csv"},
		},
		{
			name:  "hidden files skipped",
			files: []string{".partial.csv", "done.csv"},
			want:  []string{"done.csv"},
		},
		{
			name:  "empty directory",
			files: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFiles(t, dir, tt.files...)
			require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

			found, err := NewDiscovery([]string{".csv", ".txt"}).FindImportFiles(dir)
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
				assert.Equal(t, int64(len("ticket\n")), f.Size)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFindImportFilesMissingDirectory(t *testing.T) {
	_, err := NewDiscovery([]string{".csv"}).FindImportFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestPaths(t *testing.T) {
	files := []FileInfo{{Path: "/a/x.csv"}, {Path: "/a/y.csv"}}
	assert.Equal(t, []string{"/a/x.csv", "/a/y.csv"}, Paths(files))
	assert.Empty(t, Paths(nil))
}

