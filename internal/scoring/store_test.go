package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, root, image string, index int, body string) {
	t.Helper()
	store := NewCSVMapStore(root)
	path := store.Path(image, index)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestParseCSVMap(t *testing.T) {
	m, err := ParseCSVMap(strings.NewReader("0.1, 0.2,0.3\n0.4,0.5,6e-1\n"))
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 0.6, m.At(1, 2))
	assert.Equal(t, 0.2, m.At(0, 1))
}

func TestParseCSVMap_Invalid(t *testing.T) {
	_, err := ParseCSVMap(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSVMap(strings.NewReader("1,2\n3\n"))
	assert.Error(t, err, "ragged rows")

	_, err = ParseCSVMap(strings.NewReader("1,x\n"))
	assert.Error(t, err)
}

func TestCSVMapStore(t *testing.T) {
	root := t.TempDir()
	writeMap(t, root, "img001.jpg", 1, "1,2\n3,4\n")

	store := NewCSVMapStore(root)
	assert.Equal(t, filepath.Join(root, "img001", "fixation_1.csv"), store.Path("img001.jpg", 1))

	m, err := store.Load("img001.jpg", 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, m.At(1, 1))

	_, err = store.Load("img001.jpg", 2)
	assert.ErrorIs(t, err, ErrMapNotFound)
	assert.Contains(t, err.Error(), "fixation 2")
}

func TestCSVMapStore_Compressed(t *testing.T) {
	root := t.TempDir()
	store := NewCSVMapStore(root)
	path := store.Path("img002.png", 3) + ".zst"
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, enc.EncodeAll([]byte("0,0,1\n"), nil), 0o644))
	enc.Close()

	m, err := store.Load("img002.png", 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.At(0, 2))
}

func TestSubjectDirs(t *testing.T) {
	assert.Equal(t, "07", SubjectNumber("subj07_scanpaths"))
	assert.Equal(t, "alice", SubjectNumber("alice"))

	store := SubjectDirs{Root: "/results/ELM"}.ForSubject("subj07_scanpaths")
	csvStore, ok := store.(*CSVMapStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/results/ELM", "human_subject_07", "probability_maps"), csvStore.Root)
}
