package scoring

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// MapStore returns the probability map a model produced right before its
// index-th fixation on image.
type MapStore interface {
	Load(image string, index int) (*mat.Dense, error)
}

// MapStoreProvider picks the store holding the maps a model produced while
// following a given human subject.
type MapStoreProvider interface {
	ForSubject(subject string) MapStore
}

// SharedStore serves the same maps for every subject.
type SharedStore struct {
	MapStore
}

func (s SharedStore) ForSubject(string) MapStore {
	return s.MapStore
}

// SubjectDirs lays stores out as
// <Root>/human_subject_<NN>/probability_maps, NN taken from subject file
// names such as subj07_scanpaths.
type SubjectDirs struct {
	Root string
}

func (s SubjectDirs) ForSubject(subject string) MapStore {
	return NewCSVMapStore(filepath.Join(s.Root, "human_subject_"+SubjectNumber(subject), "probability_maps"))
}

// SubjectNumber extracts the two digit number of names like subj07_scanpaths.
// Other names are returned as they are.
func SubjectNumber(subject string) string {
	if strings.HasPrefix(subject, "subj") && len(subject) >= 6 {
		return subject[4:6]
	}
	return subject
}

// CSVMapStore reads <Root>/<image without extension>/fixation_<index>.csv,
// one map row per line. A .csv.zst file is used when present.
type CSVMapStore struct {
	Root string
}

func NewCSVMapStore(root string) *CSVMapStore {
	return &CSVMapStore{Root: root}
}

func (s *CSVMapStore) Path(image string, index int) string {
	stem := strings.TrimSuffix(image, filepath.Ext(image))
	return filepath.Join(s.Root, stem, fmt.Sprintf("fixation_%d.csv", index))
}

func (s *CSVMapStore) Load(image string, index int) (*mat.Dense, error) {
	path := s.Path(image, index)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = readZstd(path + ".zst")
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: image %s fixation %d (%s)", ErrMapNotFound, image, index, path)
		}
		return nil, fmt.Errorf("read probability map %s: %w", path, err)
	}

	m, err := ParseCSVMap(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func readZstd(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(dec)
}

// ParseCSVMap reads a dense grid of comma separated reals.
func ParseCSVMap(r io.Reader) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse probability map: %w", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, errors.New("empty probability map")
	}

	rows, cols := len(records), len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("probability map cell (%d, %d): %w", i, j, err)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(rows, cols, data), nil
}
