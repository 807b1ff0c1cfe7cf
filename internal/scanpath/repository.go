package scanpath

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

const (
	jsonExt = ".json"
	zstdExt = ".json.zst"

	// ModelScanpathsFile is the file a model writes its scanpaths to inside
	// its results directory.
	ModelScanpathsFile = "Scanpaths.json"
)

// Subject is a named collection loaded from one file of a human scanpaths
// directory.
type Subject struct {
	Name      string
	Path      string
	Scanpaths Collection
}

type Repository struct {
	HumanScanpathsDir string
}

func NewRepository(humanScanpathsDir string) *Repository {
	return &Repository{HumanScanpathsDir: humanScanpathsDir}
}

// SubjectFiles lists the collection files in the human scanpaths directory
// in lexical order.
func (r *Repository) SubjectFiles() ([]string, error) {
	entries, err := os.ReadDir(r.HumanScanpathsDir)
	if err != nil {
		return nil, fmt.Errorf("read human scanpaths dir %s: %w", r.HumanScanpathsDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isCollectionFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(r.HumanScanpathsDir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// Subjects loads every subject file. Files that cannot be read or decoded are
// logged and skipped.
func (r *Repository) Subjects() ([]Subject, error) {
	files, err := r.SubjectFiles()
	if err != nil {
		return nil, err
	}

	subjects := make([]Subject, 0, len(files))
	for _, file := range files {
		collection, err := LoadCollection(file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("skipping unreadable subject scanpaths")
			continue
		}
		subjects = append(subjects, Subject{
			Name:      SubjectName(file),
			Path:      file,
			Scanpaths: collection,
		})
	}

	return subjects, nil
}

// LoadModel loads the scanpaths a model wrote under modelResultsDir.
func LoadModel(modelResultsDir string) (Collection, error) {
	path := filepath.Join(modelResultsDir, ModelScanpathsFile)
	if _, err := os.Stat(path + ".zst"); err == nil {
		path += ".zst"
	}
	return LoadCollection(path)
}

// LoadCollection reads a JSON collection file. Files ending in .zst are
// decompressed first.
func LoadCollection(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scanpaths %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader for %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scanpaths %s: %w", path, err)
	}

	return DecodeCollection(data)
}

func DecodeCollection(data []byte) (Collection, error) {
	var collection Collection
	if err := sonic.Unmarshal(bytes.TrimSpace(data), &collection); err != nil {
		return nil, fmt.Errorf("decode scanpaths: %w", err)
	}

	for image, trial := range collection {
		if err := trial.Validate(); err != nil {
			return nil, fmt.Errorf("image %s: %w", image, err)
		}
	}

	return collection, nil
}

// WriteCollection stores a collection as indented JSON, compressing it when
// path ends in .zst.
func WriteCollection(path string, collection Collection) error {
	data, err := sonic.ConfigStd.MarshalIndent(collection, "", "    ")
	if err != nil {
		return fmt.Errorf("encode scanpaths: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	return os.WriteFile(path, data, 0o644)
}

func SubjectName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".zst")
	return strings.TrimSuffix(name, jsonExt)
}

func isCollectionFile(name string) bool {
	return strings.HasSuffix(name, jsonExt) || strings.HasSuffix(name, zstdExt)
}
