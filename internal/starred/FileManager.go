package starred

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"stationd/internal/providers"
	"stationd/internal/starred/interfaces"
	"stationd/internal/structures"
	"time"
)

// FileManager owns the starred document on disk.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		path:       conf.Starred.FilePath,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

func (f *FileManager) Path() string {
	return f.path
}

// Ensure creates the document (and its directory) when missing. An existing
// file is left untouched.
func (f *FileManager) Ensure() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create starred dir: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create starred file: %w", err)
	}
	f.logger.Infof(providers.TypeStore, "Created empty starred file %s", f.path)
	return file.Close()
}

func (f *FileManager) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the document through a synced temp file and a rename.
func (f *FileManager) Write(data []byte) error {
	start := time.Now()
	defer func() { f.metrics.ObservePersistenceDuration(time.Since(start)) }()

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// Backup stores a zstd copy of data next to the document as <path><suffix>.zst.
func (f *FileManager) Backup(data []byte, suffix string) (string, error) {
	compressed, err := f.compressor.Compress(data)
	if err != nil {
		return "", err
	}
	target := f.path + suffix + ".zst"
	if err := os.WriteFile(target, compressed, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

func (f *FileManager) ReadBackup(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.compressor.Decompress(data)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
