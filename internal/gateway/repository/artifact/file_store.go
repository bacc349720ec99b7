package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps artifacts on the local filesystem under a fixed root,
// one directory per pipeline run. It is the dependency-free alternative to
// the S3 store for local development. All paths are resolved against the
// root and requests that would escape it are rejected, since artifact names
// reach this store from the HTTP surface.
type FileStore struct {
	absRoot string
}

func NewFileStore(root string) (*FileStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("artifact: empty root directory")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create root: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	return &FileStore{absRoot: abs}, nil
}

func (s *FileStore) Put(ctx context.Context, pipelineID, name string, content []byte) error {
	if s == nil {
		return errors.New("artifact: store is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(pipelineID, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if content == nil {
		content = []byte{}
	}
	return os.WriteFile(path, content, 0o644)
}

func (s *FileStore) Get(ctx context.Context, pipelineID, name string) ([]byte, error) {
	if s == nil {
		return nil, errors.New("artifact: store is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(pipelineID, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// resolve maps (pipelineID, name) to an absolute path strictly under the
// store root.
func (s *FileStore) resolve(pipelineID, name string) (string, error) {
	pipelineID = strings.TrimSpace(pipelineID)
	name = strings.TrimSpace(name)
	if pipelineID == "" {
		return "", errors.New("artifact: pipeline_id is required")
	}
	if name == "" {
		return "", errors.New("artifact: name is required")
	}
	for _, part := range []string{pipelineID, name} {
		clean := filepath.Clean(part)
		if filepath.IsAbs(clean) || clean == ".." ||
			strings.HasPrefix(clean, ".."+string(filepath.Separator)) ||
			strings.Contains(clean, string(filepath.Separator)) {
			return "", fmt.Errorf("artifact: invalid path element %q", part)
		}
	}
	joined := filepath.Join(s.absRoot, pipelineID, name)
	if !strings.HasPrefix(joined, s.absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact: resolved outside root")
	}
	return joined, nil
}
