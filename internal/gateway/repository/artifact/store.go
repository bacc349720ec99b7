package artifact

import "context"

// Store holds the rendered publication artifacts of a pipeline run, keyed by
// pipeline id and filename.
type Store interface {
	Put(ctx context.Context, pipelineID, name string, content []byte) error
	Get(ctx context.Context, pipelineID, name string) ([]byte, error)
}

var (
	_ Store = (*S3Store)(nil)
	_ Store = (*FileStore)(nil)
)
