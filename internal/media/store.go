package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"socialblaster/pkg/s3"

	"github.com/google/uuid"
)

// Store is the blob-store collaborator behind the upload endpoint: it takes
// a file's bytes and returns an opaque URL.
type Store interface {
	Save(filename string, file io.Reader, contentType string) (string, error)
}

// DiskStore writes uploads to a local directory served under /uploads/.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(filename string, file io.Reader, _ string) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return "/uploads/" + name, nil
}

// S3Store keeps uploads in an S3 (or MinIO) bucket.
type S3Store struct {
	client *s3.Client
}

func NewS3Store(client *s3.Client) *S3Store {
	return &S3Store{client: client}
}

func (s *S3Store) Save(filename string, file io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("media/%s%s", uuid.New().String(), filepath.Ext(filename))
	return s.client.UploadFile(key, file, contentType)
}
