// Package storage stores uploaded assets, chiefly product images and
// profile pictures. The active disk is chosen with STORAGE_DISK:
//
//   - "local"  filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"     S3-compatible object storage (AWS, MinIO, R2)
//
// Handlers call the package-level helpers, which proxy to the default
// disk:
//
//	storage.PutStream("products/1712345.jpg", file)
//	url := storage.URL("products/1712345.jpg")
package storage

import "io"

// Disk is implemented by each storage driver.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes everything from r to path.
	PutStream(path string, r io.Reader) error

	// Get reads the whole file at path.
	Get(path string) ([]byte, error)

	// GetStream opens the file for reading. Caller closes it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether path holds a file.
	Exists(path string) bool

	// Missing is the inverse of Exists.
	Missing(path string) bool

	// Size returns the file size in bytes.
	Size(path string) (int64, error)

	// URL returns the public URL clients use to fetch path.
	URL(path string) string

	// Delete removes path. Deleting a missing file is not an error.
	Delete(path string) error

	// Files lists the files directly inside directory.
	Files(directory string) ([]string, error)
}
