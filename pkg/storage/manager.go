package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect configures the disks. Call once during server boot, before any
// upload handler runs.
func Connect() {
	defaultDisk = config.Get("STORAGE_DISK", "local")

	disks["local"] = newLocalDisk()

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Error("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk, "local" or "s3". Panics on an unknown name
// since that is a wiring mistake, not a runtime condition.
func Use(name string) Disk {
	mu.RLock()
	d, ok := disks[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk installs a custom Disk, mainly for tests.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

func active() Disk { return Use(defaultDisk) }

// Helpers against the default disk.

func Put(path string, content []byte) error    { return active().Put(path, content) }
func PutStream(path string, r io.Reader) error { return active().PutStream(path, r) }
func Get(path string) ([]byte, error)          { return active().Get(path) }
func GetStream(path string) (io.ReadCloser, error) {
	return active().GetStream(path)
}
func Exists(path string) bool                { return active().Exists(path) }
func Missing(path string) bool               { return active().Missing(path) }
func Size(path string) (int64, error)        { return active().Size(path) }
func URL(path string) string                 { return active().URL(path) }
func Delete(path string) error               { return active().Delete(path) }
func Files(dir string) ([]string, error)     { return active().Files(dir) }
