package project

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// fileSystem is the narrow slice of afs.Service this package needs,
// so tests can substitute a fake without spinning up a real afs.Service.
type fileSystem interface {
	DownloadWithURL(ctx context.Context, url string, options ...storage.Option) ([]byte, error)
}

// newFileSystem returns the real local/remote-capable afs.Service used
// in production; ReadSource never distinguishes local paths from other
// afs-supported schemes, matching the teacher's own afs usage.
func newFileSystem() fileSystem {
	return afs.New()
}
