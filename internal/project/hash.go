package project

import "github.com/minio/highwayhash"

// hashKey is a fixed 32-byte key: content hashing here is for change
// detection within one process's cache, not a security boundary, so a
// constant key (as the pack's own highwayhash consumer uses) is fine.
var hashKey = []byte("lumina-project-hash-key--32bytes")

// hashSource returns a stable hex-free uint64 content hash of src, used
// to decide whether a document actually changed before paying for a
// reparse.
func hashSource(src []byte) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// hashKey is a fixed, valid 32-byte key; New64 only errors on key
		// length, so this path is unreachable in practice.
		panic(err)
	}
	_, _ = h.Write(src)
	return h.Sum64()
}
