package refs

import "crypto/sha256"

// Digest is a fixed 256-bit (SHA-256) content hash. The idempotence guard
// does not use it; it detects prior instrumentation by field-name prefix.
type Digest [32]byte

// Combine builds a composite digest H(content || dep1 || dep2 ...). The
// order of deps must be deterministic; callers pass them pre-sorted.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
