package stage

import (
	"github.com/cespare/xxhash/v2"
	g "go.hasen.dev/generic"
)

func HashSlice[T any](h *xxhash.Digest, v []T) {
	h.Write(g.UnsafeSliceBytes(v))
}

// relies on Surface being a flat plain object with no pointers
func hashSurfaces(ss []Surface) uint64 {
	h := xxhash.New()
	HashSlice(h, ss)
	return h.Sum64()
}
