package mssn

import "github.com/lalawue/mssn/internal/rng"

// genMask draws a fresh 4-byte masking key from source. Every fragment
// of a built message gets its own key, matching RFC 6455 Section 5.3
// ("each frame ... a new masking key").
func genMask(source rng.Source, key *[4]byte) {
	var n [4]byte
	v := source.Uint32()
	n[0] = byte(v)
	n[1] = byte(v >> 8)
	n[2] = byte(v >> 16)
	n[3] = byte(v >> 24)
	*key = n
}
