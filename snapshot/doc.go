// Package snapshot persists a clustering model to a compact binary file
// and loads it back.
//
// A snapshot holds the final centroids, the per-point assignments, the
// per-cluster costs and counts, and the run summary. The layout is:
//
//	Header   (40 bytes, little endian)
//	Body     (centroids f64 | costs f64 | counts u64 | assignments u32),
//	         optionally LZ4 or ZSTD compressed
//	Checksum (CRC32 IEEE over header and stored body)
//
// Reads and writes can be throttled through a resource.Controller.
package snapshot
