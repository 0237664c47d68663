// Package mmap provides read-only memory-mapped access to local files.
//
// Edge lists for web-scale graphs run to hundreds of megabytes. Mapping the
// file and scanning it sequentially avoids copying every line through a
// read buffer and lets the kernel read ahead aggressively.
//
//	m, err := mmap.Open("web-Google.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	scanner := bufio.NewScanner(m.Reader())
//
// # Platform Support
//
//   - Unix: mmap(2) with madvise(2) access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// A Mapping is safe for concurrent readers. Close is idempotent; callers must
// not touch slices returned by Bytes after Close returns.
package mmap
