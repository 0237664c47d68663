// Package fs abstracts the file system operations used for atomic report
// writes so that tests can inject failures.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: wraps another FileSystem and fails writes, syncs, closes
//     or renames of matching files
//
// Tests inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("PageRank.txt", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//	store := blobstore.NewLocalStoreFS(dir, ffs)
//
// Operations take no context.Context: local file system calls are not
// interruptible at the syscall level.
package fs
