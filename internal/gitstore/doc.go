// Package gitstore is the read-only view of a repository's object store
// used while generating pages.
//
// A Store is opened without searching parent directories, works for bare
// and non-bare repositories alike, and answers "HEAD:path" style questions
// (is this a blob, a tree, a submodule or nothing) through a small LRU
// cache because the same lookups repeat for every page of a repository.
package gitstore
