// Package repo holds the per-run state of one repository: where it is
// read from, where its pages go, and what the repository says about
// itself through its overlay file and its head tree.
package repo
