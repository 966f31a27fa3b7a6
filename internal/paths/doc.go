// Package paths holds the lexical path handling used before anything is
// written to the destination tree.
//
// Every destination path is built with Join or Canonicalize and checked with
// Within, all without filesystem access. Unhide turns dot-prefixed names
// (".gitmodules", ".github/") into names that static web servers publish.
// ProvisionTree is the only function here with side effects.
package paths
