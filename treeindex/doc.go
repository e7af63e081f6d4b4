// Package treeindex has the index arithmetic for the complete binary tree
// that a tree encoded bitmap is carved from. Everything here is pure
// arithmetic on level order node numbers and logical positions; nothing
// touches a buffer.
package treeindex
