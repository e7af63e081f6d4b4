//go:build tebinvariants

package teb

// invariantsEnabled makes every mutation verify the full encoding and panic
// on the first violation.
const invariantsEnabled = true
