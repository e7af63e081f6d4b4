//go:build !tebinvariants

package teb

const invariantsEnabled = false
