// Package util provides string and buffer helpers shared by the parsers and encoders.
package util

// Byteseq is an input buffer accepted by the parse functions.
type Byteseq interface {
	~string | ~[]byte
}
