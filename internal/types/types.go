// Package types contains common types shared by the uri, header and sip packages.
package types

//go:generate go tool errtrace -w .

import "io"

// Renderer is implemented by values that can be encoded to their wire text form.
type Renderer interface {
	// Render renders the value to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the value to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// Compact is a boolean flag that is used to render headers with compact names.
	Compact bool `json:"compact,omitempty"`
}

// Equalable is implemented by values that support structural comparison.
type Equalable interface {
	Equal(val any) bool
}

// Cloneable is implemented by values that can be deeply copied.
type Cloneable[T any] interface {
	Clone() T
}
