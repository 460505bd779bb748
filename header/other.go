package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Other represents a header without a dedicated parser.
// The value is kept as written with trailing whitespace trimmed.
type Other struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func readOther(c *scan.Cursor, name string) (*Other, error) {
	v, err := c.ReadText()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Other{Name: name, Value: v}, nil
}

// CanonicName returns the canonical name of the header.
func (hdr *Other) CanonicName() Name {
	if hdr == nil {
		return ""
	}
	return CanonicName(hdr.Name)
}

// CompactName returns the canonical name of the header, unknown headers have no compact form.
func (hdr *Other) CompactName() Name { return hdr.CanonicName() }

// RenderTo writes the header to the provided writer.
func (hdr *Other) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *Other) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeString(w, hdr.Value))
}

// Render returns the string representation of the header.
func (hdr *Other) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Other) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return hdr.Value
}

// String returns the string representation of the header value.
func (hdr *Other) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Other) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
// Names are compared case-insensitively, values as is.
func (hdr *Other) Equal(val any) bool {
	other, ok := castHdr[Other](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return util.EqFold(hdr.Name, other.Name) && hdr.Value == other.Value
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Other) IsValid() bool {
	return hdr != nil && scan.IsToken(hdr.Name) && util.IsText(hdr.Value)
}
