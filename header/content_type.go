package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ContentType represents the Content-Type header field.
// The Content-Type header field indicates the media type of the message body sent to the recipient.
//
//	Content-Type = ( "Content-Type" / "c" ) HCOLON media-type
type ContentType MIMEType

func readContentType(c *scan.Cursor) (Header, error) {
	mt, err := readMediaType(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if mt.Params, err = readHdrParams(c, &mt, noFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return (*ContentType)(&mt), nil
}

// CanonicName returns the canonical name of the header.
func (*ContentType) CanonicName() Name { return "Content-Type" }

// CompactName returns the compact name of the header.
func (*ContentType) CompactName() Name { return "c" }

// RenderTo writes the header to the provided writer.
func (hdr *ContentType) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, MIMEType(*hdr).renderTo))
}

// Render returns the string representation of the header.
func (hdr *ContentType) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ContentType) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return MIMEType(*hdr).String()
}

// String returns the string representation of the header value.
func (hdr *ContentType) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *ContentType) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := ContentType(MIMEType(*hdr).Clone())
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *ContentType) Equal(val any) bool {
	other, ok := castHdr[ContentType](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return MIMEType(*hdr).Equal(MIMEType(*other))
}

// IsValid checks whether the header is syntactically valid.
func (hdr *ContentType) IsValid() bool { return hdr != nil && MIMEType(*hdr).IsValid() }

// MediaType returns the lowercase "type/subtype" without parameters.
func (hdr *ContentType) MediaType() string {
	if hdr == nil {
		return ""
	}
	return MIMEType(*hdr).MediaType()
}
