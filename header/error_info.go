package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ErrorInfo represents the Error-Info header field.
// The Error-Info header field provides a pointer to additional information about the error status response.
type ErrorInfo []InfoAddr

func readErrorInfo(c *scan.Cursor) (Header, error) {
	list, err := readInfoAddrList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return ErrorInfo(list), nil
}

// CanonicName returns the canonical name of the header.
func (ErrorInfo) CanonicName() Name { return "Error-Info" }

// CompactName returns the compact name of the header (Error-Info has no compact form).
func (ErrorInfo) CompactName() Name { return "Error-Info" }

// RenderTo writes the header to the provided writer.
func (hdr ErrorInfo) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr ErrorInfo) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderInfoAddrList(w, hdr))
}

// Render returns the string representation of the header.
func (hdr ErrorInfo) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr ErrorInfo) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr ErrorInfo) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr ErrorInfo) Clone() Header { return ErrorInfo(cloneInfoAddrList(hdr)) }

// Equal compares this header with another for equality.
func (hdr ErrorInfo) Equal(val any) bool {
	other, ok := castHdr[ErrorInfo](val)
	return ok && other != nil && eqInfoAddrList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr ErrorInfo) IsValid() bool { return isValidInfoAddrList(hdr) }
