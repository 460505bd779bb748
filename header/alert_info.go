package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// AlertInfo represents the Alert-Info header field.
// When present in an INVITE request, the Alert-Info header field specifies an alternative ring tone to the UAS.
// When present in a 180 (Ringing) response, it specifies an alternative ringback tone to the UAC.
type AlertInfo []InfoAddr

func readAlertInfo(c *scan.Cursor) (Header, error) {
	list, err := readInfoAddrList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return AlertInfo(list), nil
}

// CanonicName returns the canonical name of the header.
func (AlertInfo) CanonicName() Name { return "Alert-Info" }

// CompactName returns the compact name of the header (Alert-Info has no compact form).
func (AlertInfo) CompactName() Name { return "Alert-Info" }

// RenderTo writes the header to the provided writer.
func (hdr AlertInfo) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr AlertInfo) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderInfoAddrList(w, hdr))
}

// Render returns the string representation of the header.
func (hdr AlertInfo) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr AlertInfo) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr AlertInfo) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr AlertInfo) Clone() Header { return AlertInfo(cloneInfoAddrList(hdr)) }

// Equal compares this header with another for equality.
func (hdr AlertInfo) Equal(val any) bool {
	other, ok := castHdr[AlertInfo](val)
	return ok && other != nil && eqInfoAddrList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr AlertInfo) IsValid() bool { return isValidInfoAddrList(hdr) }
