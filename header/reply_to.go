package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ReplyTo represents the Reply-To header field.
// The Reply-To header field contains a logical return URI that may be different from the From header field.
type ReplyTo struct {
	NameAddr
	Params Params `json:"params,omitempty"`
}

func readReplyTo(c *scan.Cursor) (Header, error) {
	hdr := new(ReplyTo)
	var err error
	if hdr.NameAddr, err = readNameAddr(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams[ReplyTo](c, hdr, nil); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*ReplyTo) CanonicName() Name { return "Reply-To" }

// CompactName returns the compact name of the header (Reply-To has no compact form).
func (*ReplyTo) CompactName() Name { return "Reply-To" }

// RenderTo writes the header to the provided writer.
func (hdr *ReplyTo) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *ReplyTo) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderAddr(w, hdr.NameAddr, hdr.Params))
}

func renderAddr(w io.Writer, na NameAddr, ps Params) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(na.renderTo)
	cw.Call(renderParams(ps))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *ReplyTo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ReplyTo) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *ReplyTo) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *ReplyTo) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &ReplyTo{NameAddr: hdr.NameAddr.Clone(), Params: hdr.Params.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *ReplyTo) Equal(val any) bool {
	other, ok := castHdr[ReplyTo](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NameAddr.Equal(other.NameAddr) && hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *ReplyTo) IsValid() bool { return hdr != nil && hdr.NameAddr.IsValid() }
