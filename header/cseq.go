package header

import (
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
)

// CSeq represents the CSeq header field.
// The CSeq header field serves as a way to identify and order transactions.
//
//	CSeq = "CSeq" HCOLON 1*DIGIT LWS Method
type CSeq struct {
	SeqNum uint32        `json:"seq_num"`
	Method RequestMethod `json:"method"`
}

func readCSeq(c *scan.Cursor) (Header, error) {
	n, err := readNumber(c, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if c.SkipSpace() == 0 {
		return nil, errtrace.Wrap(c.Unexpected("whitespace"))
	}
	mtd, err := c.ReadToken()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &CSeq{SeqNum: uint32(n), Method: types.ParseRequestMethod(mtd)}, nil
}

// CanonicName returns the canonical name of the header.
func (*CSeq) CanonicName() Name { return "CSeq" }

// CompactName returns the compact name of the header (CSeq has no compact form).
func (*CSeq) CompactName() Name { return "CSeq" }

// RenderTo writes the header to the provided writer.
func (hdr *CSeq) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *CSeq) renderValue(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(strconv.FormatUint(uint64(hdr.SeqNum), 10))
	cw.WriteByte(' ')
	cw.WriteString(string(hdr.Method))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *CSeq) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *CSeq) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *CSeq) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *CSeq) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *CSeq) Equal(val any) bool {
	other, ok := castHdr[CSeq](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.SeqNum == other.SeqNum && hdr.Method.Equal(other.Method)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *CSeq) IsValid() bool {
	return hdr != nil && hdr.SeqNum < 1<<31 && hdr.Method.IsValid()
}
