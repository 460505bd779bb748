package header

import (
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Contact represents a single value of the Contact header field.
// Each comma-separated value of the header line is parsed into a separate Contact.
// The "*" form is represented with the Wildcard flag.
//
//	Contact        = ("Contact" / "m" ) HCOLON
//	                 ( STAR / (contact-param *(COMMA contact-param)))
//	contact-param  = (name-addr / addr-spec) *(SEMI contact-params)
type Contact struct {
	NameAddr
	Q          Q      `json:"q,omitzero"`
	HasQ       bool   `json:"has_q,omitempty"`
	Expires    uint32 `json:"expires,omitempty"`
	HasExpires bool   `json:"has_expires,omitempty"`
	Params     Params `json:"params,omitempty"`
	Wildcard   bool   `json:"wildcard,omitempty"`
}

var contactFields = grammar.Fields[Contact]{
	"q": func(hdr *Contact, p Param) (err error) {
		if hdr.Q, err = qParam(p); err != nil {
			return err
		}
		hdr.HasQ = true
		return nil
	},
	"expires": func(hdr *Contact, p Param) error {
		n, err := uintParam(p, 32)
		if err != nil {
			return err
		}
		hdr.Expires, hdr.HasExpires = uint32(n), true
		return nil
	},
}

func readContact(c *scan.Cursor) (Header, error) {
	if c.Is('*') {
		if b, ok := c.PeekAt(1); !ok || !scan.Is(b, scan.Token) {
			c.Advance()
			return &Contact{Wildcard: true}, nil
		}
	}

	hdr := new(Contact)
	var err error
	if hdr.NameAddr, err = readNameAddr(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams(c, hdr, contactFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*Contact) CanonicName() Name { return "Contact" }

// CompactName returns the compact name of the header.
func (*Contact) CompactName() Name { return "m" }

// RenderTo writes the header to the provided writer.
func (hdr *Contact) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *Contact) renderValue(w io.Writer) (int, error) {
	if hdr.Wildcard {
		return errtrace.Wrap2(io.WriteString(w, "*"))
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(hdr.NameAddr.renderTo)
	if hdr.HasQ {
		cw.WriteString(";q=")
		cw.WriteString(hdr.Q.String())
	}
	if hdr.HasExpires {
		cw.WriteString(";expires=")
		cw.WriteString(strconv.FormatUint(uint64(hdr.Expires), 10))
	}
	cw.Call(renderParams(hdr.Params))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *Contact) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Contact) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *Contact) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Contact) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.NameAddr = hdr.NameAddr.Clone()
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Contact) Equal(val any) bool {
	other, ok := castHdr[Contact](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	if hdr.Wildcard || other.Wildcard {
		return hdr.Wildcard == other.Wildcard
	}
	return hdr.NameAddr.Equal(other.NameAddr) &&
		hdr.HasQ == other.HasQ && hdr.Q.Equal(other.Q) &&
		hdr.HasExpires == other.HasExpires && hdr.Expires == other.Expires &&
		hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Contact) IsValid() bool {
	if hdr == nil {
		return false
	}
	if hdr.Wildcard {
		return hdr.NameAddr.IsZero()
	}
	return hdr.NameAddr.IsValid() && (!hdr.HasQ || hdr.Q.IsValid())
}
