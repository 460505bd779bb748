package header

import (
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/uri"
)

// NameAddr is the address part of From, To, Contact, Reply-To, Route and Record-Route headers.
//
//	name-addr    = [ display-name ] LAQUOT addr-spec RAQUOT
//	display-name = *(token LWS) / quoted-string
type NameAddr struct {
	// DisplayName is the display name as written, without the surrounding quotes.
	// Quoted pairs are kept escaped, use [NameAddr.Display] to get the plain text.
	DisplayName string   `json:"display_name,omitempty"`
	URI         *uri.SIP `json:"uri"`
	// Angled tells whether the URI was enclosed in angle brackets.
	Angled bool `json:"angled,omitempty"`
}

// Display returns the display name with quoted pairs resolved.
func (na NameAddr) Display() string { return grammar.UnescapeQuoted(na.DisplayName) }

func readNameAddr(c *scan.Cursor) (NameAddr, error) {
	var na NameAddr
	switch {
	case c.Is('"'):
		d, err := c.ReadQuoted()
		if err != nil {
			return na, errtrace.Wrap(err)
		}
		na.DisplayName = d
		c.SkipSpace()
	case c.Is('<'):
	default:
		m := c.Mark()
		start, end := c.Offset(), c.Offset()
		for c.ReadWhile(scan.Token) != "" {
			end = c.Offset()
			c.SkipSpace()
		}
		if end == start || !c.Is('<') {
			// addr-spec without brackets, trailing parameters belong to the header
			c.Rewind(m)
			u, err := uri.ReadAddrSpec(c)
			if err != nil {
				return na, errtrace.Wrap(err)
			}
			na.URI = u
			return na, nil
		}
		na.DisplayName = c.Slice(start, end)
	}

	if err := c.Expect('<'); err != nil {
		return na, errtrace.Wrap(err)
	}
	u, err := uri.Read(c)
	if err != nil {
		return na, errtrace.Wrap(err)
	}
	if err := c.Expect('>'); err != nil {
		return na, errtrace.Wrap(err)
	}
	na.URI, na.Angled = u, true
	return na, nil
}

func (na NameAddr) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if na.DisplayName != "" {
		cw.WriteQuoted(na.DisplayName)
		cw.WriteByte(' ')
	}
	if na.needsAngles() {
		cw.WriteByte('<')
		cw.Call(na.renderURI)
		cw.WriteByte('>')
	} else {
		cw.Call(na.renderURI)
	}
	return errtrace.Wrap2(cw.Result())
}

func (na NameAddr) renderURI(w io.Writer) (int, error) {
	return errtrace.Wrap2(na.URI.RenderTo(w, nil))
}

// needsAngles reports whether the URI must be enclosed in angle brackets (RFC 3261 Section 20.10).
func (na NameAddr) needsAngles() bool {
	return na.Angled || na.DisplayName != "" || na.URI == nil || strings.ContainsAny(na.URI.String(), ",;?")
}

func (na NameAddr) String() string { return renderString(na.renderTo) }

// Equal compares display names and URIs. The bracket form is ignored.
func (na NameAddr) Equal(val any) bool {
	other, ok := castHdr[NameAddr](val)
	if !ok || other == nil {
		return false
	}
	return na.DisplayName == other.DisplayName && uri.Equal(uriOrNil(na.URI), uriOrNil(other.URI))
}

func uriOrNil(u *uri.SIP) uri.URI {
	if u == nil {
		return nil
	}
	return u
}

// IsValid checks whether the address has a valid URI.
func (na NameAddr) IsValid() bool { return na.URI.IsValid() }

// IsZero reports whether the address is empty.
func (na NameAddr) IsZero() bool { return na.DisplayName == "" && na.URI == nil }

// Clone returns a deep copy of the address.
func (na NameAddr) Clone() NameAddr {
	na.URI = na.URI.CloneSIP()
	return na
}
