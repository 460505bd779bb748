package uri

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Any is an absolute URI of any scheme, kept as the scheme and the opaque rest.
type Any struct {
	Scheme string `json:"scheme"`
	Opaque string `json:"opaque"`
}

// ParseAny parses an absolute URI from the given input s (string or []byte).
func ParseAny[T util.Byteseq](s T) (*Any, error) {
	c := scan.NewCursor(string(s))
	u, err := ReadAny(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !c.EOF() {
		return nil, errtrace.Wrap(c.Unexpected("end of URI"))
	}
	return u, nil
}

// ReadAny reads an absolute URI.
// The opaque part spans up to the closing angle bracket, whitespace or the end of line.
func ReadAny(c *scan.Cursor) (*Any, error) {
	scheme, err := readScheme(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	opaque := c.ReadWhileFunc(func(b byte) bool { return b > ' ' && b < 0x7f && b != '>' })
	if opaque == "" {
		return nil, errtrace.Wrap(c.Unexpected("URI"))
	}
	return &Any{Scheme: scheme, Opaque: opaque}, nil
}

// URL parses the URI with [url.Parse].
func (u *Any) URL() (*url.URL, error) {
	return errtrace.Wrap2(url.Parse(u.String()))
}

// RenderTo writes the URI to the provided writer.
func (u *Any) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if u == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(u.Scheme)
	cw.WriteByte(':')
	cw.WriteString(u.Opaque)
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the URI.
func (u *Any) Render(_ *RenderOptions) string {
	if u == nil {
		return ""
	}
	return u.Scheme + ":" + u.Opaque
}

func (u *Any) String() string { return u.Render(nil) }

func (u *Any) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, u.String())
			return
		}
		type hideMethods Any
		type Any hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Any)(u))
	}
}

// Clone returns a copy of the URI.
func (u *Any) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// Equal compares schemes case-insensitively and opaque parts exactly.
func (u *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}
	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return util.EqFold(u.Scheme, other.Scheme) && u.Opaque == other.Opaque
}

// IsValid reports whether the URI has a scheme and an opaque part.
func (u *Any) IsValid() bool { return u != nil && u.Scheme != "" && u.Opaque != "" }
