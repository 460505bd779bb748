package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/uri"
)

// InfoAddr is a single entry of Alert-Info and Error-Info headers.
//
//	alert-param = LAQUOT absoluteURI RAQUOT *( SEMI generic-param )
type InfoAddr struct {
	URI    uri.URI `json:"uri"`
	Params Params  `json:"params,omitempty"`
}

func readAngledURI(c *scan.Cursor) (uri.URI, error) {
	if err := c.Expect('<'); err != nil {
		return nil, errtrace.Wrap(err)
	}
	u, err := uri.ReadAbsolute(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := c.Expect('>'); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

func readInfoAddrList(c *scan.Cursor) ([]InfoAddr, error) {
	var list []InfoAddr
	err := grammar.ReadCommaList(c, func(c *scan.Cursor) error {
		var addr InfoAddr
		var err error
		if addr.URI, err = readAngledURI(c); err != nil {
			return errtrace.Wrap(err)
		}
		if addr.Params, err = readHdrParams[InfoAddr](c, &addr, nil); err != nil {
			return errtrace.Wrap(err)
		}
		list = append(list, addr)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return list, nil
}

func renderAngledURI(u uri.URI) func(io.Writer) (int, error) {
	return func(w io.Writer) (int, error) {
		cw := ioutil.GetCountingWriter(w)
		defer ioutil.FreeCountingWriter(cw)
		cw.WriteByte('<')
		if u != nil {
			cw.Call(func(w io.Writer) (int, error) { return u.RenderTo(w, nil) })
		}
		cw.WriteByte('>')
		return errtrace.Wrap2(cw.Result())
	}
}

func (addr InfoAddr) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(renderAngledURI(addr.URI))
	cw.Call(renderParams(addr.Params))
	return errtrace.Wrap2(cw.Result())
}

func (addr InfoAddr) String() string { return renderString(addr.renderTo) }

// Equal compares this address with another for equality.
func (addr InfoAddr) Equal(val any) bool {
	other, ok := castHdr[InfoAddr](val)
	if !ok || other == nil {
		return false
	}
	return uri.Equal(addr.URI, other.URI) && addr.Params.Equal(other.Params)
}

// IsValid checks whether the address is valid.
func (addr InfoAddr) IsValid() bool { return addr.URI != nil && addr.URI.IsValid() }

// Clone returns a deep copy of the address.
func (addr InfoAddr) Clone() InfoAddr {
	return InfoAddr{URI: uri.Clone(addr.URI), Params: addr.Params.Clone()}
}

func renderInfoAddrList(w io.Writer, list []InfoAddr) (int, error) {
	return errtrace.Wrap2(renderList(w, list, func(w io.Writer, addr InfoAddr) (int, error) { return addr.renderTo(w) }))
}

func cloneInfoAddrList(list []InfoAddr) []InfoAddr {
	if list == nil {
		return nil
	}
	list2 := make([]InfoAddr, len(list))
	for i := range list {
		list2[i] = list[i].Clone()
	}
	return list2
}

func eqInfoAddrList(a, b []InfoAddr) bool {
	return slices.EqualFunc(a, b, func(a1, a2 InfoAddr) bool { return a1.Equal(a2) })
}

func isValidInfoAddrList(list []InfoAddr) bool {
	return len(list) > 0 && !slices.ContainsFunc(list, func(addr InfoAddr) bool { return !addr.IsValid() })
}
