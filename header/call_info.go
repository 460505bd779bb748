package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
	"github.com/ghettovoice/sipmsg/uri"
)

// CallInfo represents the Call-Info header field.
// The Call-Info header field provides additional information about the caller or callee, depending on
// whether it is found in a request or response.
//
//	Call-Info   = "Call-Info" HCOLON info *(COMMA info)
//	info        = LAQUOT absoluteURI RAQUOT *( SEMI info-param)
//	info-param  = ( "purpose" EQUAL ( "icon" / "info" / "card" / token ) ) / generic-param
type CallInfo []CallInfoEntry

// CallInfoEntry is a single entry of the Call-Info header.
type CallInfoEntry struct {
	URI     uri.URI `json:"uri"`
	Purpose string  `json:"purpose,omitempty"`
	Params  Params  `json:"params,omitempty"`
}

var callInfoFields = grammar.Fields[CallInfoEntry]{
	"purpose": func(e *CallInfoEntry, p Param) (err error) {
		e.Purpose, err = tokenParam(p)
		return err
	},
}

func readCallInfo(c *scan.Cursor) (Header, error) {
	var hdr CallInfo
	err := grammar.ReadCommaList(c, func(c *scan.Cursor) error {
		var e CallInfoEntry
		var err error
		if e.URI, err = readAngledURI(c); err != nil {
			return errtrace.Wrap(err)
		}
		if e.Params, err = readHdrParams(c, &e, callInfoFields); err != nil {
			return errtrace.Wrap(err)
		}
		hdr = append(hdr, e)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

func (e CallInfoEntry) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(renderAngledURI(e.URI))
	if e.Purpose != "" {
		cw.WriteString(";purpose=")
		cw.WriteString(e.Purpose)
	}
	cw.Call(renderParams(e.Params))
	return errtrace.Wrap2(cw.Result())
}

func (e CallInfoEntry) String() string { return renderString(e.renderTo) }

// Equal compares this entry with another for equality.
func (e CallInfoEntry) Equal(val any) bool {
	other, ok := castHdr[CallInfoEntry](val)
	if !ok || other == nil {
		return false
	}
	return uri.Equal(e.URI, other.URI) && util.EqFold(e.Purpose, other.Purpose) && e.Params.Equal(other.Params)
}

// IsValid checks whether the entry is valid.
func (e CallInfoEntry) IsValid() bool {
	return e.URI != nil && e.URI.IsValid() && (e.Purpose == "" || scan.IsToken(e.Purpose))
}

// CanonicName returns the canonical name of the header.
func (CallInfo) CanonicName() Name { return "Call-Info" }

// CompactName returns the compact name of the header (Call-Info has no compact form).
func (CallInfo) CompactName() Name { return "Call-Info" }

// RenderTo writes the header to the provided writer.
func (hdr CallInfo) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr CallInfo) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, func(w io.Writer, e CallInfoEntry) (int, error) { return e.renderTo(w) }))
}

// Render returns the string representation of the header.
func (hdr CallInfo) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr CallInfo) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr CallInfo) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr CallInfo) Clone() Header {
	if hdr == nil {
		return CallInfo(nil)
	}
	hdr2 := make(CallInfo, len(hdr))
	for i, e := range hdr {
		hdr2[i] = CallInfoEntry{URI: uri.Clone(e.URI), Purpose: e.Purpose, Params: e.Params.Clone()}
	}
	return hdr2
}

// Equal compares this header with another for equality.
func (hdr CallInfo) Equal(val any) bool {
	other, ok := castHdr[CallInfo](val)
	if !ok || other == nil {
		return false
	}
	return slices.EqualFunc(hdr, *other, func(e1, e2 CallInfoEntry) bool { return e1.Equal(e2) })
}

// IsValid checks whether the header is syntactically valid.
func (hdr CallInfo) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(e CallInfoEntry) bool { return !e.IsValid() })
}
