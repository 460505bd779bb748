package sip

import (
	"io"
	"iter"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
)

// Headers is an ordered list of message headers.
// Duplicates are legal and the order of the wire form is preserved.
type Headers []header.Header

// Get returns all headers with the given name, long or compact, in order.
func (hs Headers) Get(name string) []header.Header {
	n := header.CanonicName(name)
	var out []header.Header
	for _, h := range hs {
		if h.CanonicName() == n {
			out = append(out, h)
		}
	}
	return out
}

// Has reports whether a header with the given name is present.
func (hs Headers) Has(name string) bool {
	n := header.CanonicName(name)
	for _, h := range hs {
		if h.CanonicName() == n {
			return true
		}
	}
	return false
}

// Append appends headers to the list.
func (hs *Headers) Append(hdrs ...header.Header) {
	*hs = append(*hs, hdrs...)
}

// First returns the first header of type H.
//
//	cseq, ok := sip.First[*header.CSeq](msg.MessageHeaders())
func First[H header.Header](hs Headers) (H, bool) {
	for _, h := range hs {
		if v, ok := h.(H); ok {
			return v, true
		}
	}
	var zero H
	return zero, false
}

// All returns an iterator over headers of type H in order.
func All[H header.Header](hs Headers) iter.Seq[H] {
	return func(yield func(H) bool) {
		for _, h := range hs {
			if v, ok := h.(H); ok && !yield(v) {
				return
			}
		}
	}
}

// Via returns an iterator over Via headers, topmost first.
func (hs Headers) Via() iter.Seq[*header.Via] { return All[*header.Via](hs) }

// FirstVia returns the topmost Via header.
func (hs Headers) FirstVia() (*header.Via, bool) { return First[*header.Via](hs) }

// From returns the first From header.
func (hs Headers) From() (*header.From, bool) { return First[*header.From](hs) }

// To returns the first To header.
func (hs Headers) To() (*header.To, bool) { return First[*header.To](hs) }

// CallID returns the first Call-ID header.
func (hs Headers) CallID() (header.CallID, bool) { return First[header.CallID](hs) }

// CSeq returns the first CSeq header.
func (hs Headers) CSeq() (*header.CSeq, bool) { return First[*header.CSeq](hs) }

// MaxForwards returns the first Max-Forwards header.
func (hs Headers) MaxForwards() (header.MaxForwards, bool) {
	return First[header.MaxForwards](hs)
}

// ContentLength returns the first Content-Length header.
func (hs Headers) ContentLength() (header.ContentLength, bool) {
	return First[header.ContentLength](hs)
}

// ContentType returns the first Content-Type header.
func (hs Headers) ContentType() (*header.ContentType, bool) {
	return First[*header.ContentType](hs)
}

// Contact returns an iterator over Contact headers in order.
func (hs Headers) Contact() iter.Seq[*header.Contact] { return All[*header.Contact](hs) }

// Route returns an iterator over Route headers in order.
func (hs Headers) Route() iter.Seq[*header.Route] { return All[*header.Route](hs) }

// RecordRoute returns an iterator over Record-Route headers in order.
func (hs Headers) RecordRoute() iter.Seq[*header.RecordRoute] {
	return All[*header.RecordRoute](hs)
}

// RenderTo writes headers one per line, each terminated by CRLF.
func (hs Headers) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, h := range hs {
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(h.RenderTo(w, opts)) })
		cw.WriteString("\r\n")
	}
	return errtrace.Wrap2(cw.Result())
}

// Clone returns a deep copy of the headers.
func (hs Headers) Clone() Headers {
	if hs == nil {
		return nil
	}
	hs2 := make(Headers, len(hs))
	for i, h := range hs {
		hs2[i] = h.Clone()
	}
	return hs2
}

// Equal compares headers in order.
func (hs Headers) Equal(other Headers) bool {
	if len(hs) != len(other) {
		return false
	}
	for i := range hs {
		if !hs[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// IsValid reports whether every header is valid.
func (hs Headers) IsValid() bool {
	for _, h := range hs {
		if h == nil || !h.IsValid() {
			return false
		}
	}
	return true
}

// MandatoryHeaders holds the first occurrence of the headers every request must carry.
type MandatoryHeaders struct {
	Via    *header.Via   `json:"via,omitempty"`
	From   *header.From  `json:"from,omitempty"`
	To     *header.To    `json:"to,omitempty"`
	CallID header.CallID `json:"call_id,omitempty"`
	CSeq   *header.CSeq  `json:"cseq,omitempty"`
}

// capture remembers hdr when it is the first mandatory header of its kind.
func (m *MandatoryHeaders) capture(hdr header.Header) {
	switch h := hdr.(type) {
	case *header.Via:
		if m.Via == nil {
			m.Via = h
		}
	case *header.From:
		if m.From == nil {
			m.From = h
		}
	case *header.To:
		if m.To == nil {
			m.To = h
		}
	case header.CallID:
		if m.CallID == "" {
			m.CallID = h
		}
	case *header.CSeq:
		if m.CSeq == nil {
			m.CSeq = h
		}
	}
}

// missing returns the name of the first absent header among From, To, Call-ID and CSeq.
func (m *MandatoryHeaders) missing() (header.Name, bool) {
	switch {
	case m.From == nil:
		return "From", true
	case m.To == nil:
		return "To", true
	case m.CallID == "":
		return "Call-ID", true
	case m.CSeq == nil:
		return "CSeq", true
	default:
		return "", false
	}
}

func collectMandatory(hs Headers) MandatoryHeaders {
	var m MandatoryHeaders
	for _, h := range hs {
		m.capture(h)
	}
	return m
}
