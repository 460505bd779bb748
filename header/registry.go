package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

type reader func(c *scan.Cursor) (Header, error)

type entry struct {
	name Name
	read reader
	// multi marks headers whose comma-separated values are split into separate headers
	multi bool
}

// registry maps lowercase long and compact header names to their parsers.
var registry map[string]*entry

func init() {
	entries := []struct {
		entry
		compact string
	}{
		{entry{"Accept", readAccept, false}, ""},
		{entry{"Accept-Encoding", readAcceptEncoding, false}, ""},
		{entry{"Accept-Language", readAcceptLanguage, false}, ""},
		{entry{"Alert-Info", readAlertInfo, false}, ""},
		{entry{"Allow", readAllow, false}, ""},
		{entry{"Authentication-Info", readAuthenticationInfo, false}, ""},
		{entry{"Authorization", readAuthorization, false}, ""},
		{entry{"Call-ID", readCallID, false}, "i"},
		{entry{"Call-Info", readCallInfo, false}, ""},
		{entry{"Contact", readContact, true}, "m"},
		{entry{"Content-Disposition", readContentDisposition, false}, ""},
		{entry{"Content-Encoding", readContentEncoding, false}, "e"},
		{entry{"Content-Language", readContentLanguage, false}, ""},
		{entry{"Content-Length", readContentLength, false}, "l"},
		{entry{"Content-Type", readContentType, false}, "c"},
		{entry{"CSeq", readCSeq, false}, ""},
		{entry{"Date", readDate, false}, ""},
		{entry{"Error-Info", readErrorInfo, false}, ""},
		{entry{"Expires", readExpires, false}, ""},
		{entry{"From", readFrom, false}, "f"},
		{entry{"In-Reply-To", readInReplyTo, false}, ""},
		{entry{"Max-Forwards", readMaxForwards, false}, ""},
		{entry{"MIME-Version", readMIMEVersion, false}, ""},
		{entry{"Min-Expires", readMinExpires, false}, ""},
		{entry{"Organization", readOrganization, false}, ""},
		{entry{"Priority", readPriority, false}, ""},
		{entry{"Proxy-Authenticate", readProxyAuthenticate, false}, ""},
		{entry{"Proxy-Authorization", readProxyAuthorization, false}, ""},
		{entry{"Proxy-Require", readProxyRequire, false}, ""},
		{entry{"Record-Route", readRecordRoute, true}, ""},
		{entry{"Reply-To", readReplyTo, false}, ""},
		{entry{"Require", readRequire, false}, ""},
		{entry{"Retry-After", readRetryAfter, false}, ""},
		{entry{"Route", readRoute, true}, ""},
		{entry{"Server", readServer, false}, ""},
		{entry{"Subject", readSubject, false}, "s"},
		{entry{"Supported", readSupported, false}, "k"},
		{entry{"Timestamp", readTimestamp, false}, ""},
		{entry{"To", readTo, false}, "t"},
		{entry{"Unsupported", readUnsupported, false}, ""},
		{entry{"User-Agent", readUserAgent, false}, ""},
		{entry{"Via", readVia, true}, "v"},
		{entry{"Warning", readWarning, false}, ""},
		{entry{"WWW-Authenticate", readWWWAuthenticate, false}, ""},
	}

	registry = make(map[string]*entry, 2*len(entries))
	for i := range entries {
		e := &entries[i].entry
		registry[util.LCase(string(e.name))] = e
		if entries[i].compact != "" {
			registry[entries[i].compact] = e
		}
	}
}

const maxKnownName = 32

func lookup(name string) (*entry, bool) {
	if len(name) > maxKnownName {
		return nil, false
	}
	var buf [maxKnownName]byte
	e, ok := registry[string(util.LowerASCII(buf[:0], name))]
	return e, ok
}

// IsKnown reports whether the header name, long or compact, has a dedicated parser.
func IsKnown(name string) bool {
	_, ok := lookup(name)
	return ok
}

// ReadName reads a header name followed by optional whitespace, the colon and the leading
// whitespace of the value.
func ReadName(c *scan.Cursor) (string, error) {
	name, err := c.ReadToken()
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	c.SkipSpace()
	if err := c.Expect(':'); err != nil {
		return "", errtrace.Wrap(scan.WithHeader(err, name))
	}
	c.SkipSpace()
	return name, nil
}

// Read reads the value of the header with the given name and appends parsed headers to dst.
// The cursor must be positioned at the beginning of the value, it is left at the end of the value.
//
// Via, Route, Record-Route and Contact values separated by commas are appended
// as separate headers in order. Unknown headers are appended as [*Other].
func Read(c *scan.Cursor, name string, dst []Header) ([]Header, error) {
	e, ok := lookup(name)
	if !ok {
		hdr, err := readOther(c, name)
		if err != nil {
			return dst, errtrace.Wrap(scan.WithHeader(err, name))
		}
		return append(dst, hdr), nil
	}

	for {
		hdr, err := e.read(c)
		if err != nil {
			return dst, errtrace.Wrap(scan.WithHeader(err, string(e.name)))
		}
		dst = append(dst, hdr)
		if !e.multi || isWildcard(hdr) || !grammar.SkipComma(c) {
			return dst, nil
		}
	}
}

func isWildcard(hdr Header) bool {
	ct, ok := hdr.(*Contact)
	return ok && ct.Wildcard
}

// ParseAll parses a standalone header line "Name: value" from the given input s (string or []byte).
// The trailing CRLF is optional.
// Values of Via, Route, Record-Route and Contact headers are returned as separate headers.
func ParseAll[T util.Byteseq](s T) ([]Header, error) {
	c := scan.NewCursor(string(s))
	name, err := ReadName(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	hdrs, err := Read(c, name, nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c.SkipSpace()
	if !c.EOF() {
		if err := c.ExpectCRLF(); err != nil {
			return nil, errtrace.Wrap(scan.WithHeader(err, name))
		}
		if !c.EOF() {
			return nil, errtrace.Wrap(scan.WithHeader(c.Unexpected("end of header"), name))
		}
	}
	return hdrs, nil
}

// Parse parses a single header from the given input s (string or []byte).
// Input holding several comma-separated Via, Route, Record-Route or Contact values is rejected,
// use [ParseAll] for such input.
//
// Example usage:
//
//	hdr, err := header.Parse("From: <sip:alice@example.com;foo>;tag=qwerty")
func Parse[T util.Byteseq](s T) (Header, error) {
	hdrs, err := ParseAll(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if len(hdrs) != 1 {
		return nil, errtrace.Wrap(&scan.Error{
			Kind:   scan.ErrInvalidHeader,
			Header: string(hdrs[0].CanonicName()),
			Detail: "multiple header values",
		})
	}
	return hdrs[0], nil
}
