package header

import (
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Warning represents the Warning header field.
// The Warning header field is used to carry additional information about the status of a response.
//
//	Warning       = "Warning" HCOLON warning-value *(COMMA warning-value)
//	warning-value = warn-code SP warn-agent SP warn-text
type Warning []WarningEntry

// WarningEntry is a single warning-value.
type WarningEntry struct {
	Code uint16 `json:"code"`
	// Agent is the hostport or pseudonym of the server adding the warning.
	Agent string `json:"agent"`
	// Text is the warning text without the quotes, quoted pairs are kept escaped.
	Text string `json:"text"`
}

func readWarning(c *scan.Cursor) (Header, error) {
	var hdr Warning
	err := grammar.ReadCommaList(c, func(c *scan.Cursor) error {
		e, err := readWarningEntry(c)
		if err != nil {
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

func readWarningEntry(c *scan.Cursor) (WarningEntry, error) {
	var e WarningEntry
	start := c.Mark()
	code, err := c.ReadDigits()
	if err != nil {
		return e, errtrace.Wrap(err)
	}
	if len(code) != 3 {
		c.Rewind(start)
		return e, errtrace.Wrap(c.Errorf(scan.ErrInvalidNumber, "warn-code %q", code))
	}
	n, _ := strconv.ParseUint(code, 10, 16)
	e.Code = uint16(n)

	if err := c.Expect(' '); err != nil {
		return e, errtrace.Wrap(err)
	}
	if e.Agent = c.ReadWhileFunc(isAgentChar); e.Agent == "" {
		return e, errtrace.Wrap(c.Unexpected("warn-agent"))
	}
	if err := c.Expect(' '); err != nil {
		return e, errtrace.Wrap(err)
	}
	if e.Text, err = c.ReadQuoted(); err != nil {
		return e, errtrace.Wrap(err)
	}
	return e, nil
}

// warn-agent = hostport / pseudonym
func isAgentChar(b byte) bool {
	return scan.Is(b, scan.Token|scan.Host) || b == ':' || b == '[' || b == ']'
}

func (e WarningEntry) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(strconv.FormatUint(uint64(e.Code), 10))
	cw.WriteByte(' ')
	cw.WriteString(e.Agent)
	cw.WriteByte(' ')
	cw.WriteQuoted(e.Text)
	return errtrace.Wrap2(cw.Result())
}

func (e WarningEntry) String() string { return renderString(e.renderTo) }

// Equal compares this entry with another for equality.
func (e WarningEntry) Equal(val any) bool {
	other, ok := castHdr[WarningEntry](val)
	if !ok || other == nil {
		return false
	}
	return e.Code == other.Code && util.EqFold(e.Agent, other.Agent) && e.Text == other.Text
}

// IsValid checks whether the entry is valid.
func (e WarningEntry) IsValid() bool {
	return e.Code >= 100 && e.Code <= 999 && e.Agent != "" && util.IsText(e.Text)
}

// CanonicName returns the canonical name of the header.
func (Warning) CanonicName() Name { return "Warning" }

// CompactName returns the compact name of the header (Warning has no compact form).
func (Warning) CompactName() Name { return "Warning" }

// RenderTo writes the header to the provided writer.
func (hdr Warning) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Warning) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, func(w io.Writer, e WarningEntry) (int, error) { return e.renderTo(w) }))
}

// Render returns the string representation of the header.
func (hdr Warning) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Warning) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr Warning) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Warning) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Warning) Equal(val any) bool {
	other, ok := castHdr[Warning](val)
	if !ok || other == nil {
		return false
	}
	return slices.EqualFunc(hdr, *other, func(e1, e2 WarningEntry) bool { return e1.Equal(e2) })
}

// IsValid checks whether the header is syntactically valid.
func (hdr Warning) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(e WarningEntry) bool { return !e.IsValid() })
}
