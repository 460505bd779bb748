package header

import (
	"io"
	"mime"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// MIMEType is a media type with parameters.
//
//	media-type = m-type SLASH m-subtype *(SEMI m-parameter)
type MIMEType struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Params  Params `json:"params,omitempty"`
}

// readMediaType reads m-type SLASH m-subtype without parameters.
func readMediaType(c *scan.Cursor) (MIMEType, error) {
	var mt MIMEType
	var err error
	if mt.Type, err = c.ReadToken(); err != nil {
		return mt, errtrace.Wrap(err)
	}
	if err = types.ReadSlash(c); err != nil {
		return mt, errtrace.Wrap(err)
	}
	if mt.Subtype, err = c.ReadToken(); err != nil {
		return mt, errtrace.Wrap(err)
	}
	return mt, nil
}

func (mt MIMEType) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(mt.Type)
	cw.WriteByte('/')
	cw.WriteString(mt.Subtype)
	cw.Call(renderParams(mt.Params))
	return errtrace.Wrap2(cw.Result())
}

// String returns the media type as "type/subtype;params".
func (mt MIMEType) String() string { return renderString(mt.renderTo) }

// MediaType returns the lowercase "type/subtype" without parameters.
func (mt MIMEType) MediaType() string { return util.LCase(mt.Type + "/" + mt.Subtype) }

// ParseStd parses the media type with [mime.ParseMediaType] to get unquoted parameter values.
func (mt MIMEType) ParseStd() (string, map[string]string, error) {
	return errtrace.Wrap3(mime.ParseMediaType(mt.String()))
}

// Equal compares media types. Type and subtype are compared case-insensitively.
func (mt MIMEType) Equal(val any) bool {
	other, ok := castHdr[MIMEType](val)
	if !ok || other == nil {
		return false
	}
	return util.EqFold(mt.Type, other.Type) && util.EqFold(mt.Subtype, other.Subtype) && mt.Params.Equal(other.Params)
}

// IsValid checks whether the media type is syntactically valid.
func (mt MIMEType) IsValid() bool { return scan.IsToken(mt.Type) && scan.IsToken(mt.Subtype) }

// IsZero reports whether the media type is empty.
func (mt MIMEType) IsZero() bool {
	return mt.Type == "" && mt.Subtype == "" && len(mt.Params) == 0
}

// Clone returns a copy of the media type.
func (mt MIMEType) Clone() MIMEType {
	mt.Params = mt.Params.Clone()
	return mt
}

// Matches reports whether the media range mr, possibly with wildcards, covers the media type.
func (mt MIMEType) Matches(mr MIMEType) bool {
	return (mr.Type == "*" || util.EqFold(mr.Type, mt.Type)) &&
		(mr.Subtype == "*" || util.EqFold(mr.Subtype, mt.Subtype))
}

var noFields grammar.Fields[MIMEType]
