package types

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// ProtoInfo is a protocol name and version, like SIP/2.0.
type ProtoInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ProtoSIP20 is SIP/2.0, the only protocol version found on the wire.
var ProtoSIP20 = ProtoInfo{Name: "SIP", Version: "2.0"}

// ReadSIP20 consumes the SIP/2.0 literal.
// The literal is compared case-sensitively, "sip/2.0" and "SIP / 2.0" are rejected.
func ReadSIP20(c *scan.Cursor) (ProtoInfo, error) {
	if err := c.ExpectLiteral("SIP/2.0"); err != nil {
		return ProtoInfo{}, errtrace.Wrap(err)
	}
	return ProtoSIP20, nil
}

// ReadSlash reads SLASH = SWS "/" SWS.
func ReadSlash(c *scan.Cursor) error {
	c.SkipSpace()
	if err := c.Expect('/'); err != nil {
		return errtrace.Wrap(err)
	}
	c.SkipSpace()
	return nil
}

func (p ProtoInfo) String() string {
	if p.IsZero() {
		return ""
	}
	return p.Name + "/" + p.Version
}

// Equal compares protocol names case-insensitively and versions exactly.
func (p ProtoInfo) Equal(val any) bool {
	switch v := val.(type) {
	case ProtoInfo:
		return util.EqFold(p.Name, v.Name) && p.Version == v.Version
	case *ProtoInfo:
		return v != nil && p.Equal(*v)
	default:
		return false
	}
}

func (p ProtoInfo) IsValid() bool { return scan.IsToken(p.Name) && scan.IsToken(p.Version) }

func (p ProtoInfo) IsZero() bool { return p.Name == "" && p.Version == "" }
