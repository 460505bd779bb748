package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/errorutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
)

// ParseQ parses a qvalue:
//
//	qvalue = ( "0" [ "." 0*3DIGIT ] ) / ( "1" [ "." 0*3("0") ] )
func ParseQ(s string) (types.Q, error) {
	if s == "" || (s[0] != '0' && s[0] != '1') {
		return types.Q{}, errtrace.Wrap(errorutil.NewWrapperError(scan.ErrInvalidNumber, "qvalue %q", s))
	}
	i := s[0] - '0'
	if len(s) == 1 {
		return types.Q{Int: i}, nil
	}
	if s[1] != '.' || len(s) > 5 {
		return types.Q{}, errtrace.Wrap(errorutil.NewWrapperError(scan.ErrInvalidNumber, "qvalue %q", s))
	}

	var frac uint16
	for _, b := range []byte(s[2:]) {
		if !scan.Is(b, scan.Digit) || (i == 1 && b != '0') {
			return types.Q{}, errtrace.Wrap(errorutil.NewWrapperError(scan.ErrInvalidNumber, "qvalue %q", s))
		}
		frac = frac*10 + uint16(b-'0')
	}
	return types.NewQ(i, frac, uint8(len(s)-2)), nil
}
