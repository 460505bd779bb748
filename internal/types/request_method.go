package types

import "github.com/ghettovoice/sipmsg/internal/scan"

// RFC 3261 and extension request methods.
const (
	RequestMethodAck       RequestMethod = "ACK"
	RequestMethodBye       RequestMethod = "BYE"
	RequestMethodCancel    RequestMethod = "CANCEL"
	RequestMethodInfo      RequestMethod = "INFO"
	RequestMethodInvite    RequestMethod = "INVITE"
	RequestMethodMessage   RequestMethod = "MESSAGE"
	RequestMethodNotify    RequestMethod = "NOTIFY"
	RequestMethodOptions   RequestMethod = "OPTIONS"
	RequestMethodPrack     RequestMethod = "PRACK"
	RequestMethodPublish   RequestMethod = "PUBLISH"
	RequestMethodRefer     RequestMethod = "REFER"
	RequestMethodRegister  RequestMethod = "REGISTER"
	RequestMethodSubscribe RequestMethod = "SUBSCRIBE"
	RequestMethodUpdate    RequestMethod = "UPDATE"
)

// RequestMethod is a SIP request method.
// Any token is a valid method, the well-known ones are available as constants.
type RequestMethod string

var knownMethods = [...]RequestMethod{
	RequestMethodAck,
	RequestMethodBye,
	RequestMethodCancel,
	RequestMethodInfo,
	RequestMethodInvite,
	RequestMethodMessage,
	RequestMethodNotify,
	RequestMethodOptions,
	RequestMethodPrack,
	RequestMethodPublish,
	RequestMethodRefer,
	RequestMethodRegister,
	RequestMethodSubscribe,
	RequestMethodUpdate,
}

// ParseRequestMethod maps a method token to the well-known constant.
// Methods are case-sensitive, so any other token is returned as is.
func ParseRequestMethod(tok string) RequestMethod {
	for _, m := range knownMethods {
		if string(m) == tok {
			return m
		}
	}
	return RequestMethod(tok)
}

// IsKnown reports whether m is one of the well-known methods.
func (m RequestMethod) IsKnown() bool {
	for _, km := range knownMethods {
		if km == m {
			return true
		}
	}
	return false
}

// IsValid reports whether m is a syntactically valid method token.
func (m RequestMethod) IsValid() bool { return scan.IsToken(string(m)) }

func (m RequestMethod) String() string { return string(m) }

// Equal compares this method with another for equality.
func (m RequestMethod) Equal(val any) bool {
	var other RequestMethod
	switch v := val.(type) {
	case RequestMethod:
		other = v
	case *RequestMethod:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return m == other
}
