package types

import (
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Well-known transport protocols.
const (
	TransportProtoUDP  TransportProto = "UDP"
	TransportProtoTCP  TransportProto = "TCP"
	TransportProtoTLS  TransportProto = "TLS"
	TransportProtoSCTP TransportProto = "SCTP"
	TransportProtoWS   TransportProto = "WS"
	TransportProtoWSS  TransportProto = "WSS"
)

// TransportProto is a transport protocol name as used in Via headers and URI transport parameters.
type TransportProto string

var knownTransports = [...]TransportProto{
	TransportProtoUDP,
	TransportProtoTCP,
	TransportProtoTLS,
	TransportProtoSCTP,
	TransportProtoWS,
	TransportProtoWSS,
}

// ParseTransportProto maps a transport token to the well-known constant, ignoring case.
// Unknown tokens are returned as is.
func ParseTransportProto(tok string) TransportProto {
	for _, p := range knownTransports {
		if util.EqFold(p, tok) {
			return p
		}
	}
	return TransportProto(tok)
}

// IsKnown reports whether p is one of the well-known transports.
func (p TransportProto) IsKnown() bool {
	for _, kp := range knownTransports {
		if kp == p {
			return true
		}
	}
	return false
}

// IsReliable reports whether p is a stream-based transport.
func (p TransportProto) IsReliable() bool {
	switch ParseTransportProto(string(p)) {
	case TransportProtoTCP, TransportProtoTLS, TransportProtoSCTP, TransportProtoWS, TransportProtoWSS:
		return true
	default:
		return false
	}
}

func (p TransportProto) ToUpper() TransportProto { return util.UCase(p) }

func (p TransportProto) ToLower() TransportProto { return util.LCase(p) }

func (p TransportProto) IsValid() bool { return scan.IsToken(string(p)) }

func (p TransportProto) String() string { return string(p) }

// Equal compares transports case-insensitively.
func (p TransportProto) Equal(val any) bool {
	var other TransportProto
	switch v := val.(type) {
	case TransportProto:
		other = v
	case *TransportProto:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(p, other)
}
