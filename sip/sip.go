package sip

//go:generate go tool errtrace -w .

import (
	"math"

	"github.com/ghettovoice/sipmsg/internal/types"
)

// maxMsgSize limits the message head read from a stream, the same as the max size of the IP packet.
const maxMsgSize = math.MaxUint16

// RenderOptions contains options for rendering messages.
// See [types.RenderOptions].
type RenderOptions = types.RenderOptions

// ProtoInfo is the protocol name and version.
// See [types.ProtoInfo].
type ProtoInfo = types.ProtoInfo

// Proto20 is the only protocol version this package reads and writes.
var Proto20 = types.ProtoSIP20

// RequestMethod represents a SIP request method.
// See [types.RequestMethod].
type RequestMethod = types.RequestMethod

// Request method constants.
// See [types.RequestMethod].
const (
	RequestMethodAck       = types.RequestMethodAck
	RequestMethodBye       = types.RequestMethodBye
	RequestMethodCancel    = types.RequestMethodCancel
	RequestMethodInfo      = types.RequestMethodInfo
	RequestMethodInvite    = types.RequestMethodInvite
	RequestMethodMessage   = types.RequestMethodMessage
	RequestMethodNotify    = types.RequestMethodNotify
	RequestMethodOptions   = types.RequestMethodOptions
	RequestMethodPrack     = types.RequestMethodPrack
	RequestMethodPublish   = types.RequestMethodPublish
	RequestMethodRefer     = types.RequestMethodRefer
	RequestMethodRegister  = types.RequestMethodRegister
	RequestMethodSubscribe = types.RequestMethodSubscribe
	RequestMethodUpdate    = types.RequestMethodUpdate
)

// ResponseStatus represents a SIP response status code.
// See [types.ResponseStatus].
type ResponseStatus = types.ResponseStatus

// Frequently used response status constants.
// See [types.ResponseStatus] for the full registry.
const (
	ResponseStatusTrying              = types.ResponseStatusTrying
	ResponseStatusRinging             = types.ResponseStatusRinging
	ResponseStatusSessionProgress     = types.ResponseStatusSessionProgress
	ResponseStatusOK                  = types.ResponseStatusOK
	ResponseStatusMovedTemporarily    = types.ResponseStatusMovedTemporarily
	ResponseStatusBadRequest          = types.ResponseStatusBadRequest
	ResponseStatusUnauthorized        = types.ResponseStatusUnauthorized
	ResponseStatusForbidden           = types.ResponseStatusForbidden
	ResponseStatusNotFound            = types.ResponseStatusNotFound
	ResponseStatusProxyAuthRequired   = types.ResponseStatusProxyAuthenticationRequired
	ResponseStatusRequestTimeout      = types.ResponseStatusRequestTimeout
	ResponseStatusBusyHere            = types.ResponseStatusBusyHere
	ResponseStatusRequestTerminated   = types.ResponseStatusRequestTerminated
	ResponseStatusServerInternalError = types.ResponseStatusServerInternalError
	ResponseStatusServiceUnavailable  = types.ResponseStatusServiceUnavailable
	ResponseStatusDecline             = types.ResponseStatusDecline
)
