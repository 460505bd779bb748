// Package sip parses and renders SIP messages as described in RFC 3261.
//
// A message is either a [*Request] or a [*Response]. Both keep the start line, the ordered list
// of typed headers and the optional body. Headers are parsed by the [header] package,
// unknown headers are kept as [*header.Other].
//
// # Parsing
//
// [ParsePacket] parses a buffer holding exactly one message, [ParseMessage] does the same
// with [ParseOptions]:
//
//	msg, err := sip.ParsePacket(data)
//	if err != nil {
//		var perr *sip.ParseError
//		if errors.As(err, &perr) && perr.Semantic() {
//			// reply with 400 Bad Request
//		}
//		return err
//	}
//	switch msg := msg.(type) {
//	case *sip.Request:
//		// msg.Method, msg.URI, msg.Mandatory.CallID
//	case *sip.Response:
//		// msg.Status, msg.ReasonPhrase()
//	}
//
// Parsed values are substrings of a single copy of the input. With [ParseOptions.NoCopy] they
// reference the input buffer directly, the caller must not modify it while the message is in use.
//
// Messages sent over stream transports (TCP, TLS) are parsed with [ParseStream].
//
// # Rendering
//
// Messages render to the wire form with RenderTo and Render. Parsing the rendered message gives
// a message equal to the original one.
package sip
