// Package uri implements parsing, rendering and comparison of URIs found in SIP messages.
//
// # Overview
//
// The package provides two URI types:
//
//   - [SIP]: SIP and SIPS URIs (sip:, sips:) as defined in RFC 3261 Section 19.1.
//     Well-known URI parameters (user, method, transport, ttl, lr, maddr) are promoted
//     into dedicated fields, all other parameters are kept in order in [SIP.Params].
//
//   - [Any]: any other absolute URI (http:, mailto:, urn:, ...) kept as a scheme and an opaque part.
//     It is used in Call-Info, Alert-Info and Error-Info headers.
//
// Both implement the [URI] interface.
//
// # Parsing
//
//	u, err := uri.Parse("sip:alice@atlanta.com;transport=tcp")
//	// Returns *uri.SIP
//
//	u, err = uri.Parse("http://www.example.com/alice/photo.jpg")
//	// Returns *uri.Any
//
// Parsers working on a shared [scan.Cursor] ([Read], [ReadAddrSpec], [ReadAny], [ReadHostPort])
// are used by the header parsers. All strings of the parsed values are substrings of the input,
// no bytes are copied.
//
// # Comparison
//
// [SIP.Equal] implements RFC 3261 Section 19.1.4 rules: the promoted parameters must match
// when present in either URI, other parameters are compared only when present in both,
// URI headers must match exactly.
package uri
