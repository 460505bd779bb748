// Package header implements typed SIP header fields defined by RFC 3261 and related extensions.
//
// Every known header has a concrete type implementing the [Header] interface. Headers without
// a dedicated parser are represented by [*Other] which keeps the value as written.
//
// # Parsing
//
// Header parsers work directly over the message buffer. Parsed values are substrings
// of the input, nothing is copied. Use [Parse] to parse a standalone header line:
//
//	hdr, err := header.Parse("From: <sip:alice@example.com>;tag=1234")
//
// Via, Route, Record-Route and Contact header lines may hold several comma-separated values.
// Each value is parsed into a separate header, use [ParseAll] to get them all:
//
//	hdrs, err := header.ParseAll("Via: SIP/2.0/UDP a.example.com, SIP/2.0/TCP b.example.com")
//
// Message parsers use [ReadName] and [Read] to parse headers one by one.
// Parse failures are reported as [*ParseError] with the header name and the position.
//
// # Header Naming and Canonicalization
//
// Header names are canonicalized using [textproto.CanonicalMIMEHeaderKey] combined
// with an internal mapping for SIP-specific capitalization rules. The package also
// supports compact header names defined in RFC 3261:
//
//	"c" → "Content-Type"
//	"e" → "Content-Encoding"
//	"f" → "From"
//	"i" → "Call-ID"
//	"k" → "Supported"
//	"l" → "Content-Length"
//	"m" → "Contact"
//	"s" → "Subject"
//	"t" → "To"
//	"v" → "Via"
//
// Use [CanonicName] to normalize any header name, or [Name.ToCanonic] as a
// convenient method alias.
//
// # Parameters
//
// Well-known parameters like tag, branch, received, q or expires are promoted to dedicated
// typed fields of the header. All other parameters are kept in order in the Params field,
// lookups by name are case-insensitive and the last occurrence wins.
// Quoted parameter values are stored without the quotes with quoted pairs kept escaped.
//
// # Rendering
//
// Headers can be rendered to strings or written to [io.Writer]:
//
//	str := hdr.Render(nil)                 // returns "Name: Value"
//	val := hdr.RenderValue()               // returns "Value" without name
//	hdr.RenderTo(writer, opts)             // writes to io.Writer
//
// [RenderOptions] can be nil for default formatting: headers are rendered with
// canonical names. Short names can be enabled with [RenderOptions.Compact] flag,
// then headers that support short names are rendered with single character names.
// Parsing the rendered header gives a value equal to the original one.
//
// # JSON Serialization
//
// Headers can be serialized to and from JSON using [ToJSON] and [FromJSON]:
//
//	data, err := header.ToJSON(hdr)
//	hdr, err := header.FromJSON(data)
//
// The JSON format is:
//
//	{"name":"<CanonicName>","value":"<RenderValue>"}
//
// # References
//
//   - RFC 3261 - SIP: Session Initiation Protocol
//   - RFC 3581 - Symmetric Response Routing (rport)
//   - RFC 8898 - Third-Party Token-Based Authentication and Authorization for SIP
package header
