package scan

// Class is a set of grammar character classes.
type Class uint16

// Character classes of the SIP grammar (RFC 3261 Section 25.1).
const (
	Alpha Class = 1 << iota
	Digit
	Hex
	Token
	User
	Password
	Host
	URIParam
	URIHeader
	HeaderParam
	Word
	Space

	Alnum = Alpha | Digit
)

var classes = buildClasses()

func buildClasses() [256]Class {
	var t [256]Class
	set := func(cls Class, chars string) {
		for i := range len(chars) {
			t[chars[i]] |= cls
		}
	}

	const alnumIn = Token | User | Password | Host | URIParam | URIHeader | HeaderParam | Word
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= Alpha | alnumIn
		t[b-'a'+'A'] |= Alpha | alnumIn
	}
	for b := '0'; b <= '9'; b++ {
		t[b] |= Digit | Hex | alnumIn
	}
	set(Hex, "abcdefABCDEF")

	// unreserved marks and escaped
	set(User|Password|URIParam|URIHeader, "-_.!~*'()%")
	set(User, "&=+$,;?/")
	set(Password, "&=+$,")
	set(URIParam, "[]/:&+$")
	set(URIHeader, "[]/?:+$")

	set(Token, "-.!%*_+`'~")
	set(Host, "-.")
	set(HeaderParam, "-.!%*_+`'~:[]")
	set(Word, "-.!%*_+`'~()<>:\\\"/[]?{}")
	set(Space, " \t")
	return t
}

// Is reports whether b belongs to any of the classes in cls.
func Is(b byte, cls Class) bool { return classes[b]&cls != 0 }

// IsAll reports whether s is non-empty and every byte of s belongs to cls.
func IsAll(s string, cls Class) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if classes[s[i]]&cls == 0 {
			return false
		}
	}
	return true
}

// IsToken reports whether s is a valid token.
func IsToken(s string) bool { return IsAll(s, Token) }
