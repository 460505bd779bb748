package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// ParamOptions controls the syntax accepted by [ReadParams].
type ParamOptions struct {
	// Name is the character class of parameter names.
	Name scan.Class
	// Value is the character class of unquoted parameter values.
	Value scan.Class
	// Quoted allows quoted-string values.
	Quoted bool
	// Space allows linear whitespace around ';' and '='.
	Space bool
}

var (
	// URIParams are the options of SIP URI parameters.
	URIParams = ParamOptions{Name: scan.URIParam, Value: scan.URIParam}
	// HeaderParams are the options of generic header parameters.
	HeaderParams = ParamOptions{Name: scan.Token, Value: scan.HeaderParam, Quoted: true, Space: true}
)

// Setter stores a promoted parameter into its dedicated field of dst.
// A returned error is used as the kind of the resulting parse error.
type Setter[T any] func(dst *T, p types.Param) error

// Fields maps lowercase names of promoted parameters to their setters.
type Fields[T any] map[string]Setter[T]

const maxFieldName = 32

func (fs Fields[T]) lookup(name string) (Setter[T], bool) {
	if len(fs) == 0 || len(name) > maxFieldName {
		return nil, false
	}
	var buf [maxFieldName]byte
	set, ok := fs[string(util.LowerASCII(buf[:0], name))]
	return set, ok
}

// ReadParams reads a sequence of ";name[=value]" parameters.
// Parameters listed in fields are passed to their setters, others are returned in order.
// The cursor is left right after the last parameter.
func ReadParams[T any](c *scan.Cursor, dst *T, opts ParamOptions, fields Fields[T]) (types.Params, error) {
	var ps types.Params
	for {
		m := c.Mark()
		if opts.Space {
			c.SkipSpace()
		}
		if !c.Consume(';') {
			c.Rewind(m)
			return ps, nil
		}
		if opts.Space {
			c.SkipSpace()
		}

		p, vm, err := readParam(c, opts)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if set, ok := fields.lookup(p.Name); ok {
			if err := set(dst, p); err != nil {
				c.Rewind(vm)
				return nil, errtrace.Wrap(c.Errorf(err, "%s=%q", p.Name, p.Value))
			}
			continue
		}
		ps = append(ps, p)
	}
}

func readParam(c *scan.Cursor, opts ParamOptions) (types.Param, scan.Mark, error) {
	var p types.Param
	p.Name = c.ReadWhile(opts.Name)
	if p.Name == "" {
		return p, scan.Mark{}, errtrace.Wrap(c.Unexpected("parameter name"))
	}

	m := c.Mark()
	if opts.Space {
		c.SkipSpace()
	}
	if !c.Consume('=') {
		c.Rewind(m)
		return p, m, nil
	}
	if opts.Space {
		c.SkipSpace()
	}

	vm := c.Mark()
	if opts.Quoted && c.Is('"') {
		v, err := c.ReadQuoted()
		if err != nil {
			return p, vm, errtrace.Wrap(err)
		}
		p.Value, p.Quoted = v, true
		return p, vm, nil
	}
	if p.Value = c.ReadWhile(opts.Value); p.Value == "" {
		return p, vm, errtrace.Wrap(c.Unexpected("parameter value"))
	}
	return p, vm, nil
}

// AuthParams are the options of authentication parameters.
var AuthParams = ParamOptions{Name: scan.Token, Value: scan.Token, Quoted: true, Space: true}

// ReadCommaParams reads a comma-separated list of "name=value" parameters, like auth-param lists.
// Parameters listed in fields are passed to their setters, others are returned in order.
func ReadCommaParams[T any](c *scan.Cursor, dst *T, opts ParamOptions, fields Fields[T]) (types.Params, error) {
	var ps types.Params
	err := ReadCommaList(c, func(c *scan.Cursor) error {
		p, vm, err := readParam(c, opts)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if set, ok := fields.lookup(p.Name); ok {
			if err := set(dst, p); err != nil {
				c.Rewind(vm)
				return errtrace.Wrap(c.Errorf(err, "%s=%q", p.Name, p.Value))
			}
			return nil
		}
		ps = append(ps, p)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return ps, nil
}
