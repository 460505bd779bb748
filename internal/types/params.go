package types

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Param is a single generic parameter.
// Value is empty for flag parameters without "=".
// For quoted values Value holds the content between the quotes, quoted pairs are kept escaped.
type Param struct {
	Name   string `json:"name"`
	Value  string `json:"value,omitempty"`
	Quoted bool   `json:"quoted,omitempty"`
}

func (p Param) equal(o Param) bool {
	if !util.EqFold(p.Name, o.Name) || p.Quoted != o.Quoted {
		return false
	}
	if p.Quoted {
		return p.Value == o.Value
	}
	return util.EqFold(p.Value, o.Value)
}

// Params is an ordered list of generic parameters.
// Names are matched case-insensitively, when a name repeats the last one wins.
type Params []Param

// Get returns the value of the parameter with the given name.
func (ps Params) Get(name string) (string, bool) {
	if i := ps.index(name); i >= 0 {
		return ps[i].Value, true
	}
	return "", false
}

// Has reports whether a parameter with the given name is present.
func (ps Params) Has(name string) bool { return ps.index(name) >= 0 }

func (ps Params) index(name string) int {
	for i := len(ps) - 1; i >= 0; i-- {
		if util.EqFold(ps[i].Name, name) {
			return i
		}
	}
	return -1
}

// Set replaces the value of the named parameter or appends a new one.
func (ps Params) Set(name, value string) Params {
	if i := ps.index(name); i >= 0 {
		ps[i].Value = value
		ps[i].Quoted = false
		return ps
	}
	return append(ps, Param{Name: name, Value: value})
}

// Add appends the parameter.
func (ps Params) Add(p Param) Params { return append(ps, p) }

// Del removes all parameters with the given name.
func (ps Params) Del(name string) Params {
	return slices.DeleteFunc(ps, func(p Param) bool { return util.EqFold(p.Name, name) })
}

// Clone returns a copy of the parameters.
func (ps Params) Clone() Params { return slices.Clone(ps) }

// Equal compares parameters ignoring order.
// Names and unquoted values are compared case-insensitively.
func (ps Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return ps == nil
		}
		other = *v
	default:
		return false
	}

	if len(ps) != len(other) {
		return false
	}
	for _, p := range ps {
		i := other.index(p.Name)
		if i < 0 || !other[i].equal(ps[ps.index(p.Name)]) {
			return false
		}
	}
	return true
}

// RenderTo writes the parameters, each one prefixed with sep.
func (ps Params) RenderTo(w io.Writer, sep byte) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, p := range ps {
		cw.WriteByte(sep)
		cw.WriteString(p.Name)
		switch {
		case p.Quoted:
			cw.WriteByte('=')
			cw.WriteQuoted(p.Value)
		case p.Value != "":
			cw.WriteByte('=')
			cw.WriteString(p.Value)
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the parameters rendered with ';' separator.
func (ps Params) Render() string {
	if len(ps) == 0 {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ps.RenderTo(sb, ';') //nolint:errcheck
	return sb.String()
}

func (ps Params) String() string { return ps.Render() }
