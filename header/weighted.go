package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Weighted is a single entry of Accept-Encoding and Accept-Language headers:
// a content coding or a language range with optional q value and parameters.
type Weighted struct {
	Value  string `json:"value"`
	Q      Q      `json:"q,omitzero"`
	HasQ   bool   `json:"has_q,omitempty"`
	Params Params `json:"params,omitempty"`
}

var weightedFields = grammar.Fields[Weighted]{
	"q": func(wv *Weighted, p Param) (err error) {
		if wv.Q, err = qParam(p); err != nil {
			return err
		}
		wv.HasQ = true
		return nil
	},
}

func readWeightedList(c *scan.Cursor) ([]Weighted, error) {
	list := []Weighted{}
	if c.AtEOL() {
		return list, nil
	}
	err := grammar.ReadCommaList(c, func(c *scan.Cursor) error {
		var wv Weighted
		var err error
		if wv.Value, err = c.ReadToken(); err != nil {
			return errtrace.Wrap(err)
		}
		if wv.Params, err = readHdrParams(c, &wv, weightedFields); err != nil {
			return errtrace.Wrap(err)
		}
		list = append(list, wv)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return list, nil
}

func renderWeightedList(w io.Writer, list []Weighted) (int, error) {
	return errtrace.Wrap2(renderList(w, list, func(w io.Writer, wv Weighted) (int, error) { return wv.renderTo(w) }))
}

func (wv Weighted) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(wv.Value)
	if wv.HasQ {
		cw.WriteString(";q=")
		cw.WriteString(wv.Q.String())
	}
	cw.Call(renderParams(wv.Params))
	return errtrace.Wrap2(cw.Result())
}

func (wv Weighted) String() string { return renderString(wv.renderTo) }

// Equal compares entries, values are compared case-insensitively.
func (wv Weighted) Equal(val any) bool {
	other, ok := castHdr[Weighted](val)
	if !ok || other == nil {
		return false
	}
	return util.EqFold(wv.Value, other.Value) &&
		wv.HasQ == other.HasQ && wv.Q.Equal(other.Q) &&
		wv.Params.Equal(other.Params)
}

// IsValid checks whether the entry is syntactically valid.
func (wv Weighted) IsValid() bool {
	return scan.IsToken(wv.Value) && (!wv.HasQ || wv.Q.IsValid())
}

// Weight returns the q value in thousandths, absent q means 1.
func (wv Weighted) Weight() int {
	if !wv.HasQ {
		return 1000
	}
	return wv.Q.Milli()
}

func cloneWeightedList(list []Weighted) []Weighted {
	if list == nil {
		return nil
	}
	list2 := make([]Weighted, len(list))
	for i := range list {
		list2[i] = list[i]
		list2[i].Params = list[i].Params.Clone()
	}
	return list2
}

func eqWeightedList(a, b []Weighted) bool {
	return slices.EqualFunc(a, b, func(wv1, wv2 Weighted) bool { return wv1.Equal(wv2) })
}

func isValidWeightedList(list []Weighted) bool {
	return !slices.ContainsFunc(list, func(wv Weighted) bool { return !wv.IsValid() })
}
