package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/blogroutes/internal/domain/model"
	"github.com/okian/blogroutes/internal/domain/types"
)

// paramReader coerces path and query parameters, collecting every failure
// so a request reports all its bad fields at once.
type paramReader struct {
	r     *http.Request
	query url.Values
	errs  []FieldError
}

func newParamReader(r *http.Request) *paramReader {
	return &paramReader{r: r, query: r.URL.Query()}
}

// Err returns a *ValidationError when any parameter failed.
func (p *paramReader) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: p.errs}
}

func (p *paramReader) fail(loc, name, input, typ, msg string, ctx map[string]string) {
	p.errs = append(p.errs, FieldError{
		Type:  typ,
		Loc:   []string{loc, name},
		Msg:   msg,
		Input: input,
		Ctx:   ctx,
	})
}

// lastQuery returns the last value given for name; repeated keys overwrite.
func (p *paramReader) lastQuery(name string) (string, bool) {
	vals, ok := p.query[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

func (p *paramReader) pathInt(name string) types.Int {
	raw := p.r.PathValue(name)
	v, ok := parseInt(raw)
	if !ok {
		p.fail(LocPath, name, raw, TypeIntParsing, msgIntParsing, nil)
	}
	return v
}

func (p *paramReader) queryInt(name string, def types.Int) types.Int {
	raw, ok := p.lastQuery(name)
	if !ok {
		return def
	}
	v, ok := parseInt(raw)
	if !ok {
		p.fail(LocQuery, name, raw, TypeIntParsing, msgIntParsing, nil)
		return def
	}
	return v
}

func (p *paramReader) optionalQueryInt(name string) types.Optional[types.Int] {
	raw, ok := p.lastQuery(name)
	if !ok {
		return types.None[types.Int]()
	}
	v, ok := parseInt(raw)
	if !ok {
		p.fail(LocQuery, name, raw, TypeIntParsing, msgIntParsing, nil)
		return types.None[types.Int]()
	}
	return types.Some(v)
}

func (p *paramReader) queryBool(name string, def bool) bool {
	raw, ok := p.lastQuery(name)
	if !ok {
		return def
	}
	v, ok := parseBool(raw)
	if !ok {
		p.fail(LocQuery, name, raw, TypeBoolParsing, msgBoolParsing, nil)
		return def
	}
	return v
}

func (p *paramReader) optionalQueryString(name string) types.Optional[string] {
	raw, ok := p.lastQuery(name)
	if !ok {
		return types.None[string]()
	}
	return types.Some(raw)
}

func (p *paramReader) pathBlogType(name string) model.BlogType {
	raw := p.r.PathValue(name)
	bt, err := model.ParseBlogType(raw)
	if err != nil {
		expected := model.ExpectedBlogTypes()
		p.fail(LocPath, name, raw, TypeEnum, "Input should be "+expected, map[string]string{"expected": expected})
	}
	return bt
}

// parseInt accepts an optionally signed decimal of any length surrounded
// by whitespace.
func parseInt(raw string) (types.Int, bool) {
	return types.ParseInt(strings.TrimSpace(raw))
}

// parseBool accepts the usual spellings of true and false, case-insensitively.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	default:
		return false, false
	}
}
