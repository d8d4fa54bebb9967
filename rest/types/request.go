package types

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rediwo/redi-json/serializer"
	"github.com/rediwo/redi-json/utils"
	"github.com/stretchr/objx"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// QueryParams are the query string parameters understood by the data endpoints
type QueryParams struct {
	Limit int

	// Options are the call-time serialization options
	Options objx.Map
}

// ParseQueryParams reads serialization options and paging from a query string:
//   - include=a,b     enables relationships a and b
//   - exclude=x,y     excludes columns x and y
//   - only=id,name    excludes every column except id and name
//   - override=true   merges over fresh defaults instead of the model's options
//   - limit=N         number of records for list endpoints
//
// Parameters that are absent leave the model's own options in effect.
func ParseQueryParams(values url.Values) *QueryParams {
	qp := &QueryParams{
		Limit:   utils.ToInt(values.Get("limit"), DefaultLimit),
		Options: objx.Map{},
	}
	if qp.Limit <= 0 {
		qp.Limit = DefaultLimit
	}
	if qp.Limit > MaxLimit {
		qp.Limit = MaxLimit
	}

	if include := utils.SplitList(values.Get("include")); len(include) > 0 {
		relationships := objx.Map{}
		for _, name := range include {
			relationships[name] = true
		}
		qp.Options[serializer.KeyRelationships] = relationships
	}

	exclude := utils.SplitList(values.Get("exclude"))
	if only := utils.SplitList(values.Get("only")); len(only) > 0 {
		exclude = append(exclude, serializer.Wildcard)
		qp.Options[serializer.KeyIncludeAttrs] = only
	}
	if len(exclude) > 0 {
		qp.Options[serializer.KeyExcludeAttrs] = exclude
	}

	if utils.ToBool(values.Get("override")) {
		qp.Options[serializer.OverrideKey] = true
	}

	return qp
}

// OptionArgs are the same options given as lists, as the CLI, GraphQL and
// MCP surfaces receive them
type OptionArgs struct {
	Include  []string
	Exclude  []string
	Only     []string
	Override bool
	Limit    int
}

// Values renders the arguments as the query string ParseQueryParams reads
func (a OptionArgs) Values() url.Values {
	values := url.Values{}
	for key, list := range map[string][]string{"include": a.Include, "exclude": a.Exclude, "only": a.Only} {
		if len(list) > 0 {
			values.Set(key, strings.Join(list, ","))
		}
	}
	if a.Override {
		values.Set("override", "true")
	}
	if a.Limit > 0 {
		values.Set("limit", strconv.Itoa(a.Limit))
	}
	return values
}

// Params parses the arguments
func (a OptionArgs) Params() *QueryParams {
	return ParseQueryParams(a.Values())
}
