package transitapi

import (
	"net/url"
	"strings"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// requireParam returns the trimmed value of a query parameter, or a
// QueryError naming the missing parameter.
func requireParam(params url.Values, name string) (string, error) {
	v := strings.TrimSpace(params.Get(name))
	if v == "" {
		return "", &QueryError{Msg: "You must provide a " + name + " parameter."}
	}
	return v, nil
}

func optionalParam(params url.Values, name string) string {
	return strings.TrimSpace(params.Get(name))
}
