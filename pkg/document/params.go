package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/planbook/pkg/errors"
)

// Params are the opaque parameters of a page, such as a week or month
// number. Values are formatted canonically by [FormatValue].
type Params map[string]any

// DateLayout is the compact format used for [time.Time] parameter values.
const DateLayout = "20060102"

// Canonical returns the parameters as "k1=v1,k2=v2" with keys sorted in
// ascending order. It returns "" for empty params.
func (p Params) Canonical() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(FormatValue(p[k]))
	}
	return sb.String()
}

// keySeparators are the characters that delimit a destination key.
const keySeparators = ":,="

// Validate checks that no formatted value contains a key separator. Such a
// value would let two different param maps derive the same key.
func (p Params) Validate() error {
	for k, v := range p {
		if s := FormatValue(v); strings.ContainsAny(s, keySeparators) {
			return errors.New(errors.ErrCodeInvalidDeclaration,
				"parameter %s: value %q cannot contain any of %q", k, s, keySeparators)
		}
	}
	return nil
}

// Clone returns a shallow copy. A nil receiver yields nil.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Int returns an integer parameter. Values of any integer type are
// accepted, as are strings holding a base-10 integer.
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

// FormatValue formats a single parameter value:
//
//   - time.Time as YYYYMMDD
//   - integers in base 10
//   - strings as-is
//   - fmt.Stringer via String()
//   - bool as true or false
//   - anything else via fmt.Sprint
func FormatValue(v any) string {
	switch v := v.(type) {
	case time.Time:
		return v.Format(DateLayout)
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// DestinationKey derives the key of a page without an explicit ID: the type
// alone when there are no params, otherwise "type:" followed by
// [Params.Canonical].
func DestinationKey(pageType string, params Params) string {
	if len(params) == 0 {
		return pageType
	}
	return pageType + ":" + params.Canonical()
}
