package fieldedge

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"fieldedge/internal/domain"
)

// EncodeQuery renders q in insertion order, skipping nil values.
func EncodeQuery(q domain.Query) string {
	var b strings.Builder
	for _, param := range q {
		if param.Key == "" || param.Value == nil {
			continue
		}
		value, ok := formatQueryValue(param.Value)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	return b.String()
}

func formatQueryValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case []string:
		return strings.Join(v, ","), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				parts = append(parts, "")
				continue
			}
			part, _ := formatQueryValue(item)
			parts = append(parts, part)
		}
		return strings.Join(parts, ","), true
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(raw), true
	case fmt.Stringer:
		return v.String(), true
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v), true
		}
		return strings.Trim(string(raw), `"`), true
	}
}
