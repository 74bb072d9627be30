package render

import (
	"sort"
	"strconv"

	"github.com/chazu/hedron/pkg/svgdoc"
)

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// sortedAttrs converts a style map to attributes in sorted key order,
// keeping styler output deterministic.
func sortedAttrs(m map[string]string) []svgdoc.Attr {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]svgdoc.Attr, len(keys))
	for i, k := range keys {
		attrs[i] = svgdoc.Attr{Key: k, Value: m[k]}
	}
	return attrs
}
