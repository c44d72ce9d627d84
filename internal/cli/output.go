package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/kroma-labs/semantria-go/semantria"
)

// print writes a result either as indented JSON or as key/value lines.
func (o *rootOptions) print(w io.Writer, res *semantria.Result) error {
	if o.jsonOutput {
		out, err := json.MarshalIndent(res.Data, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to format JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	switch data := res.Data.(type) {
	case nil:
		okLabel.Fprintf(w, "OK (%d %s)\n", res.StatusCode, http.StatusText(res.StatusCode))
	case map[string]any:
		printMap(w, data, "")
	case []any:
		for i, item := range data {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if m, ok := item.(map[string]any); ok {
				printMap(w, m, "")
				continue
			}
			fmt.Fprintln(w, compact(item))
		}
		if len(data) == 0 {
			fmt.Fprintln(w, "No results")
		}
	default:
		fmt.Fprintln(w, compact(data))
	}
	return nil
}

// printMap prints one key per line in sorted order; nested values are
// printed as compact JSON.
func printMap(w io.Writer, m map[string]any, indent string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		keyLabel.Fprintf(w, "%s%s:", indent, k)
		fmt.Fprintf(w, " %s\n", compact(m[k]))
	}
}

func compact(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(out)
}
