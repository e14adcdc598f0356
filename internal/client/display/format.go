package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON writes v as indented JSON
func PrettyPrintJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(w, string(data))
}
