package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// fprintJSON writes v to w as two-space indented JSON, one document per call.
// Commands pass cmd.OutOrStdout() so output can be captured.
func fprintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
