package hostinterface

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// formatDispatchResponse renders a dispatcher result as the array the host
// script parses: ["ok"], ["ok", <value>] or ["error", "<message>"]. The reply
// is valid JSON, so quotes and backslashes in strings are escaped.
func formatDispatchResponse(result any, err error) string {
	if err != nil {
		return fmt.Sprintf(`["error", %s]`, quote(err.Error()))
	}
	if result == nil {
		return `["ok"]`
	}
	data, mErr := marshal(result)
	if mErr != nil {
		return fmt.Sprintf(`["ok", %s]`, quote(fmt.Sprintf("%v", result)))
	}
	return fmt.Sprintf(`["ok", %s]`, data)
}

func unknownCommand(command string) string {
	return fmt.Sprintf(`["error", %s, "no handler registered"]`, quote(command))
}

// marshal encodes v without HTML escaping; paths and messages go back as written.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func quote(s string) string {
	data, _ := marshal(s)
	return string(data)
}

// splitCommand splits "command|arg|arg" as sent by the host script.
func splitCommand(input string) (command string, args []string) {
	parts := strings.Split(input, "|")
	return parts[0], parts[1:]
}
