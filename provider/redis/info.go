package redis

import (
	"bufio"
	"strconv"
	"strings"
)

// parseInfo flattens the text of a Redis INFO reply into a field map.
// Lines are "name:value"; section headers start with '#' and blank lines
// separate sections. Unknown or malformed lines are skipped.
func parseInfo(text string) map[string]string {
	fields := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[name] = value
	}
	return fields
}

func intField(fields map[string]string, name string) int64 {
	n, err := strconv.ParseInt(fields[name], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
