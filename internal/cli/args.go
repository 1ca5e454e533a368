package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"pitchplease/internal/api"
)

var errUsage = errors.New("usage")

func usageError(usage string) error {
	return fmt.Errorf("%w: %s", errUsage, usage)
}

// splitArgs splits on whitespace, keeping double-quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}

// splitKV separates key=value arguments from positional ones.
func splitKV(args []string) (map[string]string, []string) {
	kv := make(map[string]string)
	var rest []string
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok && k != "" {
			kv[strings.ToLower(k)] = v
			continue
		}
		rest = append(rest, a)
	}
	return kv, rest
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, s)
	}
	return id, nil
}

func parseQueryID(query string) (int64, error) {
	q, err := url.ParseQuery(query)
	if err != nil {
		return 0, err
	}
	return parseID(q.Get("id"))
}

func parseMoney(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid amount %q", errUsage, s)
	}
	return v, nil
}

// userMessage prefers the backend's message for HTTP errors.
func userMessage(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		if msg := se.Message(); msg != "" {
			return msg
		}
		return se.Error()
	}
	return err.Error()
}

// pageArg reads an optional one-based page number and returns it zero-based.
func pageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: invalid page %q", errUsage, args[0])
	}
	return n - 1, nil
}
