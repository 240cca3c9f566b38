package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/itsatony/go-liquify"
)

// argList collects a repeatable string flag
type argList []string

func (a *argList) String() string {
	return strings.Join(*a, ",")
}

func (a *argList) Set(v string) error {
	*a = append(*a, v)
	return nil
}

// readValue reads a flag value, or stdin when it is "-"
func readValue(v string, stdin io.Reader) (string, error) {
	if v != InputSourceStdin {
		return v, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// parseLooseValue decodes JSON text, falling back to the raw text as a
// string when it is not valid JSON.
func parseLooseValue(s string) any {
	v, err := parseJSONValue(s)
	if err != nil {
		return s
	}
	return v
}

// parseJSONValue decodes JSON text with integral numbers kept as int so
// integer filters behave the way template literals do.
func parseJSONValue(s string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New(ErrMsgInvalidJSON)
	}
	return normalizeJSON(v), nil
}

func normalizeJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		f, _ := val.Float64()
		return f
	case []any:
		for i := range val {
			val[i] = normalizeJSON(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeJSON(val[k])
		}
		return val
	default:
		return v
	}
}

// loadEngine builds an engine, applying the config file when given
func loadEngine(configPath string) (*liquify.Engine, error) {
	if configPath == "" {
		return liquify.New()
	}
	cfg, err := liquify.LoadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	return liquify.New(liquify.WithConfig(cfg))
}

// validFormat checks an output format against the allowed set
func validFormat(format string, allowed ...string) bool {
	for _, a := range allowed {
		if format == a {
			return true
		}
	}
	return false
}

func writeJSON(stdout io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", JSONIndent)
	if err != nil {
		return err
	}
	_, err = stdout.Write(append(data, '\n'))
	return err
}
