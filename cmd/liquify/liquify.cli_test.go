package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// runCLI runs the CLI with stdin and returns exit code and both streams
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameApply)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "unknown")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stdout, ErrMsgUnknownCommand)
}

func TestRun_HelpForEachCommand(t *testing.T) {
	for _, cmd := range []string{CmdNameApply, CmdNameList, CmdNameColor, CmdNamePaginate, CmdNameVersion, CmdNameHelp} {
		t.Run(cmd, func(t *testing.T) {
			code, stdout, _ := runCLI(t, "", CmdNameHelp, cmd)
			assert.Equal(t, ExitCodeSuccess, code)
			assert.Contains(t, stdout, "Usage:")
		})
	}
}

// ==================== apply tests ====================

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"json string base", []string{"upcase", "-b", `"hello"`}, "HELLO"},
		{"bare text base", []string{"truncate", "-b", "The quick brown fox", "-a", "10"}, "The qui..."},
		{"integer args", []string{"plus", "-b", "4", "-a", "2"}, "6"},
		{"array base", []string{"join", "-b", `["a","b"]`, "-a", `" / "`}, "a / b"},
		{"long flags", []string{"append", "--base", "shop", "--arg", ".html"}, "shop.html"},
		{"empty result", []string{"first", "-b", "[]"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "", append([]string{CmdNameApply}, tt.args...)...)
			require.Equal(t, ExitCodeSuccess, code, stderr)
			assert.Equal(t, tt.want+"\n", stdout)
		})
	}
}

func TestApply_Stdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, "[3,1,2]\n", CmdNameApply, "sort", "-b", "-", "-F", "json")
	require.Equal(t, ExitCodeSuccess, code, stderr)

	var got []int
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestApply_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liquify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  shout: upcase\n"), 0o600))

	code, stdout, stderr := runCLI(t, "", CmdNameApply, "shout", "-b", "hi", "-c", path)
	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "HI\n", stdout)

	code, _, stderr = runCLI(t, "", CmdNameApply, "shout", "-b", "hi", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgLoadConfigFailed)
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing filter", nil, ExitCodeUsageError, ErrMsgMissingFilter},
		{"flag before filter", []string{"-b", "x"}, ExitCodeUsageError, ErrMsgMissingFilter},
		{"bad format", []string{"upcase", "-F", "xml"}, ExitCodeUsageError, ErrMsgInvalidFormat},
		{"unknown filter", []string{"nope", "-b", "x"}, ExitCodeError, ErrMsgApplyFailed},
		{"division by zero", []string{"divided_by", "-b", "1", "-a", "0"}, ExitCodeError, ErrMsgApplyFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", append([]string{CmdNameApply}, tt.args...)...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

// ==================== list tests ====================

func TestList(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameList)
	require.Equal(t, ExitCodeSuccess, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Contains(t, lines, "upcase")
	assert.Contains(t, lines, "color_mix")

	code, stdout, _ = runCLI(t, "", CmdNameList, "-F", "json")
	require.Equal(t, ExitCodeSuccess, code)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &names))
	assert.Equal(t, len(lines), len(names))
}

// ==================== color tests ====================

func TestColor(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", CmdNameColor, "#ff0000")
	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, "hex: #ff0000")
	assert.Contains(t, stdout, "rgb: rgb(255, 0, 0)")
	assert.Contains(t, stdout, "hsl: hsl(0, 100%, 50%)")

	code, stdout, _ = runCLI(t, "", CmdNameColor, "rgb(0, 153, 204)", "-F", "json")
	require.Equal(t, ExitCodeSuccess, code)
	var out colorOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "#0099cc", out.Hex)
	assert.Equal(t, 153, out.Green)

	code, _, stderr = runCLI(t, "", CmdNameColor, "chartreuse")
	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgColorFailed)

	code, _, _ = runCLI(t, "", CmdNameColor)
	assert.Equal(t, ExitCodeUsageError, code)
}

// ==================== paginate tests ====================

func TestPaginate(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", CmdNamePaginate, "-d", "[1,2,3]", "--cols", "2")
	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t,
		`<tr class="row1"><td class="col1">1</td><td class="col2">2</td></tr><tr class="row2"><td class="col1">3</td></tr>`+"\n",
		stdout)

	code, stdout, _ = runCLI(t, `["a","b","c","d"]`, CmdNamePaginate, "-d", "-", "--offset", "1", "--limit", "3")
	require.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, `<tr class="row1"><td class="col1">b</td><td class="col2">c</td><td class="col3">d</td></tr>`+"\n", stdout)

	code, _, _ = runCLI(t, "", CmdNamePaginate)
	assert.Equal(t, ExitCodeUsageError, code)

	code, _, stderr = runCLI(t, "", CmdNamePaginate, "-d", "[1]", "--cols", "0")
	assert.Equal(t, ExitCodeError, code)
	assert.Contains(t, stderr, ErrMsgPaginateFailed)

	code, _, _ = runCLI(t, "", CmdNamePaginate, "-d", "{oops")
	assert.Equal(t, ExitCodeInputError, code)
}

// ==================== version tests ====================

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion)
	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "go-liquify version")

	code, stdout, _ = runCLI(t, "", CmdNameVersion, "-F", "yaml")
	require.Equal(t, ExitCodeSuccess, code)
	var out versionOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.NotEmpty(t, out.Version)
	assert.Greater(t, out.Filters, 0)

	code, stdout, _ = runCLI(t, "", CmdNameVersion, "--format", "json")
	require.Equal(t, ExitCodeSuccess, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	code, _, _ = runCLI(t, "", CmdNameVersion, "-F", "xml")
	assert.Equal(t, ExitCodeUsageError, code)
}

// ==================== input helpers ====================

func TestParseJSONValue(t *testing.T) {
	v, err := parseJSONValue(`{"n": 2, "f": 2.5, "list": [1, "x"]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": 2, "f": 2.5, "list": []any{1, "x"}}, v)

	_, err = parseJSONValue("1 2")
	assert.Error(t, err)

	assert.Equal(t, "not json", parseLooseValue("not json"))
	assert.Equal(t, true, parseLooseValue("true"))
}
