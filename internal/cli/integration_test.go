package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/internal/cli"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/reporter"
)

const taskList = "# Plan\n- [ ] write\n- [x] ship\n"

// workspace creates a markdown file and an explicit config file in a temp
// dir, so discovered project config never leaks into a test.
func workspace(t *testing.T, markdown, cfg string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	mdFile := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(markdown), 0o644))

	cfgFile := filepath.Join(dir, "mddecor.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("class_prefix: md-\n"+cfg), 0o644))

	return mdFile, cfgFile
}

func execute(t *testing.T, cfgFile string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_DecorateText(t *testing.T) {
	t.Parallel()

	mdFile, cfgFile := workspace(t, taskList, "")

	out, err := execute(t, cfgFile, "decorate", mdFile)
	require.NoError(t, err)

	assert.Contains(t, out, mdFile+`:1:1  line  md-h1  "# Plan"`)
	assert.Contains(t, out, mdFile+`:2:1  widget  md-checkbox  "[ ]"`)
	assert.Contains(t, out, "md-task-checked")
}

func TestIntegration_DecorateFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, out string)
	}{
		{
			name: "json",
			args: []string{"--format", "json"},
			verify: func(t *testing.T, out string) {
				t.Helper()
				var parsed reporter.JSONOutput
				require.NoError(t, json.Unmarshal([]byte(out), &parsed))
				require.Len(t, parsed.Files, 1)
				assert.Positive(t, parsed.Total)

				var boxes int
				for _, d := range parsed.Files[0].Decorations {
					if d.Checkbox != nil {
						boxes++
					}
				}
				assert.Equal(t, 2, boxes)
			},
		},
		{
			name: "viewport limits lines",
			args: []string{"--format", "json", "--viewport", "2:2"},
			verify: func(t *testing.T, out string) {
				t.Helper()
				var parsed reporter.JSONOutput
				require.NoError(t, json.Unmarshal([]byte(out), &parsed))
				require.NotEmpty(t, parsed.Files[0].Decorations)
				for _, d := range parsed.Files[0].Decorations {
					assert.Equal(t, 2, d.Start.Line, d.Class)
				}
			},
		},
		{
			name: "table",
			args: []string{"--format", "table"},
			verify: func(t *testing.T, out string) {
				t.Helper()
				assert.Contains(t, out, "CLASS")
				assert.Contains(t, out, "md-checkbox")
			},
		},
		{
			name: "preview",
			args: []string{"--format", "preview"},
			verify: func(t *testing.T, out string) {
				t.Helper()
				assert.Contains(t, out, "- ☐ write")
				assert.Contains(t, out, "- ☑ ship")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mdFile, cfgFile := workspace(t, taskList, "")
			out, err := execute(t, cfgFile, append([]string{"decorate"}, append(testCase.args, mdFile)...)...)
			require.NoError(t, err)
			testCase.verify(t, out)
		})
	}
}

func TestIntegration_DecorateDirectory(t *testing.T) {
	t.Parallel()

	mdFile, cfgFile := workspace(t, taskList, "")
	dir := filepath.Dir(mdFile)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "skip.md"), []byte("# Skip\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.markdown"), []byte("## Other\n"), 0o644))

	out, err := execute(t, cfgFile, "decorate", "--format", "json", "--ignore", "vendor/**", "--jobs", "2", dir)
	require.NoError(t, err)

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Files, 2)
	assert.Equal(t, filepath.Join(dir, "notes.md"), parsed.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "other.markdown"), parsed.Files[1].Path)
}

func TestIntegration_DecorateClassOverride(t *testing.T) {
	t.Parallel()

	mdFile, cfgFile := workspace(t, taskList, "classes:\n  checkbox: todo-box\n")

	out, err := execute(t, cfgFile, "decorate", mdFile)
	require.NoError(t, err)
	assert.Contains(t, out, "widget  todo-box")
	assert.NotContains(t, out, "md-checkbox")
}

func TestIntegration_DecorateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     func(mdFile string) []string
		wantCode int
	}{
		{
			name:     "bad viewport",
			args:     func(mdFile string) []string { return []string{"--viewport", "9:2", mdFile} },
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "unknown format",
			args:     func(mdFile string) []string { return []string{"--format", "sarif", mdFile} },
			wantCode: cli.ExitConfigError,
		},
		{
			name: "missing file still reports the rest",
			args: func(mdFile string) []string {
				return []string{mdFile, filepath.Join(filepath.Dir(mdFile), "absent.md")}
			},
			wantCode: cli.ExitIOError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mdFile, cfgFile := workspace(t, taskList, "")
			_, err := execute(t, cfgFile, append([]string{"decorate"}, testCase.args(mdFile)...)...)
			require.Error(t, err)
			assert.Equal(t, testCase.wantCode, cli.ExitCode(err))
		})
	}
}

func TestIntegration_ToggleRoundTrip(t *testing.T) {
	t.Parallel()

	mdFile, cfgFile := workspace(t, taskList, "")

	out, err := execute(t, cfgFile, "toggle", mdFile, "--line", "2")
	require.NoError(t, err)
	assert.Contains(t, out, ":2 [x]")

	content, err := os.ReadFile(mdFile)
	require.NoError(t, err)
	assert.Equal(t, "# Plan\n- [x] write\n- [x] ship\n", string(content))

	_, err = execute(t, cfgFile, "toggle", mdFile, "--line", "2")
	require.NoError(t, err)

	content, err = os.ReadFile(mdFile)
	require.NoError(t, err)
	assert.Equal(t, taskList, string(content))

	_, err = os.Stat(mdFile + fsutil.BackupSuffix)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIntegration_ToggleReportsNewToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		line     string
		want     string
		content  string
	}{
		{"check", taskList, "2", "[x]", "# Plan\n- [x] write\n- [x] ship\n"},
		{"uncheck", taskList, "3", "[ ]", "# Plan\n- [ ] write\n- [ ] ship\n"},
		{"uppercase mark", "* [X] done\n", "1", "[ ]", "* [ ] done\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mdFile, cfgFile := workspace(t, testCase.markdown, "")
			out, err := execute(t, cfgFile, "toggle", mdFile, "--line", testCase.line)
			require.NoError(t, err)
			assert.Equal(t, mdFile+":"+testCase.line+" "+testCase.want+"\n", out)

			content, err := os.ReadFile(mdFile)
			require.NoError(t, err)
			assert.Equal(t, testCase.content, string(content))
		})
	}
}

func TestIntegration_ToggleDryRun(t *testing.T) {
	t.Parallel()

	mdFile, cfgFile := workspace(t, taskList, "")

	out, err := execute(t, cfgFile, "toggle", mdFile, "--line", "3", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "-- [x] ship")
	assert.Contains(t, out, "+- [ ] ship")

	content, err := os.ReadFile(mdFile)
	require.NoError(t, err)
	assert.Equal(t, taskList, string(content))
}

func TestIntegration_ToggleNotACheckbox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		line     string
	}{
		{"heading", taskList, "1"},
		{"past end", taskList, "40"},
		{"inside fence", "```\n- [ ] not a task\n```\n", "2"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mdFile, cfgFile := workspace(t, testCase.markdown, "")
			_, err := execute(t, cfgFile, "toggle", mdFile, "--line", testCase.line)
			require.ErrorIs(t, err, cli.ErrNotHandled)
			assert.Equal(t, cli.ExitNotHandled, cli.ExitCode(err))

			content, err := os.ReadFile(mdFile)
			require.NoError(t, err)
			assert.Equal(t, testCase.markdown, string(content))
		})
	}
}

func TestIntegration_ToggleBackupAndRestore(t *testing.T) {
	t.Parallel()

	mdFile, cfgFile := workspace(t, taskList, "backups:\n  mode: sidecar\n")

	_, err := execute(t, cfgFile, "toggle", mdFile, "--line", "2", "--backup")
	require.NoError(t, err)

	backup, err := os.ReadFile(mdFile + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, taskList, string(backup))

	out, err := execute(t, cfgFile, "restore", mdFile)
	require.NoError(t, err)
	assert.Contains(t, out, "restored")

	content, err := os.ReadFile(mdFile)
	require.NoError(t, err)
	assert.Equal(t, taskList, string(content))

	_, err = os.Stat(mdFile + fsutil.BackupSuffix)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, cfgFile, "restore", mdFile)
	assert.ErrorIs(t, err, cli.ErrNotHandled)
}

func TestIntegration_Open(t *testing.T) {
	t.Parallel()

	const doc = "see [docs](example.com/guide) and ![logo](logo.png)\n"

	tests := []struct {
		name    string
		args    []string
		wantURL string
		wantErr error
	}{
		{
			name:    "link gets default scheme",
			args:    []string{"--line", "1", "--col", "7"},
			wantURL: "https://example.com/guide",
		},
		{
			name:    "click on url part",
			args:    []string{"--line", "1", "--col", "14"},
			wantURL: "https://example.com/guide",
		},
		{
			name:    "plain text",
			args:    []string{"--line", "1", "--col", "1"},
			wantErr: cli.ErrNotHandled,
		},
		{
			name:    "image is not a link",
			args:    []string{"--line", "1", "--col", "38"},
			wantErr: cli.ErrNotHandled,
		},
		{
			name:    "modifier not held",
			args:    []string{"--line", "1", "--col", "7", "--keys", "shift"},
			wantErr: cli.ErrNotHandled,
		},
		{
			name:    "explicit modifier",
			args:    []string{"--line", "1", "--col", "7", "--modifier", "meta", "--keys", "meta"},
			wantURL: "https://example.com/guide",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mdFile, cfgFile := workspace(t, doc, "")
			args := append([]string{"open", mdFile, "--print"}, testCase.args...)
			out, err := execute(t, cfgFile, args...)

			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				assert.Empty(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantURL, strings.TrimSpace(out))
		})
	}
}

func TestIntegration_Cursor(t *testing.T) {
	t.Parallel()

	const doc = "intro\n```go\nx := 1\n```\nafter\n"

	tests := []struct {
		line string
		want string
	}{
		{"1", "text"},
		{"2", "code"},
		{"3", "code"},
		{"4", "code"},
		{"5", "text"},
	}

	for _, testCase := range tests {
		t.Run("line "+testCase.line, func(t *testing.T) {
			t.Parallel()

			mdFile, cfgFile := workspace(t, doc, "")
			out, err := execute(t, cfgFile, "cursor", mdFile, "--line", testCase.line, "--col", "1")
			require.NoError(t, err)
			assert.Equal(t, testCase.want, strings.TrimSpace(out))
		})
	}
}

func TestIntegration_Classes(t *testing.T) {
	t.Parallel()

	_, cfgFile := workspace(t, "", "classes:\n  h1: title\n")

	out, err := execute(t, cfgFile, "classes")
	require.NoError(t, err)
	assert.Contains(t, out, "md-checkbox")
	assert.Contains(t, out, "title")

	out, err = execute(t, cfgFile, "classes", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		Role  string `json:"role"`
		Class string `json:"class"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)
	assert.Equal(t, "h1", infos[0].Role)
	assert.Equal(t, "title", infos[0].Class)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	_, cfgFile := workspace(t, "", "")
	target := filepath.Join(t.TempDir(), "generated.yml")

	_, err := execute(t, cfgFile, "init", "--full", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "class_prefix: md-")
	assert.Contains(t, string(content), "md-checkbox")

	_, err = execute(t, cfgFile, "init", "--output", target)
	require.Error(t, err)

	_, err = execute(t, cfgFile, "init", "--output", target, "--force")
	require.NoError(t, err)

	// The generated file is a valid configuration.
	_, err = execute(t, target, "classes")
	require.NoError(t, err)
}
