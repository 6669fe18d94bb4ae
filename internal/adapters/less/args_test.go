package less_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.trai.ch/bundler/internal/adapters/less"
	"go.trai.ch/bundler/internal/core/domain"
)

func TestBuildArgs(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		opts domain.CompileOptions
		want []string
	}{
		{
			name: "zero options",
			opts: domain.CompileOptions{},
			want: []string{"--no-color", "--strict-units=off", "-"},
		},
		{
			name: "defaults",
			opts: domain.DefaultCompileOptions(),
			want: []string{"--no-color", "--math=always", "--strict-units=off", "--js", "-"},
		},
		{
			name: "strict with line numbers",
			opts: domain.CompileOptions{
				Math:            domain.MathStrict,
				StrictUnits:     true,
				DumpLineNumbers: domain.LineNumbersComments,
			},
			want: []string{"--no-color", "--math=strict", "--strict-units=on", "--line-numbers=comments", "-"},
		},
		{
			name: "no line numbers",
			opts: domain.CompileOptions{DumpLineNumbers: domain.LineNumbersNone},
			want: []string{"--no-color", "--strict-units=off", "-"},
		},
		{
			name: "include paths and variables",
			opts: domain.CompileOptions{
				IncludePaths: []string{"/srv/www/css", "/srv/www/lib"},
				GlobalVars:   map[string]string{"brand": "#333", "accent": "red"},
				ModifyVars:   map[string]string{"width": "10px"},
			},
			want: []string{
				"--no-color",
				"--strict-units=off",
				"--include-path=/srv/www/css" + sep + "/srv/www/lib",
				"--global-var=accent=red",
				"--global-var=brand=#333",
				"--modify-var=width=10px",
				"-",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, less.BuildArgs(tt.opts)); diff != "" {
				t.Errorf("BuildArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveEnvironment(t *testing.T) {
	got := less.ResolveEnvironment([]string{
		"USER=web",
		"PATH=/usr/bin",
		"SECRET=key",
		"NODE_PATH=/opt/node",
		"MALFORMED",
	})
	want := []string{"NODE_PATH=/opt/node", "PATH=/usr/bin", "USER=web"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveEnvironment() mismatch (-want +got):\n%s", diff)
	}
}
