package assembler_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bundler/internal/adapters/fs"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports/mocks"
	"go.trai.ch/bundler/internal/engine/assembler"
	"go.uber.org/mock/gomock"
)

const root = "/srv/www"

func newInliner(t *testing.T, files fstest.MapFS, scope domain.ImportScope) (*assembler.Inliner, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	return assembler.NewInliner(fs.NewMapFSAdapter(root, files), logger, scope), logger
}

func TestInliner_Forms(t *testing.T) {
	files := fstest.MapFS{
		"css/a.less": {Data: []byte(".a{}")},
		"css/b.less": {Data: []byte(".b{}")},
		"css/c.less": {Data: []byte(".c{}")},
		"css/d.less": {Data: []byte(".d{}")},
	}
	in, _ := newInliner(t, files, domain.ImportScopeCall)

	src := "@import 'a.less';\n" +
		"@IMPORT url(\"b.less\");\n" +
		"@import (reference) \"c\";\n" +
		"@import   url('d.less')  ;\n" +
		"body{}"

	out, deps := in.Inline(src, root+"/css/main.less")

	assert.Equal(t, ".a{}\n.b{}\n.c{}\n.d{}\nbody{}", out)
	assert.Equal(t, []string{
		root + "/css/a.less",
		root + "/css/b.less",
		root + "/css/c.less",
		root + "/css/d.less",
	}, deps)
}

func TestInliner_Nested(t *testing.T) {
	files := fstest.MapFS{
		"css/partials/btn.less": {Data: []byte("@import \"../vars\";\n.btn{color:@c}")},
		"css/vars.less":         {Data: []byte("@c: red;")},
	}
	in, _ := newInliner(t, files, domain.ImportScopeCall)

	out, deps := in.Inline("@import \"partials/btn\";\nbody{}", root+"/css/site.less")

	assert.Equal(t, "@c: red;\n.btn{color:@c}\nbody{}", out)
	assert.Equal(t, []string{root + "/css/partials/btn.less", root + "/css/vars.less"}, deps)
}

func TestInliner_Cycle(t *testing.T) {
	files := fstest.MapFS{
		"a.less": {Data: []byte("@import \"b\";\n.a{}")},
		"b.less": {Data: []byte("@import \"a\";\n.b{}")},
	}
	in, _ := newInliner(t, files, domain.ImportScopeCall)

	out, _ := in.Inline("@import \"b\";\n.a{}", root+"/a.less")

	assert.Equal(t, "\n.b{}\n.a{}", out)
}

func TestInliner_SelfImport(t *testing.T) {
	files := fstest.MapFS{
		"self.less": {Data: []byte("@import \"self\";\n.x{}")},
	}
	in, _ := newInliner(t, files, domain.ImportScopeBranch)

	out, deps := in.Inline("@import \"self\";\n.x{}", root+"/self.less")

	assert.Equal(t, "\n.x{}", out)
	assert.Equal(t, []string{root + "/self.less"}, deps)
}

func TestInliner_DiamondScope(t *testing.T) {
	files := fstest.MapFS{
		"a.less":      {Data: []byte("@import \"shared\";\n.a{}")},
		"b.less":      {Data: []byte("@import \"shared\";\n.b{}")},
		"shared.less": {Data: []byte(".s{}")},
	}
	main := "@import \"a\";\n@import \"b\";\n"

	tests := []struct {
		scope domain.ImportScope
		want  string
	}{
		{scope: domain.ImportScopeCall, want: ".s{}\n.a{}\n\n.b{}\n"},
		{scope: "", want: ".s{}\n.a{}\n\n.b{}\n"},
		{scope: domain.ImportScopeBranch, want: ".s{}\n.a{}\n.s{}\n.b{}\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			in, _ := newInliner(t, files, tt.scope)
			out, deps := in.Inline(main, root+"/main.less")
			assert.Equal(t, tt.want, out)
			assert.Len(t, deps, 3)
		})
	}
}

func TestInliner_MissingImport(t *testing.T) {
	in, logger := newInliner(t, fstest.MapFS{}, domain.ImportScopeCall)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	out, deps := in.Inline("@import \"missing\";\nbody{}", root+"/main.less")

	assert.Equal(t, "\nbody{}", out)
	assert.Equal(t, []string{root + "/missing.less"}, deps, "missing imports are still dependencies")
}

func TestInliner_LeavesUnrecognizedText(t *testing.T) {
	in, _ := newInliner(t, fstest.MapFS{}, domain.ImportScopeCall)

	src := "@import url(\"https://fonts.example.com/x.css\");\n" +
		"@import \"//cdn.example.com/y.css\";\n" +
		"@importx \"a\";\n" +
		"@import \"unterminated\"\n" +
		"@import ;\n" +
		"body{}"

	out, deps := in.Inline(src, root+"/main.less")

	assert.Equal(t, src, out)
	assert.Empty(t, deps)
}

func TestInliner_IgnoresCommentsAndStrings(t *testing.T) {
	files := fstest.MapFS{
		"debug.less": {Data: []byte(".debug{}\n.outline{}")},
		"vars.less":  {Data: []byte("@c: red;")},
	}
	in, _ := newInliner(t, files, domain.ImportScopeCall)

	src := "// @import \"debug.less\";\n" +
		"/* @import \"debug.less\";\n   @import 'debug.less'; */\n" +
		".a{content:\"@import 'debug.less';\"}\n" +
		".b{background:url(//cdn.example.com/x.png)} @import \"vars.less\";\n" +
		"body{}"

	out, deps := in.Inline(src, root+"/main.less")

	assert.Equal(t, "// @import \"debug.less\";\n"+
		"/* @import \"debug.less\";\n   @import 'debug.less'; */\n"+
		".a{content:\"@import 'debug.less';\"}\n"+
		".b{background:url(//cdn.example.com/x.png)} @c: red;\n"+
		"body{}", out)
	assert.Equal(t, []string{root + "/vars.less"}, deps)
}
