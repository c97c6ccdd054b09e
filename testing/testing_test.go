package testing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	stdt "testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
)

var m ast.Meta

func str(v string) *ast.StringLiteral      { return ast.NewStringLiteral(v, m) }
func integer(v string) *ast.IntegerLiteral { return ast.NewIntegerLiteral(v, m) }

func call(name string, values ...ast.Expr) ast.Stmt {
	args := make([]*ast.Argument, len(values))
	for i, v := range values {
		args[i] = ast.NewArgument("", v, m)
	}
	return ast.NewExpressionStatement(ast.NewFunctionInvocation(name, args, m), m)
}

func function(name string, body ...ast.Stmt) *ast.FunctionDeclaration {
	return ast.NewFunctionDeclaration(name, nil, body, "", m)
}

func equal(a, b string) ast.Expr {
	return ast.NewBinaryOperation(integer(a), ast.Equal, integer(b), m)
}

func writeProgram(t *stdt.T, path string, stmts ...ast.Stmt) {
	t.Helper()
	data, err := ast.MarshalJSON(ast.NewProgram(stmts, m))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func writeSuite(t *stdt.T, dir string) string {
	path := filepath.Join(dir, "suite_test.json")
	writeProgram(t, path,
		function("testPass", call("assert", equal("1", "1")), call("writeOutput", str("hello\n"))),
		function("testFail", call("log", str("before")), call("assert", equal("1", "2"), str("one is not two"))),
		function("testSkip", call("skip", str("later"))),
		function("testExplodes", ast.NewReturn(ast.NewIdentifier("missing", m), m)),
		function("helper"),
	)
	return path
}

func TestStatusString(t *stdt.T) {
	require.Equal(t, "PASS", StatusPassed.String())
	require.Equal(t, "FAIL", StatusFailed.String())
	require.Equal(t, "SKIP", StatusSkipped.String())
	require.Equal(t, "ERROR", StatusError.String())
}

func TestDiscoverTestFiles(t *stdt.T) {
	dir := t.TempDir()
	writeProgram(t, filepath.Join(dir, "a_test.json"))
	writeProgram(t, filepath.Join(dir, "b.json"))
	writeProgram(t, filepath.Join(dir, "sub", "c_test.json"))

	files, err := DiscoverTestFiles([]string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a_test.json")}, files)

	files, err = DiscoverTestFiles([]string{dir + "/...", filepath.Join(dir, "a_test.json")})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a_test.json"),
		filepath.Join(dir, "sub", "c_test.json"),
	}, files)

	files, err = DiscoverTestFiles([]string{filepath.Join(dir, "*.json")})
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = DiscoverTestFiles([]string{filepath.Join(dir, "missing")})
	require.ErrorContains(t, err, "path not found")
}

func TestRun(t *stdt.T) {
	dir := t.TempDir()
	writeSuite(t, dir)

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}})
	require.NoError(t, err)
	require.Len(t, summary.Files, 1)
	require.Equal(t, 1, summary.Passed)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 1, summary.Errors)
	require.False(t, summary.Success())

	tests := map[string]*TestResult{}
	var names []string
	for _, r := range summary.Files[0].Tests {
		tests[r.Name] = r
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"testExplodes", "testFail", "testPass", "testSkip"}, names)

	require.Equal(t, []string{"hello"}, tests["testPass"].Logs)

	failed := tests["testFail"]
	require.Equal(t, StatusFailed, failed.Status)
	require.Len(t, failed.Failures, 1)
	require.Equal(t, "one is not two", failed.Failures[0].Message)
	require.Equal(t, []string{"before"}, failed.Logs)

	require.Equal(t, "later", tests["testSkip"].SkipReason)

	code, ok := errors.CodeOf(tests["testExplodes"].Error)
	require.True(t, ok)
	require.Equal(t, errors.E3004, code)
}

func TestRunPattern(t *stdt.T) {
	dir := t.TempDir()
	writeSuite(t, dir)
	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}, RunPattern: "Pass$"})
	require.NoError(t, err)
	require.Len(t, summary.Files[0].Tests, 1)
	require.True(t, summary.Success())

	_, err = Run(context.Background(), &Config{Patterns: []string{dir}, RunPattern: "("})
	require.ErrorContains(t, err, "invalid run pattern")
}

func TestEnv(t *stdt.T) {
	dir := t.TempDir()
	writeProgram(t, filepath.Join(dir, "env_test.json"),
		function("testEnv", call("assert", ast.NewBinaryOperation(
			ast.NewIdentifier("limit", m), ast.Equal, integer("3"), m))))
	summary, err := Run(context.Background(), &Config{
		Patterns: []string{dir},
		Env:      map[string]any{"limit": int64(3)},
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Passed)
}

func TestCompileError(t *stdt.T) {
	dir := t.TempDir()
	chain := ast.NewObjectAccess(ast.NewIdentifier("a", m), ast.NewIdentifier("b", m), m)
	writeProgram(t, filepath.Join(dir, "bad_test.json"), ast.NewExpressionStatement(chain, m))
	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}})
	require.NoError(t, err)
	require.Error(t, summary.Files[0].CompileErr)
	require.Equal(t, 1, summary.Errors)
}

func TestOutput(t *stdt.T) {
	dir := t.TempDir()
	writeSuite(t, dir)
	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}})
	require.NoError(t, err)

	var buf bytes.Buffer
	NewOutput(OutputConfig{Writer: &buf}).PrintResults(summary)
	out := buf.String()
	require.Contains(t, out, "=== RUN   testPass")
	require.Contains(t, out, "--- PASS: testPass")
	require.Contains(t, out, "--- FAIL: testFail")
	require.Contains(t, out, "one is not two")
	require.Contains(t, out, "--- SKIP: testSkip")
	require.Contains(t, out, "--- ERROR: testExplodes")
	require.Contains(t, out, "1 passed, 1 failed, 1 skipped, 1 errors")
	require.NotContains(t, out, "hello")

	buf.Reset()
	NewOutput(OutputConfig{Writer: &buf, Verbose: true}).PrintResults(summary)
	require.Contains(t, buf.String(), "    hello")
}
