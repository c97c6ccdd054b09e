package testing

import (
	"strings"

	"github.com/deepnoodle-ai/boxgo/object"
	"github.com/deepnoodle-ai/boxgo/rt"
)

// Functions declared in the unit context of every test.
const (
	failFunc = "fail"
	skipFunc = "skip"
	logFunc  = "log"
)

// TestContext collects the outcome of one test function: failures, skip
// state and log lines. Script output written while the test runs is
// captured as log lines.
type TestContext struct {
	name       string
	filename   string
	failed     bool
	skipped    bool
	skipReason string
	logs       []string
	failures   []AssertionError
	partial    strings.Builder
}

// NewTestContext creates a new TestContext for a test function.
func NewTestContext(name, filename string) *TestContext {
	return &TestContext{name: name, filename: filename}
}

// install declares fail(message), skip(reason) and log(message) in rctx,
// shadowing built-ins of the same name.
func (t *TestContext) install(rctx *rt.Context) {
	params := func(name string) []rt.Param {
		return []rt.Param{rt.NewParam(false, "string", name, "")}
	}
	rctx.DefineFunction(failFunc, "void", params("message"), func(fctx *rt.Context) any {
		t.Fail(argument(fctx, "message"))
		return nil
	})
	rctx.DefineFunction(skipFunc, "void", params("reason"), func(fctx *rt.Context) any {
		t.Skip(argument(fctx, "reason"))
		return nil
	})
	rctx.DefineFunction(logFunc, "void", params("message"), func(fctx *rt.Context) any {
		t.Log(argument(fctx, "message"))
		return nil
	})
}

func argument(fctx *rt.Context, name string) string {
	v, _ := fctx.Scope(rt.ScopeArguments).Get(object.NewKey(name))
	s, _ := object.StringCaster.Attempt(v)
	return s
}

func (t *TestContext) Name() string { return t.name }

func (t *TestContext) Failed() bool { return t.failed }

func (t *TestContext) Skipped() bool { return t.skipped }

func (t *TestContext) SkipReason() string { return t.skipReason }

// Logs returns the logged lines, including any unterminated output.
func (t *TestContext) Logs() []string {
	if t.partial.Len() > 0 {
		t.logs = append(t.logs, t.partial.String())
		t.partial.Reset()
	}
	return t.logs
}

func (t *TestContext) Failures() []AssertionError { return t.failures }

// Fail marks the test failed with msg.
func (t *TestContext) Fail(msg string) {
	if msg == "" {
		msg = "test failed"
	}
	t.failed = true
	t.failures = append(t.failures, AssertionError{Message: msg, File: t.filename})
}

// Skip marks the test skipped. The test keeps running.
func (t *TestContext) Skip(reason string) {
	t.skipped = true
	t.skipReason = reason
}

func (t *TestContext) Log(msg string) {
	t.logs = append(t.logs, msg)
}

// Write captures script output line by line.
func (t *TestContext) Write(p []byte) (int, error) {
	for _, r := range string(p) {
		if r == '\n' {
			t.logs = append(t.logs, t.partial.String())
			t.partial.Reset()
			continue
		}
		t.partial.WriteRune(r)
	}
	return len(p), nil
}
