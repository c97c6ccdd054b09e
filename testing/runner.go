// Package testing runs script tests. A test file is a JSON syntax tree
// named *_test.json; every function it declares whose name starts with
// "test" is a test. Tests fail through the assert built-in or fail(), and
// may call skip() and log().
package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/compiler"
	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
	"github.com/deepnoodle-ai/boxgo/rt"
	"github.com/deepnoodle-ai/boxgo/vm"
)

// TestFileSuffix identifies test files.
const TestFileSuffix = "_test.json"

// Config holds configuration for running tests.
type Config struct {
	// Patterns specifies files or directories to search for tests.
	// Default is current directory.
	Patterns []string

	// RunPattern filters tests to run by name regex.
	RunPattern string

	// Env holds variables made available to every test.
	Env map[string]any
}

// DiscoverTestFiles finds all test files matching the given patterns. A
// pattern is a file, a directory, a directory followed by "/..." for a
// recursive search, or a glob.
func DiscoverTestFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if isTestFile(path) && !seen[path] {
			files = append(files, path)
			seen[path] = true
		}
	}

	for _, pattern := range patterns {
		if strings.Contains(pattern, "*") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		recursive := false
		searchDir := pattern
		if strings.HasSuffix(pattern, "...") {
			recursive = true
			searchDir = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
			if searchDir == "" {
				searchDir = "."
			}
		}

		info, err := os.Stat(searchDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path not found: %s", searchDir)
			}
			return nil, err
		}
		switch {
		case !info.IsDir():
			add(pattern)
		case recursive:
			err = filepath.WalkDir(searchDir, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		default:
			entries, err := os.ReadDir(searchDir)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() {
					add(filepath.Join(searchDir, e.Name()))
				}
			}
		}
	}
	return files, nil
}

func isTestFile(path string) bool {
	return strings.HasSuffix(path, TestFileSuffix)
}

// DiscoverTestFunctions returns the names of the test functions declared
// in a unit's variables scope, sorted.
func DiscoverTestFunctions(variables object.IStruct) []string {
	var tests []string
	variables.Range(func(key object.Key, value any) bool {
		if _, ok := value.(*object.Function); ok && strings.HasPrefix(strings.ToLower(key.Name()), "test") {
			tests = append(tests, key.Name())
		}
		return true
	})
	slices.Sort(tests)
	return tests
}

// Run executes tests according to the given configuration.
func Run(ctx context.Context, cfg *Config) (*Summary, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	files, err := DiscoverTestFiles(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	var runRe *regexp.Regexp
	if cfg.RunPattern != "" {
		runRe, err = regexp.Compile(cfg.RunPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid run pattern: %w", err)
		}
	}

	summary := &Summary{}
	start := time.Now()
	for _, file := range files {
		summary.Files = append(summary.Files, runTestFile(ctx, file, runRe, cfg.Env))
	}
	summary.Duration = time.Since(start)
	summary.ComputeTotals()
	return summary, nil
}

// runTestFile executes all tests in a single file.
func runTestFile(ctx context.Context, filename string, runRe *regexp.Regexp, env map[string]any) *FileResult {
	result := &FileResult{Filename: filename}

	data, err := os.ReadFile(filename)
	if err != nil {
		result.CompileErr = err
		return result
	}
	node, err := ast.Decode(data)
	if err != nil {
		result.CompileErr = err
		return result
	}
	unit, err := compiler.Transpile(node, compiler.Config{Filename: filename})
	if err != nil {
		result.CompileErr = err
		return result
	}
	program, err := vm.New().Load(unit)
	if err != nil {
		result.CompileErr = err
		return result
	}

	// A discovery run finds the test functions. Its output is discarded.
	discovery := vm.New(vm.WithGlobals(env), vm.WithOutput(NewTestContext("", filename)))
	rctx, _, err := discovery.Start(ctx, program)
	if err != nil {
		result.CompileErr = err
		return result
	}
	testNames := DiscoverTestFunctions(rctx.Variables())
	if runRe != nil {
		testNames = slices.DeleteFunc(testNames, func(name string) bool {
			return !runRe.MatchString(name)
		})
	}

	for _, name := range testNames {
		result.Tests = append(result.Tests, runSingleTest(ctx, program, env, filename, name))
	}
	return result
}

// runSingleTest executes a single test function in a fresh unit context.
func runSingleTest(ctx context.Context, program vm.Program, env map[string]any, filename, testName string) *TestResult {
	result := &TestResult{Name: testName}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	testCtx := NewTestContext(testName, filename)
	machine := vm.New(vm.WithGlobals(env), vm.WithOutput(testCtx))

	// Run the file to populate the variables scope.
	rctx, _, err := machine.Start(ctx, program)
	if err != nil {
		result.Status = StatusError
		result.Error = err
		return result
	}
	testFn, ok := rctx.Variables().Get(object.NewKey(testName))
	if !ok {
		result.Status = StatusError
		result.Error = fmt.Errorf("test function %q not found", testName)
		return result
	}

	testCtx.install(rctx)
	_, err = machine.Call(rctx, func(c *rt.Context) any {
		return c.Call(testFn)
	})

	result.Logs = testCtx.Logs()
	if err != nil {
		var rte *errors.RuntimeError
		if errors.As(err, &rte) && rte.Code == errors.E3007 {
			// A failed assert ends the test.
			testCtx.Fail(rte.Message)
		} else {
			result.Status = StatusError
			result.Error = err
			return result
		}
	}
	result.Failures = testCtx.Failures()

	switch {
	case testCtx.Failed():
		result.Status = StatusFailed
	case testCtx.Skipped():
		result.Status = StatusSkipped
		result.SkipReason = testCtx.SkipReason()
	default:
		result.Status = StatusPassed
	}
	return result
}
