package runtime

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/panyam/wea/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testLibrary() Library {
	return NewLibrary("test",
		Native("to_str", 1, func(it *Interpreter, args []Value) (Value, error) {
			return StringValue(args[0].String()), nil
		}),
		Native("apply", 2, func(it *Interpreter, args []Value) (Value, error) {
			return it.Invoke(args[0], args[1:])
		}),
		Native("explode", 0, func(it *Interpreter, args []Value) (Value, error) {
			return Null, fmt.Errorf("%w: boom", ErrTypeMismatch)
		}),
	)
}

// run executes src in a fresh runtime and collects every notification.
func run(t *testing.T, src string, opts ...Option) ([]string, error) {
	t.Helper()
	var out []string
	opts = append([]Option{
		WithOutput(func(msg string) { out = append(out, msg) }),
		WithLogger(quietLogger),
		WithLibraries(testLibrary()),
	}, opts...)
	err := NewRuntime(opts...).Run(src)
	return out, err
}

func runOK(t *testing.T, src string) []string {
	t.Helper()
	out, err := run(t, src)
	require.NoError(t, err, "output: %v", out)
	return out
}

func runFail(t *testing.T, src string, sentinel error) string {
	t.Helper()
	out, err := run(t, src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel), "expected %v, got %v", sentinel, err)
	var rtErr *RuntimeError
	require.True(t, errors.As(err, &rtErr), "got %T", err)
	require.NotEmpty(t, out)
	assert.Equal(t, "[RUNTIME ERROR] "+err.Error(), out[len(out)-1])
	return rtErr.Message()
}

func TestEmitDisplayForms(t *testing.T) {
	out := runOK(t, `
wea_emit 5
wea_emit 2.5
wea_emit bos
wea_emit dogru
wea_emit yanlis
wea_emit "plain"
wea_emit [1, "x", [dogru]]
wea_emit {"a": [1, "x"], "b": bos}
wea_flow f() {}
wea_emit f
wea_emit (x) => x
wea_emit to_str
`)
	assert.Equal(t, []string{
		"5", "2.5", "bos", "dogru", "yanlis", "plain",
		`[1, "x", [dogru]]`,
		`{"a": [1, "x"], "b": bos}`,
		"<fn f>", "<lambda>", "<native fn to_str>",
	}, out)
}

func TestBlocksShadowOuterNames(t *testing.T) {
	out := runOK(t, "wea_unit x = 1 { wea_unit x = 2; wea_emit x } wea_emit x")
	assert.Equal(t, []string{"2", "1"}, out)
}

func TestAssignmentUpdatesEnclosingScope(t *testing.T) {
	out := runOK(t, "wea_unit x = 1 { x = 2 } wea_emit x")
	assert.Equal(t, []string{"2"}, out)
}

func TestClosuresCaptureTheirScope(t *testing.T) {
	out := runOK(t, `
wea_flow make() {
	wea_unit n = 0
	wea_return () => {
		n = n + 1
		wea_return n
	}
}
wea_unit c = make()
wea_unit d = make()
c()
c()
wea_emit c()
wea_emit d()
`)
	assert.Equal(t, []string{"3", "1"}, out)
}

func TestListsAndDictsAlias(t *testing.T) {
	out := runOK(t, `
wea_unit a = [1, 2]
wea_unit b = a
b[0] = 9
wea_emit a
wea_unit d = {"k": 1}
wea_unit e = d
e.k = 5
e["n"] = 6
wea_emit d
wea_emit a == b
wea_emit [1] == [1]
`)
	assert.Equal(t, []string{"[9, 2]", `{"k": 5, "n": 6}`, "dogru", "yanlis"}, out)
}

func TestPipeCallsWithLeftAsFirstArgument(t *testing.T) {
	out := runOK(t, `
wea_flow double(x) { wea_return x * 2 }
wea_flow add(a, b) { wea_return a + b }
wea_emit 3 |> double() |> add(1)
`)
	assert.Equal(t, []string{"7"}, out)
}

func TestSlicesClampAndCopy(t *testing.T) {
	out := runOK(t, `
wea_unit a = [1, 2, 3, 4]
wea_emit a[1:3]
wea_emit a[-5:10]
wea_emit a[3:1]
wea_emit "hello"[1:4]
wea_emit "çay"[1]
wea_unit s = a[0:2]
s[0] = 9
wea_emit a
wea_emit a[1.9]
`)
	assert.Equal(t, []string{"[2, 3]", "[1, 2, 3, 4]", "[]", "ell", "a", "[1, 2, 3, 4]", "2"}, out)
}

func TestVectorArithmetic(t *testing.T) {
	out := runOK(t, `
wea_emit [1, 2] + [3, 4]
wea_emit [5, 5] - [1, 2]
wea_emit 2 * [1, 2]
wea_emit [1, 2] * 3
wea_emit [1, 2] * [3, 4]
wea_emit 7 % 3
wea_emit -7 % 3
`)
	assert.Equal(t, []string{"[4, 6]", "[4, 3]", "[2, 4]", "[3, 6]", "11", "1", "-1"}, out)

	runFail(t, "wea_emit [1, 2] + [1]", ErrLengthMismatch)
	runFail(t, `wea_emit [1, "a"] + [1, 2]`, ErrTypeMismatch)
	runFail(t, "wea_emit [1] + 1", ErrTypeMismatch)
}

func TestStringConcatenation(t *testing.T) {
	out := runOK(t, `
wea_emit "n=" + 1
wea_emit 2 + "x"
wea_emit "l=" + [1, "a"]
wea_emit "b=" + bos
`)
	assert.Equal(t, []string{"n=1", "2x", `l=[1, "a"]`, "b=bos"}, out)
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	out := runOK(t, `
wea_emit bos || 5
wea_emit 0 && 1
wea_emit yanlis && missing
wea_emit dogru || missing
wea_emit !0
wea_emit !"x"
`)
	assert.Equal(t, []string{"5", "0", "yanlis", "dogru", "dogru", "yanlis"}, out)
}

func TestComparisonsRequireNumbers(t *testing.T) {
	out := runOK(t, `wea_emit 1 < 2
wea_emit 2 <= 2
wea_emit "a" == "a"
wea_emit 1 != "1"`)
	assert.Equal(t, []string{"dogru", "dogru", "dogru", "dogru"}, out)

	msg := runFail(t, `wea_emit "a" < "b"`, ErrTypeMismatch)
	assert.Contains(t, msg, "'<'")
	runFail(t, `wea_emit -"a"`, ErrTypeMismatch)
}

func TestArityMismatchNamesFunction(t *testing.T) {
	msg := runFail(t, "wea_flow f(a) { wea_return a }\nf(1, 2)", ErrArity)
	assert.Equal(t, "wrong number of arguments: f expects 1 arguments, got 2", msg)

	msg = runFail(t, "to_str()", ErrArity)
	assert.Contains(t, msg, "to_str expects 1 arguments, got 0")
}

func TestDivisionAndModuloByZero(t *testing.T) {
	msg := runFail(t, "wea_emit 1 / 0", ErrDivisionByZero)
	assert.Contains(t, msg, "'/'")
	msg = runFail(t, "wea_emit 1 % 0", ErrDivisionByZero)
	assert.Contains(t, msg, "'%'")
}

func TestTryCatchBindsMessage(t *testing.T) {
	out := runOK(t, `
wea_eman {
	wea_emit "before"
	wea_emit 1 / 0
	wea_emit "skipped"
} wea_fail {
	wea_emit wea_error
}
wea_eman { wea_emit missing }
wea_emit "after"
`)
	assert.Equal(t, []string{"before", "division by zero: operator '/'", "after"}, out)
}

func TestTryScopesDoNotLeak(t *testing.T) {
	runFail(t, "wea_eman { wea_unit x = 1 } wea_fail {}\nwea_emit x", ErrUndefined)
	runFail(t, "wea_eman { 1 / 0 } wea_fail {}\nwea_emit wea_error", ErrUndefined)
}

func TestReturnPassesThroughTry(t *testing.T) {
	out := runOK(t, `
wea_flow f() {
	wea_eman { wea_return 1 } wea_fail { wea_return 2 }
	wea_return 3
}
wea_flow g() {
	wea_eman { wea_unit x = 1 / 0 } wea_fail { wea_return 2 }
	wea_return 3
}
wea_flow h() { wea_emit "no return" }
wea_emit f()
wea_emit g()
wea_emit h()
`)
	assert.Equal(t, []string{"1", "2", "no return", "bos"}, out)
}

func TestBreakInsideTryStopsLoop(t *testing.T) {
	out := runOK(t, `
wea_unit i = 0
wea_cycle dogru {
	i = i + 1
	wea_eman {
		wea_verify i == 3 { break }
	} wea_fail {}
}
wea_emit i
`)
	assert.Equal(t, []string{"3"}, out)
}

func TestLoopsConsumeBreakAndContinue(t *testing.T) {
	out := runOK(t, `
wea_unit i = 0
wea_unit total = 0
wea_cycle i < 10 {
	i = i + 1
	wea_verify i % 2 == 0 { continue }
	wea_verify i > 7 { break }
	total = total + i
}
wea_emit total
foreach (x in [1, 2, 3, 4]) {
	wea_verify x == 2 { continue }
	wea_verify x == 4 { break }
	wea_emit x
}
`)
	assert.Equal(t, []string{"16", "1", "3"}, out)
}

func TestForeachIterables(t *testing.T) {
	out := runOK(t, `
foreach k in {"b": 1, "a": 2} { wea_emit k }
foreach ch in "hi" { wea_emit ch }
wea_unit l = [1, 2]
foreach (x in l) {
	l[1] = 5
	wea_emit x
}
`)
	assert.Equal(t, []string{"b", "a", "h", "i", "1", "2"}, out)

	runFail(t, "foreach x in 5 { }", ErrNotIterable)
}

func TestForeachBindsFreshVariablePerIteration(t *testing.T) {
	out := runOK(t, `
wea_unit fs = [0, 0, 0]
wea_unit i = 0
foreach (x in [1, 2, 3]) {
	fs[i] = () => x
	i = i + 1
}
foreach (f in fs) { wea_emit f() }
`)
	assert.Equal(t, []string{"1", "2", "3"}, out)
}

func TestSelfReferencingContainers(t *testing.T) {
	out := runOK(t, `
wea_unit a = [1, 2]
a[1] = a
wea_emit a
wea_emit "a = " + to_str(a)
wea_unit d = {"k": 1}
d.self = d
wea_emit d
wea_eman { wea_emit [a, a] } wea_fail { wea_emit "caught" }
`)
	assert.Equal(t, []string{
		"[1, [...]]",
		"a = [1, [...]]",
		`{"k": 1, "self": {...}}`,
		"[[1, [...]], [1, [...]]]",
	}, out)
}

func TestForeachReturnLeavesFunction(t *testing.T) {
	out := runOK(t, `
wea_flow first_big(l) {
	foreach (x in l) {
		wea_verify x > 10 { wea_return x }
	}
	wea_return bos
}
wea_emit first_big([1, 20, 30])
wea_emit first_big([1])
`)
	assert.Equal(t, []string{"20", "bos"}, out)
}

func TestSignalsEscapingTheirConstructFail(t *testing.T) {
	runFail(t, "break", ErrSignalEscape)
	runFail(t, "continue", ErrSignalEscape)
	runFail(t, "wea_return 1", ErrSignalEscape)
	msg := runFail(t, "wea_flow f() { break }\nf()", ErrSignalEscape)
	assert.Contains(t, msg, "'break'")
}

func TestCallDepthIsBounded(t *testing.T) {
	out, err := run(t, "wea_flow f(n) { wea_return f(n + 1) }\nf(0)", WithMaxCallDepth(50))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCallDepth)
	assert.Len(t, out, 1)

	out, err = run(t, `
wea_flow f(n) { wea_return f(n + 1) }
wea_eman { f(0) } wea_fail { wea_emit "caught" }
wea_flow g(n) { wea_verify n == 0 { wea_return 0 } wea_return g(n - 1) }
wea_emit g(40)
`, WithMaxCallDepth(50))
	require.NoError(t, err)
	assert.Equal(t, []string{"caught", "0"}, out)
}

func TestUndefinedNames(t *testing.T) {
	msg := runFail(t, "wea_emit y", ErrUndefined)
	assert.Contains(t, msg, "'y'")
	runFail(t, "y = 1", ErrUndefined)
	runFail(t, "nope(1)", ErrUndefined)
}

func TestIndexingFailures(t *testing.T) {
	runFail(t, "wea_emit [1][5]", ErrIndexOutOfRange)
	runFail(t, "wea_emit [1][-1]", ErrIndexOutOfRange)
	runFail(t, `wea_emit "ab"[2]`, ErrIndexOutOfRange)
	runFail(t, "wea_unit l = [1]\nl[3] = 1", ErrIndexOutOfRange)
	runFail(t, `wea_emit {"a": 1}["b"]`, ErrKeyNotFound)
	runFail(t, `wea_emit {"a": 1}.b`, ErrKeyNotFound)
	runFail(t, `wea_emit {"a": 1}[0]`, ErrTypeMismatch)
	runFail(t, `wea_emit {"a": 1}[0:1]`, ErrTypeMismatch)
	runFail(t, "wea_emit 5[0]", ErrTypeMismatch)
	runFail(t, `wea_emit [1]["a"]`, ErrTypeMismatch)
	runFail(t, "wea_unit n = 1\nn.x = 2", ErrTypeMismatch)
	runFail(t, "wea_emit {1: 2}", ErrTypeMismatch)
}

func TestIsKey(t *testing.T) {
	out := runOK(t, `
wea_unit d = {"a": 1}
wea_emit is_key(d, "a")
wea_emit is_key(d, "b")
`)
	assert.Equal(t, []string{"dogru", "yanlis"}, out)

	runFail(t, `wea_emit is_key([1], "a")`, ErrTypeMismatch)
	runFail(t, `wea_emit is_key({}, 1)`, ErrTypeMismatch)
}

func TestCallingNonFunctionFails(t *testing.T) {
	msg := runFail(t, "wea_unit x = 1\nx()", ErrNotCallable)
	assert.Contains(t, msg, "number")
}

func TestNativesCallBackIntoLambdas(t *testing.T) {
	out := runOK(t, "wea_emit apply(x => x * 10, 4)\nwea_emit apply((a) => { wea_return a + 1 }, 1)")
	assert.Equal(t, []string{"40", "2"}, out)
}

func TestNativeFailuresAreWrapped(t *testing.T) {
	msg := runFail(t, "explode()", ErrNative)
	assert.Contains(t, msg, "explode")
	_, err := run(t, "explode()")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// Failures raised by user code inside a callback keep their own line
	_, err = run(t, "wea_emit apply(x => x / 0,\n 1)")
	var rtErr *RuntimeError
	require.True(t, errors.As(err, &rtErr))
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.False(t, errors.Is(err, ErrNative))
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	out, err := run(t, "wea_emit 1\nwea_emit x\nwea_emit 2")
	require.Error(t, err)
	assert.Equal(t, []string{"1", "[RUNTIME ERROR] line 2: undefined variable: 'x'"}, out)
}

func TestSyntaxErrorsPreventExecution(t *testing.T) {
	out, err := run(t, "wea_emit 1\nwea_emit 2 +\nwea_unit = 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrSyntax)
	require.Len(t, out, 2)
	for _, msg := range out {
		assert.Contains(t, msg, "[SYNTAX ERROR] ")
	}
}

func TestRunPartialExecutesParsedStatements(t *testing.T) {
	out, err := run(t, "wea_emit 1\nwea_emit 2 +\nwea_emit 3", WithRunPartial(true))
	assert.ErrorIs(t, err, parser.ErrSyntax)
	require.Len(t, out, 3)
	assert.Contains(t, out[0], "[SYNTAX ERROR] line 3")
	assert.Equal(t, []string{"1", "3"}, out[1:])

	out, err = run(t, "wea_emit 2 +\nwea_emit 1 / 0", WithRunPartial(true))
	assert.ErrorIs(t, err, parser.ErrSyntax)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.Contains(t, out[len(out)-1], "[RUNTIME ERROR]")

	out, err = run(t, "wea_emit 1\nwea_emit @", WithRunPartial(true))
	require.Error(t, err)
	assert.Len(t, out, 1)
}

func TestScanErrorPreventsExecution(t *testing.T) {
	out, err := run(t, "wea_emit 1\nwea_emit @")
	require.Error(t, err)
	assert.Equal(t, []string{"[SCAN ERROR] line 2: unexpected character '@'"}, out)
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out []string
	r := NewRuntime(WithOutput(func(msg string) { out = append(out, msg) }), WithLogger(quietLogger))
	require.NoError(t, r.Run("wea_unit x = 41"))
	require.NoError(t, r.Run("wea_flow inc(n) { wea_return n + 1 }"))
	require.NoError(t, r.Run("wea_emit inc(x)"))
	assert.Equal(t, []string{"42"}, out)
}

func TestRuntimesAreIndependent(t *testing.T) {
	a := NewRuntime(WithOutput(func(string) {}), WithLogger(quietLogger))
	b := NewRuntime(WithOutput(func(string) {}), WithLogger(quietLogger))
	require.NoError(t, a.Run("wea_unit x = 1"))
	assert.ErrorIs(t, b.Run("wea_emit x"), ErrUndefined)
}
