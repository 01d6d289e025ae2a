package vm

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/nupy/program"
)

// ---------------------------------------------------------------------------
// Built-in functions usable on the right of an assignment
// ---------------------------------------------------------------------------

type builtinFunc func(interp *Interpreter, arg program.Element, line int) (Value, error)

var builtins = map[string]builtinFunc{
	"input": builtinInput,
	"int":   builtinInt,
	"float": builtinFloat,
}

// builtinInput writes the prompt, reads one line and returns it without the
// line terminator.
func builtinInput(interp *Interpreter, arg program.Element, line int) (Value, error) {
	prompt, err := EvalElement(arg, interp.Memory, line)
	if err != nil {
		return Value{}, err
	}
	if prompt.kind != KindStr {
		return Value{}, semanticf(line, "input() prompt must be a string")
	}

	text, err := interp.in.ReadLine(prompt.s)
	if errors.Is(err, io.EOF) {
		return Value{}, runtimef(line, "EOF when reading a line")
	}
	if err != nil {
		return Value{}, runtimef(line, "input(): %v", err)
	}
	return StrValue(strings.TrimRight(text, "\r\n")), nil
}

func builtinInt(interp *Interpreter, arg program.Element, line int) (Value, error) {
	s, err := stringArg(interp, "int", arg, line)
	if err != nil {
		return Value{}, err
	}
	i := atoi(s)
	if i == 0 && !startsWithZero(s) {
		return Value{}, semanticf(line, "invalid string for int()")
	}
	return IntValue(i), nil
}

func builtinFloat(interp *Interpreter, arg program.Element, line int) (Value, error) {
	s, err := stringArg(interp, "float", arg, line)
	if err != nil {
		return Value{}, err
	}
	d := atof(s)
	if d == 0 && !startsWithZero(s) {
		return Value{}, semanticf(line, "invalid string for float()")
	}
	return RealValue(d), nil
}

// stringArg resolves the argument of int() or float(), which must be a
// variable holding a string.
func stringArg(interp *Interpreter, fn string, arg program.Element, line int) (string, error) {
	if arg.Kind != program.Identifier {
		return "", semanticf(line, "%s() argument must be a string variable", fn)
	}
	v, ok := interp.Memory.Read(arg.Value)
	if !ok {
		return "", undefined(line, arg.Value)
	}
	if v.kind != KindStr {
		return "", semanticf(line, "%s() argument must be a string", fn)
	}
	return v.s, nil
}

func startsWithZero(s string) bool {
	return len(s) > 0 && s[0] == '0'
}

// ---------------------------------------------------------------------------
// Prefix number parsing
//
// atoi and atof read the longest numeric prefix after optional leading
// white space and sign, and yield zero when there is none. Trailing text is
// ignored, so "12abc" converts to 12.
// ---------------------------------------------------------------------------

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func skipSpace(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func atoi(s string) int64 {
	i := skipSpace(s)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return 0
	}
	// Out-of-range input saturates.
	n, _ := strconv.ParseInt(s[start:i], 10, 64)
	return n
}

func atof(s string) float64 {
	i := skipSpace(s)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	rest := strings.ToLower(s[i:])
	for _, word := range []string{"infinity", "inf", "nan"} {
		if strings.HasPrefix(rest, word) {
			d, _ := strconv.ParseFloat(s[start:i+len(word)], 64)
			return d
		}
	}

	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	d, _ := strconv.ParseFloat(s[start:i], 64)
	return d
}
