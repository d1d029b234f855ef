package action

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Evaluate computes an arithmetic expression over + - * / ^ % and
// parentheses using the shunting-yard algorithm. Only numeric literals and
// those operators are accepted; anything else is an error, so no request
// text ever reaches an interpreter.
func Evaluate(expression string) (float64, error) {
	tokens, err := tokenizeExpression(expression)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, errors.New("empty expression")
	}
	rpn, err := toRPN(tokens)
	if err != nil {
		return 0, err
	}
	return evalRPN(rpn)
}

type exprToken struct {
	number   float64
	operator byte // 0 for numbers
}

func tokenizeExpression(expression string) ([]exprToken, error) {
	var tokens []exprToken
	s := strings.TrimSpace(expression)
	i := 0
	expectOperand := true

	for i < len(s) {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++

		case ch >= '0' && ch <= '9' || ch == '.':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				j++
			}
			value, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", s[i:j])
			}
			tokens = append(tokens, exprToken{number: value})
			i = j
			expectOperand = false

		case ch == '-' && expectOperand:
			// Unary minus: fold into the following number.
			j := i + 1
			for j < len(s) && (s[j] == ' ') {
				j++
			}
			start := j
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				j++
			}
			if start == j {
				return nil, errors.New("dangling minus")
			}
			value, err := strconv.ParseFloat(s[start:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", s[start:j])
			}
			tokens = append(tokens, exprToken{number: -value})
			i = j
			expectOperand = false

		case strings.IndexByte("+-*/^%()", ch) >= 0:
			tokens = append(tokens, exprToken{operator: ch})
			i++
			expectOperand = ch != ')'

		case unicode.IsLetter(rune(ch)):
			return nil, fmt.Errorf("unexpected symbol %q", string(ch))

		default:
			return nil, fmt.Errorf("unexpected symbol %q", string(ch))
		}
	}
	return tokens, nil
}

var precedence = map[byte]int{
	'+': 1, '-': 1,
	'*': 2, '/': 2, '%': 2,
	'^': 3,
}

func toRPN(tokens []exprToken) ([]exprToken, error) {
	var output, stack []exprToken
	for _, tok := range tokens {
		switch {
		case tok.operator == 0:
			output = append(output, tok)

		case tok.operator == '(':
			stack = append(stack, tok)

		case tok.operator == ')':
			for len(stack) > 0 && stack[len(stack)-1].operator != '(' {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, errors.New("unbalanced parentheses")
			}
			stack = stack[:len(stack)-1]

		default:
			prec := precedence[tok.operator]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.operator == '(' {
					break
				}
				topPrec := precedence[top.operator]
				// ^ is right-associative; the rest are left-associative.
				if topPrec < prec || (topPrec == prec && tok.operator == '^') {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.operator == '(' {
			return nil, errors.New("unbalanced parentheses")
		}
		output = append(output, top)
		stack = stack[:len(stack)-1]
	}
	return output, nil
}

func evalRPN(rpn []exprToken) (float64, error) {
	var stack []float64
	for _, tok := range rpn {
		if tok.operator == 0 {
			stack = append(stack, tok.number)
			continue
		}
		if len(stack) < 2 {
			return 0, errors.New("malformed expression")
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var value float64
		switch tok.operator {
		case '+':
			value = a + b
		case '-':
			value = a - b
		case '*':
			value = a * b
		case '/':
			if b == 0 {
				return 0, errors.New("division by zero")
			}
			value = a / b
		case '%':
			if b == 0 {
				return 0, errors.New("division by zero")
			}
			value = math.Mod(a, b)
		case '^':
			value = math.Pow(a, b)
		default:
			return 0, fmt.Errorf("unknown operator %q", string(tok.operator))
		}
		stack = append(stack, value)
	}
	if len(stack) != 1 {
		return 0, errors.New("malformed expression")
	}
	return stack[0], nil
}

// FormatNumber renders a result without trailing decimal noise.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
