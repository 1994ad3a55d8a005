package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/llmadapt/providers/tool"
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Input is the tool's argument object.
type Input struct {
	A  float64 `json:"a" jsonschema:"description=Left operand,required"`
	B  float64 `json:"b" jsonschema:"description=Right operand,required"`
	Op string  `json:"op" jsonschema:"description=Operation to apply,enum=add,enum=sub,enum=mul,enum=div,required"`
}

// Output carries the result of a calculation.
type Output struct {
	Result float64 `json:"result"`
}

// NewCalculatorTool registers Calc under the name "calculator".
func NewCalculatorTool() (*tool.Tool[Input, Output], error) {
	return tool.NewTool[Input, Output](
		"calculator",
		Calc,
		tool.WithDescription("Applies add, sub, mul or div to two numbers."),
	)
}

// Calc accepts the operation names and their symbols (+ - * /).
func Calc(_ context.Context, in Input) (Output, error) {
	switch in.Op {
	case "add", "+":
		return Output{Result: in.A + in.B}, nil
	case "sub", "-":
		return Output{Result: in.A - in.B}, nil
	case "mul", "*":
		return Output{Result: in.A * in.B}, nil
	case "div", "/":
		if in.B == 0 {
			return Output{}, ErrDivisionByZero
		}
		return Output{Result: in.A / in.B}, nil
	default:
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownOperation, in.Op)
	}
}
