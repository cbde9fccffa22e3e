package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FunctionName identifies a reference function.
type FunctionName string

const (
	// NoFunction is an undefined function
	NoFunction FunctionName = ""
	// FuncA is the linear reference function 2x
	FuncA FunctionName = "A"
	// FuncB is the degree 10 reference function 2x - 10x^5 + 15x^10
	FuncB FunctionName = "B"
)

// Function is a fixed ground-truth mapping used to synthesize observations.
type Function struct {
	Name FunctionName
	// Degree is the polynomial degree of the mapping.
	Degree int
	f      func(x float64) float64
}

// Eval evaluates the function at x.
func (f Function) Eval(x float64) float64 {
	return f.f(x)
}

// Map evaluates the function for each of the given values.
func (f Function) Map(xx []float64) []float64 {
	yy := make([]float64, len(xx))
	for i, x := range xx {
		yy[i] = f.f(x)
	}
	return yy
}

func (f Function) String() string {
	return string(f.Name)
}

// Functions contains the known reference functions.
var Functions = map[FunctionName]Function{
	FuncA: {
		Name:   FuncA,
		Degree: 1,
		f: func(x float64) float64 {
			return 2 * x
		},
	},
	FuncB: {
		Name:   FuncB,
		Degree: 10,
		f: func(x float64) float64 {
			return 2*x - 10*math.Pow(x, 5) + 15*math.Pow(x, 10)
		},
	},
}

// KnownFunctions returns the names of all reference functions in lexical order.
func KnownFunctions() []string {
	ff := make([]string, 0, len(Functions))
	for f := range Functions {
		ff = append(ff, string(f))
	}
	sort.Strings(ff)
	return ff
}

// LookupFunction resolves a reference function by name.
// Names are case-insensitive and may carry the 'func' prefix e.g. 'funcA'.
func LookupFunction(name string) (Function, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "FUNC")
	if f, ok := Functions[FunctionName(n)]; ok {
		return f, nil
	}
	return Function{}, fmt.Errorf("'%s' not in %v: %w", name, KnownFunctions(), ErrUnknownFunction)
}
