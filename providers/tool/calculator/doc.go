// Package calculator is a small arithmetic tool, handy for exercising the
// tool-calling path of an adapter end to end.
package calculator
