// Package actions provides a small registry of example sequence.ActionFunc
// factories. A factory closes over a task's already-evaluated cty.Value
// params directly, with no registry/reflection indirection in between.
package actions
