// Package hclconfig is a concrete config.Loader that reads a sequence's
// task-graph shape and policy from HCL files: a "sequence" block for
// run-wide settings, and any number of "task" blocks for individual
// descriptors. It never carries action code, only the
// id/depends_on/retry/priority/on_error/params an action is bound against.
package hclconfig
