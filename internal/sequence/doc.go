/*
Package sequence is a DAG task-scheduling engine: it accepts a set of task
descriptors that form a directed acyclic graph of data dependencies, and
executes them with correct topological ordering, bounded concurrency,
per-task retry, and configurable failure handling.

Its core components are:
  - Graph: the validated, acyclic dependency structure built from task
    descriptors.
  - Planner: assigns a priority-respecting run order and a dependency-depth
    level to every node.
  - Semaphore: a fair, FIFO counting gate bounding in-flight task actions.
  - Sequence: the orchestrator that walks the plan level by level, gathers
    parent artifacts, and runs each task under the semaphore.

Basic usage:

	seq := sequence.New(sequence.Config{MaxConcurrency: 4})
	seq.AddTask(sequence.TaskDescriptor{
		ID:     "fetch",
		Action: func(ctx context.Context, in []any) (any, error) { return "data", nil },
	})
	seq.AddTask(sequence.TaskDescriptor{
		ID:      "process",
		Parents: []string{"fetch"},
		Action: func(ctx context.Context, in []any) (any, error) {
			return in[0].(string) + "-processed", nil
		},
	})
	if err := seq.Run(context.Background()); err != nil {
		// handle SequenceAbortedError or a build-time error
	}
	artifact, _ := seq.ArtifactOf("process")
*/
package sequence
