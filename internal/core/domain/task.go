package domain

// TaskKind identifies the side effect a Task performs.
type TaskKind uint8

const (
	// KindConvert transcodes Source into Target through the external tool.
	KindConvert TaskKind = iota
	// KindCopy duplicates Source into Target byte for byte.
	KindCopy
	// KindDelete removes Target, recursively when it is a directory.
	KindDelete
)

// String returns the lowercase name of the kind.
func (k TaskKind) String() string {
	switch k {
	case KindConvert:
		return "convert"
	case KindCopy:
		return "copy"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Task is a single unit of filesystem work. Paths are absolute.
// Source is empty for delete tasks.
type Task struct {
	Kind   TaskKind
	Source string
	Target string
}

// NewConvert creates a task that transcodes src into dst.
func NewConvert(src, dst string) Task {
	return Task{Kind: KindConvert, Source: src, Target: dst}
}

// NewCopy creates a task that copies src to dst.
func NewCopy(src, dst string) Task {
	return Task{Kind: KindCopy, Source: src, Target: dst}
}

// NewDelete creates a task that removes path.
func NewDelete(path string) Task {
	return Task{Kind: KindDelete, Target: path}
}

// String renders the task for logs and dry-run output.
func (t Task) String() string {
	if t.Kind == KindDelete {
		return t.Kind.String() + " " + t.Target
	}
	return t.Kind.String() + " " + t.Source + " -> " + t.Target
}

// TaskResult is the outcome of executing a single task.
type TaskResult struct {
	Task Task
	Err  error
}

// OK reports whether the task succeeded.
func (r TaskResult) OK() bool {
	return r.Err == nil
}

// Plan groups the task lists computed for a run.
// Delete holds orphaned destination entries, Invalid holds outputs that failed validation.
type Plan struct {
	Delete  []Task
	Invalid []Task
	Convert []Task
	Copy    []Task
}

// Len returns the total number of planned tasks.
func (p Plan) Len() int {
	return len(p.Delete) + len(p.Invalid) + len(p.Convert) + len(p.Copy)
}
