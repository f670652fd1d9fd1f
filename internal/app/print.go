package app

import (
	"fmt"
	"io"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/ui/output"
	"go.trai.ch/mirror/internal/ui/style"
)

// printPlan writes one line per task, grouped in execution order.
func printPlan(w io.Writer, plan domain.Plan) error {
	out := output.New(w)

	groups := []struct {
		note  string
		tasks []domain.Task
	}{
		{"", plan.Delete},
		{"invalid", plan.Invalid},
		{"", plan.Convert},
		{"", plan.Copy},
	}

	for _, g := range groups {
		for _, task := range g.tasks {
			kind := task.Kind.String()
			label := out.String(style.KindIcon(kind) + " " + kind).
				Foreground(out.Color(string(style.KindColor(kind))))

			line := label.String() + " " + taskPaths(task)
			if g.note != "" {
				line += " " + out.String("("+g.note+")").Foreground(out.Color(string(style.Yellow))).String()
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}

	summary := "nothing to do"
	if n := plan.Len(); n > 0 {
		summary = fmt.Sprintf("%d tasks planned", n)
	}
	_, err := fmt.Fprintln(out, out.String(summary).Foreground(out.Color(string(style.Slate))).String())
	return err
}

func taskPaths(task domain.Task) string {
	if task.Kind == domain.KindDelete {
		return task.Target
	}
	return task.Source + " " + style.Arrow + " " + task.Target
}
