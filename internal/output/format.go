// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

// doneMark renders the completion state of a task.
func doneMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// FormatTask formats a task line inside a list section.
// Format: "    {N:>4}  [ ] {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "    %4d  %s %s\n", num, doneMark(task.Done), normalizeTitle(task.Title))
}

// FormatTaskWithLetter formats a task line with its full reference.
// Format: "{REF:>5}  [ ] {TITLE}\n" where REF is letter plus number, e.g. "a3".
func FormatTaskWithLetter(w io.Writer, letter rune, num int, task service.Task) {
	ref := fmt.Sprintf("%c%d", letter, num)
	fmt.Fprintf(w, "%5s  %s %s\n", ref, doneMark(task.Done), normalizeTitle(task.Title))
}

// FormatListHeader formats a list section header. A zero letter omits the prefix.
func FormatListHeader(w io.Writer, letter rune, name string) {
	display := normalizeListName(name)
	if letter != 0 {
		display = fmt.Sprintf("%c) %s", letter, display)
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, display)
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list line for the lists command.
// Format: "{LETTER}  {NAME}\n"
func FormatListName(w io.Writer, letter rune, list service.TaskList) {
	fmt.Fprintf(w, "%c  %s\n", letter, normalizeListName(list.Name))
}

// FormatTaskDetail prints every field of a task, one per line.
// Unset optional fields are skipped.
func FormatTaskDetail(w io.Writer, list service.TaskList, task service.Task) {
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "list:        %s\n", normalizeListName(list.Name))
	fmt.Fprintf(w, "done:        %s\n", yesNo(task.Done))
	fmt.Fprintf(w, "order:       %d\n", task.Order)
	if task.DueDate != nil && *task.DueDate != "" {
		fmt.Fprintf(w, "due:         %s\n", *task.DueDate)
	}
	if task.Owner != nil && *task.Owner != "" {
		fmt.Fprintf(w, "owner:       %s\n", *task.Owner)
	}
	if task.CreatedAt != "" {
		fmt.Fprintf(w, "created:     %s\n", task.CreatedAt)
	}
	if task.Description != nil && strings.TrimSpace(*task.Description) != "" {
		fmt.Fprintf(w, "description: %s\n", normalizeTitle(*task.Description))
	}
	for _, item := range task.Checklist {
		fmt.Fprintf(w, "  - %s\n", normalizeTitle(item))
	}
	fmt.Fprintf(w, "id:          %s\n", task.ID)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListName normalizes a list name for display.
// Empty or whitespace-only names become "(untitled)".
func normalizeListName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
