package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todoctl/internal/service"
)

// maxLetters is the number of lists that can be addressed by letter.
const maxLetters = 26

var (
	// ErrListNotFound is returned when no list matches a name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned when several lists share a name.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrNoLists is returned when a task command runs before any list exists.
	ErrNoLists = errors.New("no lists (run: todoctl createlist <name>)")

	// ErrListLetterNotFound is returned when no list carries a letter.
	ErrListLetterNotFound = errors.New("list letter not found")

	// ErrTaskOutOfRange is returned when a task number exceeds the list.
	ErrTaskOutOfRange = errors.New("task number out of range")
)

// letteredList is a list with the letter it is addressed by.
type letteredList struct {
	Letter rune
	List   service.TaskList
}

// sortedLists fetches every list and sorts it by order.
func sortedLists(ctx context.Context, svc service.Service) ([]service.TaskList, error) {
	lists, err := svc.Lists(ctx)
	if err != nil {
		return nil, err
	}
	service.SortLists(lists)
	return lists, nil
}

// letterLists assigns letters a-z to lists in display order.
// Lists beyond the 26th get no letter and are dropped.
func letterLists(lists []service.TaskList) []letteredList {
	out := make([]letteredList, 0, len(lists))
	for i, l := range lists {
		if i >= maxLetters {
			break
		}
		out = append(out, letteredList{Letter: rune('a' + i), List: l})
	}
	return out
}

// findListByName matches a list name case-insensitively, ignoring
// surrounding whitespace.
func findListByName(lists []service.TaskList, name string) (service.TaskList, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	var matches []service.TaskList
	for _, l := range lists {
		if strings.ToLower(strings.TrimSpace(l.Name)) == want {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("%w: %s", ErrListNotFound, strings.TrimSpace(name))
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", ErrAmbiguousList, strings.TrimSpace(name))
	}
}

// resolveListByName fetches lists and finds one by name.
func resolveListByName(ctx context.Context, svc service.Service, name string) (service.TaskList, error) {
	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return service.TaskList{}, err
	}
	return findListByName(lists, name)
}

// ResolveListByLetter resolves a list letter to a TaskList.
func ResolveListByLetter(ctx context.Context, svc service.Service, letter rune) (service.TaskList, error) {
	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return service.TaskList{}, err
	}
	for _, ll := range letterLists(lists) {
		if ll.Letter == letter {
			return ll.List, nil
		}
	}
	return service.TaskList{}, fmt.Errorf("%w: %c", ErrListLetterNotFound, letter)
}

// firstList returns the list with the lowest order.
func firstList(ctx context.Context, svc service.Service) (service.TaskList, error) {
	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return service.TaskList{}, err
	}
	if len(lists) == 0 {
		return service.TaskList{}, ErrNoLists
	}
	return lists[0], nil
}

// sortedTasks fetches the tasks of a list sorted by order.
func sortedTasks(ctx context.Context, svc service.Service, listID string) ([]service.Task, error) {
	tasks, err := svc.TasksOfList(ctx, listID)
	if err != nil {
		return nil, err
	}
	service.SortTasks(tasks)
	return tasks, nil
}

// findTaskByNumber finds a task by its 1-based number in the list.
func findTaskByNumber(ctx context.Context, svc service.Service, listID string, num int) (service.Task, error) {
	tasks, err := sortedTasks(ctx, svc, listID)
	if err != nil {
		return service.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, num)
	}
	return tasks[num-1], nil
}

// resolveTask turns the positional args of a task command into the list
// and task they reference.
func resolveTask(ctx context.Context, svc service.Service, args []string) (service.TaskList, service.Task, error) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return service.TaskList{}, service.Task{}, inputError{err}
	}
	if ref.TaskNum < 1 {
		return service.TaskList{}, service.Task{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.TaskNum)
	}

	var list service.TaskList
	if ref.HasLetter {
		list, err = ResolveListByLetter(ctx, svc, ref.Letter)
	} else {
		list, err = firstList(ctx, svc)
	}
	if err != nil {
		return service.TaskList{}, service.Task{}, err
	}

	task, err := findTaskByNumber(ctx, svc, list.ID, ref.TaskNum)
	if err != nil {
		return service.TaskList{}, service.Task{}, err
	}
	return list, task, nil
}

// letterOf returns the letter of the list with id, or 0 if it has none.
func letterOf(lists []service.TaskList, id string) rune {
	for _, ll := range letterLists(lists) {
		if ll.List.ID == id {
			return ll.Letter
		}
	}
	return 0
}
