package output

import (
	"bytes"
	"testing"

	"todoctl/internal/service"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 3, service.Task{Title: "Buy\nmilk"})
	FormatTask(&buf, 12, service.Task{Title: "  ", Done: true})

	expected := "       3  [ ] Buy milk\n      12  [x] (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskWithLetter(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskWithLetter(&buf, 'b', 10, service.Task{Title: "Call Sam"})

	expected := "  b10  [ ] Call Sam\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatListHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatListHeader(&buf, 'a', "Groceries")
	FormatListHeader(&buf, 0, "")

	expected := "------------\na) Groceries\n------------\n------------\n(untitled)\n------------\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	task := service.Task{
		ID:        "t1",
		Title:     "Renew passport",
		Done:      false,
		Order:     2,
		DueDate:   service.StringPtr("2024-09-01"),
		Owner:     service.StringPtr("sam"),
		CreatedAt: "2024-01-01T00:00:00Z",
		Checklist: []string{"photos", "form"},
	}
	FormatTaskDetail(&buf, service.TaskList{Name: "Errands"}, task)

	expected := "title:       Renew passport\n" +
		"list:        Errands\n" +
		"done:        no\n" +
		"order:       2\n" +
		"due:         2024-09-01\n" +
		"owner:       sam\n" +
		"created:     2024-01-01T00:00:00Z\n" +
		"  - photos\n" +
		"  - form\n" +
		"id:          t1\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
