package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/classfunds/internal/services"
)

// Students browses the classroom directory. Without arguments it shows the
// current page. Subcommands move the cursor:
//
//	students next            — next page
//	students prev            — previous page
//	students page <n>        — jump to page n
//	students search <term>   — filter by name, back on page 1
//	students search          — clear the filter, back on page 1
//
// Changing the filter always resets the cursor to the first page.
func (a *App) Students(ctx context.Context, args []string) error {
	if _, err := a.actorID(ctx); err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	if len(args) > 0 {
		switch args[0] {
		case "next":
			a.dirPage++
		case "prev":
			if a.dirPage > 1 {
				a.dirPage--
			}
		case "page":
			if len(args) < 2 {
				printlnFn("Usage: students page <n>")
				return nil
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				printlnFn("Page must be a positive number")
				return nil
			}
			a.dirPage = n
		case "search":
			a.dirSearch = strings.Join(args[1:], " ")
			a.dirPage = 1
		default:
			printlnFn("Usage: students [next|prev|page <n>|search <term>]")
			return nil
		}
	}

	page, err := a.directory.ListStudents(ctx, a.classroomID, services.ListStudentsParams{
		Page:   a.dirPage,
		Search: a.dirSearch,
	})
	if err != nil {
		a.logger.Error(ctx, "listing students failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	if page.Total == 0 {
		if a.dirSearch != "" {
			printlnFn(fmt.Sprintf("No students match %q.", a.dirSearch))
		} else {
			printlnFn("No students yet. Use 'addstudent' to add one.")
		}
		return nil
	}

	for _, entry := range page.Students {
		printlnFn(fmt.Sprintf("%s  %-20s %10s", entry.Student.ID, entry.Student.Name, entry.Balance.StringFixed(2)))
	}
	printlnFn(fmt.Sprintf("Page %d, %d student(s) total", page.Page, page.Total))
	return nil
}

// AddStudent prompts for a name and adds a student to the selected classroom.
func (a *App) AddStudent(ctx context.Context) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter student name", os.Stdout)
	if err != nil {
		return err
	}

	student, err := a.directory.AddStudent(ctx, actorID, a.classroomID, name)
	if err != nil {
		a.logger.Error(ctx, "adding student failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Added student %s (%s)", student.Name, student.ID))
	return nil
}
