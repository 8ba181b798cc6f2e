package cli

import (
	"context"
	"fmt"
	"os"
)

// ListClassrooms prints the classrooms owned by the logged-in user.
func (a *App) ListClassrooms(ctx context.Context) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}

	classrooms, err := a.classrooms.ListClassrooms(ctx, actorID)
	if err != nil {
		a.logger.Error(ctx, "listing classrooms failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	if len(classrooms) == 0 {
		printlnFn("No classrooms yet. Use 'addclass' to create one.")
		return nil
	}
	for _, c := range classrooms {
		printlnFn(fmt.Sprintf("%s  %s", c.ID, c.Name))
	}
	return nil
}

// AddClassroom prompts for a name and creates a classroom owned by the
// logged-in user.
func (a *App) AddClassroom(ctx context.Context) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}

	name, err := getSimpleText(a.reader, "Enter classroom name", os.Stdout)
	if err != nil {
		return err
	}

	classroom, err := a.classrooms.CreateClassroom(ctx, actorID, name)
	if err != nil {
		a.logger.Error(ctx, "creating classroom failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Created classroom %s (%s)", classroom.Name, classroom.ID))
	return nil
}

// UseClassroom selects the classroom the following commands operate on.
// Switching classrooms resets the directory cursor.
func (a *App) UseClassroom(ctx context.Context, classroomID string) error {
	if _, err := a.actorID(ctx); err != nil {
		printlnFn("Please log in first.")
		return err
	}

	classroom, err := a.classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		a.logger.Error(ctx, "selecting classroom failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	a.classroomID = classroom.ID
	a.classroomName = classroom.Name
	a.dirPage = 1
	a.dirSearch = ""

	printlnFn(fmt.Sprintf("Working in classroom %s", classroom.Name))
	return nil
}
