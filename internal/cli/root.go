package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	}
	if a.classroomName != "" {
		s = s + " / " + a.classroomName
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the read-eval-print loop. It reads a line, parses the first
// token as the command, and dispatches to methods on the App. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Not logged in:
//   - help           — show available commands
//   - register       — create an account
//   - login          — authenticate
//   - exit | quit    — leave the program
//
// Logged in:
//   - classrooms     — list owned classrooms
//   - addclass       — create a classroom
//   - use <id>       — select the classroom to work in
//   - students       — browse the directory (next/prev pages, search)
//   - addstudent     — add a student to the classroom
//   - deposit        — record a deposit
//   - withdraw       — record a withdrawal
//   - remove <id>    — delete a transaction
//   - balance        — classroom or per-student balance
//   - history        — a treasurer's transactions, newest first
//   - export         — upload a CSV statement, print a download link
//   - logout         — drop the session
//
// Command handlers report their own errors; the loop ignores the returned
// error to stay resilient.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to classfunds (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("cf %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: classrooms, addclass, use, students, addstudent, deposit, withdraw, remove, balance, history, export, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "classrooms":
			_ = a.ListClassrooms(ctx)
		case "addclass":
			_ = a.AddClassroom(ctx)
		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <classroom-id>")
				continue
			}
			_ = a.UseClassroom(ctx, args[0])

		case "students":
			_ = a.Students(ctx, args)
		case "addstudent":
			_ = a.AddStudent(ctx)

		case "deposit":
			_ = a.Deposit(ctx)
		case "withdraw":
			_ = a.Withdraw(ctx)
		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <transaction-id>")
				continue
			}
			_ = a.Remove(ctx, args[0])
		case "balance":
			_ = a.Balance(ctx, args)
		case "history":
			_ = a.History(ctx, args)
		case "export":
			_ = a.Export(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
