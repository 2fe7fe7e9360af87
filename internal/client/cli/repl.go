package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Patients(ctx context.Context) error
	AddPatient(ctx context.Context) error
	DeletePatient(ctx context.Context, id string) error
	Practitioners(ctx context.Context) error
	AddPractitioner(ctx context.Context) error
	Encounters(ctx context.Context, practitionerID string) error
	AddEncounter(ctx context.Context) error
	SetStatus(ctx context.Context, id, status string) error
}

// runREPL starts a simple read-eval-print loop for the desk client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help, whoami, logout,
//	  patients, addpatient, delpatient <id>,
//	  practitioners, addpractitioner,
//	  encounters [practitionerID], addencounter,
//	  status <encounterID> <status>,
//	  exit | quit
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("desk (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, logout, patients, addpatient, delpatient <id>, " +
					"practitioners, addpractitioner, encounters [practitionerID], addencounter, " +
					"status <encounterID> <status>, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "patients":
			err = a.Patients(ctx)

		case "addpatient":
			err = a.AddPatient(ctx)

		case "delpatient":
			if len(args) != 1 {
				printlnFn("Usage: delpatient <id>")
				continue
			}
			err = a.DeletePatient(ctx, args[0])

		case "practitioners":
			err = a.Practitioners(ctx)

		case "addpractitioner":
			err = a.AddPractitioner(ctx)

		case "encounters":
			practitionerID := ""
			if len(args) > 0 {
				practitionerID = args[0]
			}
			err = a.Encounters(ctx, practitionerID)

		case "addencounter":
			err = a.AddEncounter(ctx)

		case "status":
			if len(args) != 2 {
				printlnFn("Usage: status <encounterID> <status>")
				continue
			}
			err = a.SetStatus(ctx, args[0], args[1])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describeError(err))
		}
	}
}
