package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error          { return f.record("whoami") }
func (f *fakeExec) Patients(ctx context.Context) error        { return f.record("patients") }
func (f *fakeExec) AddPatient(ctx context.Context) error      { return f.record("addpatient") }
func (f *fakeExec) Practitioners(ctx context.Context) error   { return f.record("practitioners") }
func (f *fakeExec) AddPractitioner(ctx context.Context) error { return f.record("addpractitioner") }
func (f *fakeExec) AddEncounter(ctx context.Context) error    { return f.record("addencounter") }
func (f *fakeExec) DeletePatient(ctx context.Context, id string) error {
	return f.record("delpatient " + id)
}
func (f *fakeExec) Encounters(ctx context.Context, practitionerID string) error {
	return f.record(strings.TrimSpace("encounters " + practitionerID))
}
func (f *fakeExec) SetStatus(ctx context.Context, id, status string) error {
	return f.record("status " + id + " " + status)
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"whoami",
		"patients",
		"addpatient",
		"delpatient 7",
		"practitioners",
		"addpractitioner",
		"encounters",
		"encounters pr-1",
		"addencounter",
		"status e1 arrived",
		"",
		"logout",
		"exit",
		"patients",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login", "whoami", "patients", "addpatient", "delpatient 7",
		"practitioners", "addpractitioner", "encounters", "encounters pr-1",
		"addencounter", "status e1 arrived", "logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("delpatient\nstatus e1\nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: delpatient <id>")
	assert.Contains(t, *lines, "Usage: status <encounterID> <status>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	require.Len(t, *lines, 3)
	assert.Equal(t, "Available commands: register, login, exit", (*lines)[1])

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	assert.Contains(t, (*lines)[1], "addencounter")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, err: client.ErrSessionExpired}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("patients\npractitioners\n")))

	assert.Equal(t, []string{"patients", "practitioners"}, exec.calls)
	assert.Contains(t, *lines, "Session expired, please log in again")
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("login\n")))
	assert.Empty(t, exec.calls)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{client.ErrSessionExpired, "Session expired, please log in again"},
		{fmt.Errorf("wrap: %w", client.ErrSessionExpired), "Session expired, please log in again"},
		{&client.AuthenticationError{Message: "Invalid credentials"}, "Invalid credentials"},
		{&client.RequestError{Status: 404, Message: "Patient not found"}, "Error: Patient not found"},
		{fmt.Errorf("%w: bad date", common.ErrorValidation), "Invalid input: validation error: bad date"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeError(tt.err))
	}
}
