// Package cli implements the dashboard's command-line subcommands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mmynk/peopleevents/internal/calculator"
	"github.com/mmynk/peopleevents/internal/client"
	"github.com/mmynk/peopleevents/internal/models"
)

// ErrUsage marks a malformed command line. The message has already been
// written to the error stream.
var ErrUsage = errors.New("usage")

// App runs subcommands against a Dashboard.
type App struct {
	Dashboard *client.Dashboard
	Out       io.Writer
	Err       io.Writer
	// In answers the username and confirmation prompts.
	In *bufio.Reader
	// ReadPassword reads a password without echo. Defaults to the terminal.
	ReadPassword func(prompt string) (string, error)
	// Today is the reference date for ages. Defaults to models.Today.
	Today func() models.Date
}

// New returns an App wired to the process's standard streams.
func New(d *client.Dashboard) *App {
	return &App{
		Dashboard: d,
		Out:       os.Stdout,
		Err:       os.Stderr,
		In:        bufio.NewReader(os.Stdin),
		ReadPassword: func(prompt string) (string, error) {
			return ReadPassword(prompt, os.Stderr)
		},
		Today: models.Today,
	}
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// Run dispatches a single subcommand.
func (a *App) Run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.CmdLogin(ctx, args)
	case "logout":
		return a.CmdLogout(ctx)
	case "whoami":
		return a.CmdWhoAmI(ctx)
	case "people":
		return a.CmdPeople(ctx, args)
	case "events":
		return a.CmdEvents(ctx, args)
	case "add-person":
		return a.CmdAddPerson(ctx, args)
	case "edit-person":
		return a.CmdEditPerson(ctx, args)
	case "delete-person":
		return a.CmdDeletePerson(ctx, args)
	case "add-event":
		return a.CmdAddEvent(ctx, args)
	case "edit-event":
		return a.CmdEditEvent(ctx, args)
	case "delete-event":
		return a.CmdDeleteEvent(ctx, args)
	default:
		fmt.Fprintf(a.Err, "dashboard: unknown command %q\n", cmd)
		return ErrUsage
	}
}

// CmdLogin prompts for credentials and stores the session.
func (a *App) CmdLogin(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	username := fs.String("user", "", "username (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	if *username == "" {
		var err error
		if *username, err = a.prompt("username: "); err != nil {
			return err
		}
	}
	password, err := a.ReadPassword("password: ")
	if err != nil {
		return err
	}

	session, err := a.Dashboard.Login(ctx, *username, password)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite(fmt.Sprintf("logged in as %s (%s)", session.Username, session.Role), err)
}

// CmdLogout forgets the stored session.
func (a *App) CmdLogout(ctx context.Context) error {
	if err := a.Dashboard.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "logged out")
	return nil
}

// CmdWhoAmI prints the session the server sees.
func (a *App) CmdWhoAmI(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}
	session, err := a.Dashboard.WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "%s (%s)\n", session.Username, session.Role)
	return nil
}

// CmdPeople lists people, newest first.
func (a *App) CmdPeople(ctx context.Context, args []string) error {
	fs := a.flagSet("people")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	people := a.Dashboard.People()
	if *asJSON {
		return a.printJSON(people)
	}
	if len(people) == 0 {
		fmt.Fprintln(a.Out, "no people")
		return nil
	}
	today := a.Today()
	for i, p := range people {
		if i > 0 {
			fmt.Fprintln(a.Out)
		}
		a.printPerson(p, today)
	}
	return nil
}

// CmdEvents lists events, earliest first.
func (a *App) CmdEvents(ctx context.Context, args []string) error {
	fs := a.flagSet("events")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	events := a.Dashboard.Events()
	if *asJSON {
		return a.printJSON(events)
	}
	if len(events) == 0 {
		fmt.Fprintln(a.Out, "no events")
		return nil
	}
	for _, e := range events {
		fmt.Fprintf(a.Out, "  %-36s  %-13s  %s\n", e.ID, calculator.FormatDate(e.Date), e.Title)
		if e.Location != "" {
			fmt.Fprintf(a.Out, "  %-36s  %-13s  at %s\n", "", "", e.Location)
		}
	}
	return nil
}

// CmdAddPerson creates a person from flags.
func (a *App) CmdAddPerson(ctx context.Context, args []string) error {
	form := newPersonForm(a.flagSet("add-person"))
	if err := form.fs.Parse(args); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	var p models.Person
	if err := form.apply(&p); err != nil {
		return err
	}
	created, err := a.Dashboard.CreatePerson(ctx, p)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite(fmt.Sprintf("added %s %s", created.ID, created.Name), err)
}

// CmdEditPerson updates the flagged fields of an existing person.
func (a *App) CmdEditPerson(ctx context.Context, args []string) error {
	id, rest, err := a.idArg("edit-person", args)
	if err != nil {
		return err
	}
	form := newPersonForm(a.flagSet("edit-person"))
	if err := form.fs.Parse(rest); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	current := a.findPerson(id)
	if current == nil {
		return fmt.Errorf("%w: person %s", client.ErrNotFound, id)
	}
	p := *current
	if err := form.apply(&p); err != nil {
		return err
	}
	err = a.Dashboard.UpdatePerson(ctx, p)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite("updated "+id, err)
}

// CmdDeletePerson removes a person after confirmation.
func (a *App) CmdDeletePerson(ctx context.Context, args []string) error {
	id, rest, err := a.idArg("delete-person", args)
	if err != nil {
		return err
	}
	fs := a.flagSet("delete-person")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(rest); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	label := id
	if p := a.findPerson(id); p != nil {
		label = p.Name
	}
	if ok, err := a.confirm(*yes, label); err != nil || !ok {
		return err
	}
	err = a.Dashboard.DeletePerson(ctx, id)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite("deleted "+id, err)
}

// CmdAddEvent creates an event from flags.
func (a *App) CmdAddEvent(ctx context.Context, args []string) error {
	form := newEventForm(a.flagSet("add-event"))
	if err := form.fs.Parse(args); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	var e models.Event
	if err := form.apply(&e); err != nil {
		return err
	}
	created, err := a.Dashboard.CreateEvent(ctx, e)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite(fmt.Sprintf("added %s %s", created.ID, created.Title), err)
}

// CmdEditEvent updates the flagged fields of an existing event.
func (a *App) CmdEditEvent(ctx context.Context, args []string) error {
	id, rest, err := a.idArg("edit-event", args)
	if err != nil {
		return err
	}
	form := newEventForm(a.flagSet("edit-event"))
	if err := form.fs.Parse(rest); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	current := a.findEvent(id)
	if current == nil {
		return fmt.Errorf("%w: event %s", client.ErrNotFound, id)
	}
	e := *current
	if err := form.apply(&e); err != nil {
		return err
	}
	err = a.Dashboard.UpdateEvent(ctx, e)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite("updated "+id, err)
}

// CmdDeleteEvent removes an event after confirmation.
func (a *App) CmdDeleteEvent(ctx context.Context, args []string) error {
	id, rest, err := a.idArg("delete-event", args)
	if err != nil {
		return err
	}
	fs := a.flagSet("delete-event")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(rest); err != nil {
		return ErrUsage
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	label := id
	if e := a.findEvent(id); e != nil {
		label = e.Title
	}
	if ok, err := a.confirm(*yes, label); err != nil || !ok {
		return err
	}
	err = a.Dashboard.DeleteEvent(ctx, id)
	if err != nil && !errors.Is(err, client.ErrReload) {
		return err
	}
	return a.reportWrite("deleted "+id, err)
}

// reportWrite prints the outcome of a committed write. A failed refresh is
// noted on the same line and still returned, so the exit status is non-zero
// while the output makes clear the write itself happened.
func (a *App) reportWrite(msg string, reloadErr error) error {
	if reloadErr != nil {
		fmt.Fprintf(a.Out, "%s (refresh failed: %v)\n", msg, reloadErr)
		return reloadErr
	}
	fmt.Fprintln(a.Out, msg)
	return nil
}

// restore loads the stored session and both collections.
func (a *App) restore(ctx context.Context) error {
	session, err := a.Dashboard.Restore(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("%w: run \"dashboard login\" first", client.ErrUnauthenticated)
	}
	return nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

func (a *App) idArg(cmd string, args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(a.Err, "usage: dashboard %s <id> [flags]\n", cmd)
		return "", nil, ErrUsage
	}
	return args[0], args[1:], nil
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.Err, label)
	line, err := a.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *App) confirm(skip bool, label string) (bool, error) {
	if skip {
		return true, nil
	}
	answer, err := a.prompt(fmt.Sprintf("delete %s? [y/N] ", label))
	if err != nil {
		return false, err
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		return true, nil
	}
	fmt.Fprintln(a.Out, "cancelled")
	return false, nil
}

func (a *App) findPerson(id string) *models.Person {
	for _, p := range a.Dashboard.People() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (a *App) findEvent(id string) *models.Event {
	for _, e := range a.Dashboard.Events() {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
