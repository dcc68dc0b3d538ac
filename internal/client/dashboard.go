package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/client/sessionstore"
	"github.com/mmynk/peopleevents/internal/models"
)

// DefaultTimeout bounds every call the dashboard makes.
const DefaultTimeout = 15 * time.Second

// Options configure a Dashboard.
type Options struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient connect.HTTPClient
	// Sessions persists the session between runs.
	Sessions sessionstore.Store
	// Timeout bounds each call; DefaultTimeout when zero.
	Timeout time.Duration
}

// Dashboard is the application state: the session plus the last known copy of
// both collections. The collections are only ever replaced wholesale by a
// successful reload, so a failed call leaves them as they were.
type Dashboard struct {
	gate    *Gate
	records *Records
	timeout time.Duration

	mu    sync.RWMutex
	state Collections
}

// NewDashboard wires a gate and record client to the server at o.BaseURL.
func NewDashboard(o Options) *Dashboard {
	httpClient := o.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := strings.TrimRight(o.BaseURL, "/")

	return &Dashboard{
		gate: NewGate(api.NewAuthServiceClient(httpClient, base), o.Sessions),
		records: NewRecords(
			api.NewPeopleServiceClient(httpClient, base),
			api.NewEventServiceClient(httpClient, base),
		),
		timeout: timeout,
	}
}

// Session returns the current session, or nil when logged out.
func (d *Dashboard) Session() *models.Session {
	return d.gate.Session()
}

// People returns a copy of the held people, newest first.
func (d *Dashboard) People() []*models.Person {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return clonePeople(d.state.People)
}

// Events returns a copy of the held events, earliest first.
func (d *Dashboard) Events() []*models.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneEvents(d.state.Events)
}

// Login authenticates, persists the session and loads both collections.
// If only the load fails, the session is returned together with an ErrReload error.
func (d *Dashboard) Login(ctx context.Context, username, password string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	session, err := d.gate.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := d.reload(ctx); err != nil {
		return session, reloadError(err)
	}
	return session, nil
}

// Restore picks up a persisted session. It returns nil, nil when there is
// none; otherwise it reloads both collections.
func (d *Dashboard) Restore(ctx context.Context) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	session, err := d.gate.Restore(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return session, d.reload(ctx)
}

// Logout clears the session and drops the held collections.
func (d *Dashboard) Logout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.mu.Lock()
	d.state = Collections{}
	d.mu.Unlock()

	return d.gate.Logout(ctx)
}

// WhoAmI asks the server which session the persisted token carries.
func (d *Dashboard) WhoAmI(ctx context.Context) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.gate.WhoAmI(ctx)
}

// ReloadAll re-fetches both collections and replaces the held copy.
func (d *Dashboard) ReloadAll(ctx context.Context) (Collections, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.reload(ctx); err != nil {
		return Collections{}, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Collections{People: clonePeople(d.state.People), Events: cloneEvents(d.state.Events)}, nil
}

func (d *Dashboard) reload(ctx context.Context) error {
	session := d.gate.Session()
	if session == nil {
		return ErrUnauthenticated
	}
	c, err := d.records.ReloadAll(ctx, session)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.state = c
	d.mu.Unlock()
	return nil
}

// mutate runs the admin guard, then fn, then a full reload.
// Nothing is reloaded when fn fails. A failed reload after a successful fn
// yields ErrReload, never ErrStore, so callers do not repeat the write.
func (d *Dashboard) mutate(ctx context.Context, validate func() error, fn func(context.Context, *models.Session) error) error {
	session := d.gate.Session()
	if session == nil {
		return ErrUnauthenticated
	}
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	if validate != nil {
		if err := validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := fn(ctx, session); err != nil {
		return err
	}
	if err := d.reload(ctx); err != nil {
		return reloadError(err)
	}
	return nil
}

// CreatePerson adds a person and reloads. It returns the stored person, also
// alongside an ErrReload error.
func (d *Dashboard) CreatePerson(ctx context.Context, p models.Person) (*models.Person, error) {
	var created *models.Person
	err := d.mutate(ctx, p.Validate, func(ctx context.Context, s *models.Session) error {
		var err error
		created, err = d.records.CreatePerson(ctx, s, p)
		return err
	})
	return created, err
}

// UpdatePerson replaces the person with p.ID and reloads.
func (d *Dashboard) UpdatePerson(ctx context.Context, p models.Person) error {
	return d.mutate(ctx, p.Validate, func(ctx context.Context, s *models.Session) error {
		return d.records.UpdatePerson(ctx, s, p)
	})
}

// DeletePerson removes a person and reloads. Callers confirm with the user first.
func (d *Dashboard) DeletePerson(ctx context.Context, id string) error {
	return d.mutate(ctx, nil, func(ctx context.Context, s *models.Session) error {
		return d.records.DeletePerson(ctx, s, id)
	})
}

// CreateEvent adds an event and reloads. It returns the stored event, also
// alongside an ErrReload error.
func (d *Dashboard) CreateEvent(ctx context.Context, e models.Event) (*models.Event, error) {
	var created *models.Event
	err := d.mutate(ctx, e.Validate, func(ctx context.Context, s *models.Session) error {
		var err error
		created, err = d.records.CreateEvent(ctx, s, e)
		return err
	})
	return created, err
}

// UpdateEvent replaces the event with e.ID and reloads.
func (d *Dashboard) UpdateEvent(ctx context.Context, e models.Event) error {
	return d.mutate(ctx, e.Validate, func(ctx context.Context, s *models.Session) error {
		return d.records.UpdateEvent(ctx, s, e)
	})
}

// DeleteEvent removes an event and reloads. Callers confirm with the user first.
func (d *Dashboard) DeleteEvent(ctx context.Context, id string) error {
	return d.mutate(ctx, nil, func(ctx context.Context, s *models.Session) error {
		return d.records.DeleteEvent(ctx, s, id)
	})
}

func clonePeople(in []*models.Person) []*models.Person {
	if in == nil {
		return nil
	}
	out := make([]*models.Person, len(in))
	for i, p := range in {
		c := *p
		out[i] = &c
	}
	return out
}

func cloneEvents(in []*models.Event) []*models.Event {
	if in == nil {
		return nil
	}
	out := make([]*models.Event, len(in))
	for i, e := range in {
		c := *e
		out[i] = &c
	}
	return out
}
