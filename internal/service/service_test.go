package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/middleware"
	"github.com/mmynk/peopleevents/internal/models"
	"github.com/mmynk/peopleevents/internal/storage"
	"github.com/mmynk/peopleevents/internal/storage/sqlite"
)

type testClients struct {
	auth   *api.AuthServiceClient
	people *api.PeopleServiceClient
	events *api.EventServiceClient
}

// setupTestServer serves all three services behind the auth interceptor.
// A nil wrap uses the SQLite store as is.
func setupTestServer(t *testing.T, timeout time.Duration, wrap func(storage.Store) storage.Store) (*testClients, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	var store storage.Store = db
	if wrap != nil {
		store = wrap(db)
	}

	creds, err := auth.DefaultCredentials()
	if err != nil {
		t.Fatalf("DefaultCredentials failed: %v", err)
	}
	table, err := auth.NewCredentialTable(creds)
	if err != nil {
		t.Fatalf("NewCredentialTable failed: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	interceptors := connect.WithInterceptors(middleware.RequireAuth(jwtManager, api.AuthServiceLoginProcedure))

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(table, jwtManager, slog.Default()), interceptors))
	mux.Handle(api.NewPeopleServiceHandler(NewPeopleService(store, timeout), interceptors))
	mux.Handle(api.NewEventServiceHandler(NewEventService(store, timeout), interceptors))

	server := httptest.NewServer(mux)

	clients := &testClients{
		auth:   api.NewAuthServiceClient(http.DefaultClient, server.URL),
		people: api.NewPeopleServiceClient(http.DefaultClient, server.URL),
		events: api.NewEventServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		db.Close()
		os.Remove(tmpFile.Name())
	}
	return clients, cleanup
}

func login(t *testing.T, c *testClients, username, password string) string {
	t.Helper()
	resp, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Username: username,
		Password: password,
	}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", username, err)
	}
	return resp.Msg.Session.Token
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestLogin(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()

	tests := []struct {
		name     string
		username string
		password string
		wantRole models.Role
		wantErr  bool
	}{
		{name: "admin", username: "admin", password: "admin123", wantRole: models.RoleAdmin},
		{name: "member", username: "member", password: "member123", wantRole: models.RoleMember},
		{name: "wrong password", username: "admin", password: "wrong", wantErr: true},
		{name: "unknown user", username: "ghost", password: "admin123", wantErr: true},
		{name: "empty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}))
			if tt.wantErr {
				if connect.CodeOf(err) != connect.CodeUnauthenticated {
					t.Errorf("expected Unauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if resp.Msg.Session.Role != tt.wantRole || resp.Msg.Session.Username != tt.username {
				t.Errorf("unexpected session: %+v", resp.Msg.Session)
			}
			if resp.Msg.Session.Token == "" {
				t.Error("expected token in session")
			}
		})
	}
}

func TestWhoAmI(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()

	token := login(t, c, "member", "member123")
	resp, err := c.auth.WhoAmI(context.Background(), withToken(&api.WhoAmIRequest{}, token))
	if err != nil {
		t.Fatalf("WhoAmI failed: %v", err)
	}
	if resp.Msg.Session.Username != "member" || resp.Msg.Session.Role != models.RoleMember {
		t.Errorf("unexpected session: %+v", resp.Msg.Session)
	}

	if _, err := c.auth.Logout(context.Background(), withToken(&api.LogoutRequest{}, token)); err != nil {
		t.Errorf("Logout failed: %v", err)
	}
}

func TestRequiresToken(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()

	_, err := c.people.ListPeople(context.Background(), connect.NewRequest(&api.ListPeopleRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("ListPeople without token: expected Unauthenticated, got %v", err)
	}

	_, err = c.events.ListEvents(context.Background(), withToken(&api.ListEventsRequest{}, "garbage"))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("ListEvents with bad token: expected Unauthenticated, got %v", err)
	}
}

func TestMemberCannotMutate(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()
	ctx := context.Background()

	token := login(t, c, "member", "member123")

	_, err := c.people.CreatePerson(ctx, withToken(&api.CreatePersonRequest{Person: models.Person{Name: "Ann"}}, token))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("CreatePerson: expected PermissionDenied, got %v", err)
	}
	_, err = c.events.DeleteEvent(ctx, withToken(&api.DeleteEventRequest{ID: "x"}, token))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("DeleteEvent: expected PermissionDenied, got %v", err)
	}

	// Reads are open to members.
	resp, err := c.people.ListPeople(ctx, withToken(&api.ListPeopleRequest{}, token))
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if len(resp.Msg.People) != 0 {
		t.Errorf("expected no people, got %d", len(resp.Msg.People))
	}
}

func TestPeopleCRUD(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()
	ctx := context.Background()

	token := login(t, c, "admin", "admin123")

	created, err := c.people.CreatePerson(ctx, withToken(&api.CreatePersonRequest{Person: models.Person{
		Name:     "Ann Lee",
		Birthday: models.NewDate(2000, time.July, 4),
	}}, token))
	if err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	ann := created.Msg.Person
	if ann.ID == "" || ann.CreatedAt.IsZero() {
		t.Fatalf("store did not assign id/created_at: %+v", ann)
	}

	if _, err := c.people.CreatePerson(ctx, withToken(&api.CreatePersonRequest{Person: models.Person{Name: "Bo"}}, token)); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}

	list, err := c.people.ListPeople(ctx, withToken(&api.ListPeopleRequest{}, token))
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if len(list.Msg.People) != 2 || list.Msg.People[0].Name != "Bo" {
		t.Fatalf("expected newest first, got %+v", list.Msg.People)
	}
	if list.Msg.People[1].Birthday != models.NewDate(2000, time.July, 4) {
		t.Errorf("birthday not round-tripped: %v", list.Msg.People[1].Birthday)
	}

	updated := *ann
	updated.Email = "ann@example.com"
	if _, err := c.people.UpdatePerson(ctx, withToken(&api.UpdatePersonRequest{Person: updated}, token)); err != nil {
		t.Fatalf("UpdatePerson failed: %v", err)
	}

	if _, err := c.people.DeletePerson(ctx, withToken(&api.DeletePersonRequest{ID: ann.ID}, token)); err != nil {
		t.Fatalf("DeletePerson failed: %v", err)
	}
	if _, err := c.people.DeletePerson(ctx, withToken(&api.DeletePersonRequest{ID: ann.ID}, token)); err != nil {
		t.Errorf("second DeletePerson should succeed, got %v", err)
	}

	list, err = c.people.ListPeople(ctx, withToken(&api.ListPeopleRequest{}, token))
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if len(list.Msg.People) != 1 {
		t.Errorf("expected 1 person after delete, got %d", len(list.Msg.People))
	}
}

func TestEventsOrderedByDate(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()
	ctx := context.Background()

	token := login(t, c, "admin", "admin123")

	for _, e := range []models.Event{
		{Title: "Picnic", Date: models.NewDate(2024, time.July, 4)},
		{Title: "Potluck", Date: models.NewDate(2024, time.June, 1)},
	} {
		if _, err := c.events.CreateEvent(ctx, withToken(&api.CreateEventRequest{Event: e}, token)); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	resp, err := c.events.ListEvents(ctx, withToken(&api.ListEventsRequest{}, token))
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(resp.Msg.Events) != 2 || resp.Msg.Events[0].Title != "Potluck" || resp.Msg.Events[1].Title != "Picnic" {
		t.Fatalf("expected Potluck before Picnic, got %+v", resp.Msg.Events)
	}

	picnic := *resp.Msg.Events[1]
	picnic.Date = models.NewDate(2024, time.May, 1)
	updated, err := c.events.UpdateEvent(ctx, withToken(&api.UpdateEventRequest{Event: picnic}, token))
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated.Msg.Event.ID != picnic.ID {
		t.Errorf("UpdateEvent changed id: %s != %s", updated.Msg.Event.ID, picnic.ID)
	}

	resp, err = c.events.ListEvents(ctx, withToken(&api.ListEventsRequest{}, token))
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(resp.Msg.Events) != 2 || resp.Msg.Events[0].ID != picnic.ID || resp.Msg.Events[0].Date != picnic.Date {
		t.Errorf("expected moved Picnic first, got %+v", resp.Msg.Events)
	}
}

func TestValidationAndNotFound(t *testing.T) {
	c, cleanup := setupTestServer(t, 0, nil)
	defer cleanup()
	ctx := context.Background()

	token := login(t, c, "admin", "admin123")

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "person without name",
			call: func() error {
				_, err := c.people.CreatePerson(ctx, withToken(&api.CreatePersonRequest{Person: models.Person{Spouse: "x"}}, token))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "event without date",
			call: func() error {
				_, err := c.events.CreateEvent(ctx, withToken(&api.CreateEventRequest{Event: models.Event{Title: "x"}}, token))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "update without id",
			call: func() error {
				_, err := c.events.UpdateEvent(ctx, withToken(&api.UpdateEventRequest{Event: models.Event{Title: "x", Date: models.NewDate(2024, 1, 1)}}, token))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "update unknown person",
			call: func() error {
				_, err := c.people.UpdatePerson(ctx, withToken(&api.UpdatePersonRequest{Person: models.Person{ID: "nope", Name: "x"}}, token))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "update unknown event",
			call: func() error {
				_, err := c.events.UpdateEvent(ctx, withToken(&api.UpdateEventRequest{Event: models.Event{ID: "nope", Title: "x", Date: models.NewDate(2024, 1, 1)}}, token))
				return err
			},
			want: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := connect.CodeOf(tt.call()); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// slowStore blocks reads until the context is done.
type slowStore struct {
	storage.Store
}

func (s slowStore) ListPeople(ctx context.Context) ([]*models.Person, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStoreTimeout(t *testing.T) {
	c, cleanup := setupTestServer(t, 50*time.Millisecond, func(s storage.Store) storage.Store {
		return slowStore{Store: s}
	})
	defer cleanup()

	token := login(t, c, "member", "member123")
	_, err := c.people.ListPeople(context.Background(), withToken(&api.ListPeopleRequest{}, token))
	if connect.CodeOf(err) != connect.CodeDeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
