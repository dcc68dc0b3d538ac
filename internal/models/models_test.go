package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "valid", in: "2024-07-04", want: NewDate(2024, time.July, 4)},
		{name: "surrounding space", in: " 2000-01-31 ", want: NewDate(2000, time.January, 31)},
		{name: "empty is unset", in: "", want: Date{}},
		{name: "bad month", in: "2024-13-01", wantErr: true},
		{name: "wrong layout", in: "07/04/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	e := Event{Title: "Picnic", Date: NewDate(2024, time.July, 4)}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw failed: %v", err)
	}
	if raw["date"] != "2024-07-04" {
		t.Errorf("date on the wire = %v, want 2024-07-04", raw["date"])
	}

	var p Person
	if err := json.Unmarshal([]byte(`{"name":"Ann","birthday":"","anniversary":null}`), &p); err != nil {
		t.Fatalf("Unmarshal person failed: %v", err)
	}
	if !p.Birthday.IsZero() || !p.Anniversary.IsZero() {
		t.Errorf("expected unset dates, got %v and %v", p.Birthday, p.Anniversary)
	}

	if err := json.Unmarshal([]byte(`{"date":"not-a-date"}`), &e); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("1999-12-31"); err != nil {
		t.Fatalf("Scan string failed: %v", err)
	}
	if d != NewDate(1999, time.December, 31) {
		t.Errorf("Scan string = %v", d)
	}

	if err := d.Scan(time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time failed: %v", err)
	}
	if d != NewDate(2020, time.February, 29) {
		t.Errorf("Scan time = %v", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("Scan nil failed: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("Scan nil = %v, want zero", d)
	}

	v, err := Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v; want nil, nil", v, err)
	}
}

func TestDateBefore(t *testing.T) {
	june := NewDate(2024, time.June, 1)
	july := NewDate(2024, time.July, 4)
	if !june.Before(july) {
		t.Error("expected June before July")
	}
	if july.Before(june) || july.Before(july) {
		t.Error("Before must be strict")
	}
}

func TestValidate(t *testing.T) {
	t.Run("person requires name", func(t *testing.T) {
		p := &Person{Name: "   "}
		var verr *ValidationError
		if err := p.Validate(); !errors.As(err, &verr) || verr.Field != "name" {
			t.Errorf("Validate() = %v, want name ValidationError", err)
		}
		p.Name = "Ann"
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("event requires title and date", func(t *testing.T) {
		e := &Event{Date: NewDate(2024, time.July, 4)}
		var verr *ValidationError
		if err := e.Validate(); !errors.As(err, &verr) || verr.Field != "title" {
			t.Errorf("Validate() = %v, want title ValidationError", err)
		}
		e = &Event{Title: "Picnic"}
		if err := e.Validate(); !errors.As(err, &verr) || verr.Field != "date" {
			t.Errorf("Validate() = %v, want date ValidationError", err)
		}
	})
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin || !r.CanMutate() {
		t.Errorf("ParseRole(admin) = %v, %v", r, err)
	}
	if r, err := ParseRole("member"); err != nil || r.CanMutate() {
		t.Errorf("ParseRole(member) = %v, %v", r, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Error("expected error for unknown role")
	}
}
