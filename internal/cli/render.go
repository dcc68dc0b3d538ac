package cli

import (
	"fmt"

	"github.com/mmynk/peopleevents/internal/calculator"
	"github.com/mmynk/peopleevents/internal/models"
)

func (a *App) printPerson(p *models.Person, today models.Date) {
	a.field("id", p.ID)
	a.field("name", p.Name)
	a.field("spouse", p.Spouse)
	a.field("home phone", p.HomePhone)
	a.field("cell phone", p.CellPhone)
	a.field("email", p.Email)
	a.field("development", p.LivingDevelopment)
	a.field("address", p.Address)
	if !p.Birthday.IsZero() {
		a.field("birthday", fmt.Sprintf("%s (age %d)", calculator.FormatDate(p.Birthday), calculator.Age(p.Birthday, today)))
	}
	if !p.Anniversary.IsZero() {
		a.field("anniversary", fmt.Sprintf("%s (%d years)", calculator.FormatDate(p.Anniversary), calculator.YearsSince(p.Anniversary, today)))
	}
	if p.Image != "" {
		a.field("photo", "yes")
	}
}

func (a *App) field(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(a.Out, "  %-12s %s\n", label+":", value)
}
