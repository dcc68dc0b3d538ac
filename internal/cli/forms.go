package cli

import (
	"flag"
	"fmt"

	"github.com/mmynk/peopleevents/internal/client"
	"github.com/mmynk/peopleevents/internal/models"
)

// personForm binds the person fields to flags. Only flags present on the
// command line are applied, so an edit keeps every field it does not name.
type personForm struct {
	fs *flag.FlagSet

	name, spouse, homePhone, cellPhone, email string
	livingDevelopment, address                string
	anniversary, birthday, image              string
}

func newPersonForm(fs *flag.FlagSet) *personForm {
	f := &personForm{fs: fs}
	fs.StringVar(&f.name, "name", "", "full name (required)")
	fs.StringVar(&f.spouse, "spouse", "", "spouse's name")
	fs.StringVar(&f.homePhone, "home-phone", "", "home phone")
	fs.StringVar(&f.cellPhone, "cell-phone", "", "cell phone")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.livingDevelopment, "living-development", "", "living development")
	fs.StringVar(&f.address, "address", "", "street address")
	fs.StringVar(&f.anniversary, "anniversary", "", "anniversary, YYYY-MM-DD")
	fs.StringVar(&f.birthday, "birthday", "", "birthday, YYYY-MM-DD")
	fs.StringVar(&f.image, "image", "", "path to a photo; empty clears it")
	return f
}

func (f *personForm) apply(p *models.Person) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			p.Name = f.name
		case "spouse":
			p.Spouse = f.spouse
		case "home-phone":
			p.HomePhone = f.homePhone
		case "cell-phone":
			p.CellPhone = f.cellPhone
		case "email":
			p.Email = f.email
		case "living-development":
			p.LivingDevelopment = f.livingDevelopment
		case "address":
			p.Address = f.address
		case "anniversary":
			p.Anniversary, err = parseDateFlag(fl.Name, f.anniversary)
		case "birthday":
			p.Birthday, err = parseDateFlag(fl.Name, f.birthday)
		case "image":
			p.Image = ""
			if f.image != "" {
				p.Image, err = client.EncodeImage(f.image)
			}
		}
	})
	return err
}

type eventForm struct {
	fs *flag.FlagSet

	title, date, location, description, attendees string
}

func newEventForm(fs *flag.FlagSet) *eventForm {
	f := &eventForm{fs: fs}
	fs.StringVar(&f.title, "title", "", "event title (required)")
	fs.StringVar(&f.date, "date", "", "event date, YYYY-MM-DD (required)")
	fs.StringVar(&f.location, "location", "", "where it takes place")
	fs.StringVar(&f.description, "description", "", "details")
	fs.StringVar(&f.attendees, "attendees", "", "expected attendees")
	return f
}

func (f *eventForm) apply(e *models.Event) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "title":
			e.Title = f.title
		case "date":
			e.Date, err = parseDateFlag(fl.Name, f.date)
		case "location":
			e.Location = f.location
		case "description":
			e.Description = f.description
		case "attendees":
			e.Attendees = f.attendees
		}
	})
	return err
}

func parseDateFlag(name, value string) (models.Date, error) {
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: --%s: %w", client.ErrValidation, name, err)
	}
	return d, nil
}
