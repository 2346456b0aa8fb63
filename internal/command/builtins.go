package command

import (
	"fmt"
	"strings"

	"github.com/smileynet/assistant/internal/contact"
)

// RegisterBuiltins registers the assistant's commands on reg.
func RegisterBuiltins(reg *Registry) {
	reg.Register(Command{
		Name: "hello", Usage: "hello", Help: "greet the assistant",
		MaxArgs: AnyArgs, Run: hello,
	})
	reg.Register(Command{
		Name: "add", Usage: "add <name> [phone]", Help: "add a contact or a phone to an existing one",
		MinArgs: 1, MaxArgs: 2, Run: addContact,
	})
	reg.Register(Command{
		Name: "change", Usage: "change <name> <phone>", Help: "replace the first phone of a contact",
		MinArgs: 2, MaxArgs: 2, Run: changePhone,
	})
	reg.Register(Command{
		Name: "phone", Usage: "phone <name>", Help: "show a contact's phones",
		MinArgs: 1, MaxArgs: 1, Run: showPhones,
	})
	reg.Register(Command{
		Name: "all", Usage: "all", Help: "list every contact",
		MaxArgs: AnyArgs, Run: listAll,
	})
	reg.Register(Command{
		Name: "add-birthday", Usage: "add-birthday <name> <DD.MM.YYYY>", Help: "set a contact's birthday",
		MinArgs: 2, MaxArgs: 2, Run: addBirthday,
	})
	reg.Register(Command{
		Name: "show-birthday", Usage: "show-birthday <name>", Help: "show a contact's birthday",
		MinArgs: 1, MaxArgs: 1, Run: showBirthday,
	})
	reg.Register(Command{
		Name: "birthdays", Usage: "birthdays", Help: "list birthdays in the coming days",
		MaxArgs: AnyArgs, Run: upcomingBirthdays(reg),
	})
	reg.Register(Command{
		Name: "help", Usage: "help", Help: "show this list",
		MaxArgs: AnyArgs, Run: help(reg),
	})
	reg.Register(Command{
		Name: "exit", Aliases: []string{"close"}, Usage: "exit | close", Help: "leave the assistant",
		MaxArgs: AnyArgs, Quit: true, Run: goodbye,
	})
}

func notFound(name string) string {
	return fmt.Sprintf("Contact %s not found", name)
}

func hello([]string, *contact.AddressBook) (string, error) {
	return "How can I help you?", nil
}

func goodbye([]string, *contact.AddressBook) (string, error) {
	return "Goodbye!", nil
}

// addContact creates the contact on first use and appends the phone if one
// is given. The phone is validated first so a bad number never leaves an
// empty contact behind.
func addContact(args []string, book *contact.AddressBook) (string, error) {
	name := args[0]
	var phone string
	if len(args) > 1 {
		phone = args[1]
		if _, err := contact.NewPhone(phone); err != nil {
			return "", err
		}
	}

	message := "Contact updated."
	rec, ok := book.Find(name)
	if !ok {
		var err error
		rec, err = contact.NewRecord(name)
		if err != nil {
			return "", err
		}
		book.AddRecord(rec)
		message = "Contact added."
	}
	if phone != "" {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
	}
	return message, nil
}

func changePhone(args []string, book *contact.AddressBook) (string, error) {
	name, phone := args[0], args[1]
	rec, ok := book.Find(name)
	if !ok {
		return notFound(name), nil
	}
	phones := rec.Phones()
	if len(phones) == 0 {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		return fmt.Sprintf("Phone number for contact %s added as %s", name, phone), nil
	}
	if err := rec.EditPhone(phones[0].String(), phone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone number for contact %s changed to %s", name, phone), nil
}

func showPhones(args []string, book *contact.AddressBook) (string, error) {
	name := args[0]
	rec, ok := book.Find(name)
	if !ok {
		return notFound(name), nil
	}
	return fmt.Sprintf("Phones for %s: %s", name, rec.PhoneList()), nil
}

func listAll(_ []string, book *contact.AddressBook) (string, error) {
	records := book.Records()
	if len(records) == 0 {
		return "No contacts saved.", nil
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func addBirthday(args []string, book *contact.AddressBook) (string, error) {
	name, bday := args[0], args[1]
	rec, ok := book.Find(name)
	if !ok {
		return notFound(name), nil
	}
	if err := rec.AddBirthday(bday); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday %s added to contact %s", bday, name), nil
}

func showBirthday(args []string, book *contact.AddressBook) (string, error) {
	name := args[0]
	rec, ok := book.Find(name)
	if !ok {
		return notFound(name), nil
	}
	return fmt.Sprintf("Birthday of %s is %s", name, rec.ShowBirthday()), nil
}

func upcomingBirthdays(reg *Registry) Handler {
	return func(_ []string, book *contact.AddressBook) (string, error) {
		var lines []string
		for _, bucket := range book.SortedUpcoming(reg.Now()) {
			for _, name := range bucket.Names {
				lines = append(lines, fmt.Sprintf("%s: in %d days", name, bucket.Days))
			}
		}
		if len(lines) == 0 {
			return "No upcoming birthdays", nil
		}
		return strings.Join(lines, "\n"), nil
	}
}

func help(reg *Registry) Handler {
	return func([]string, *contact.AddressBook) (string, error) {
		cmds := reg.Commands()
		width := 0
		for _, c := range cmds {
			width = max(width, len(c.Usage))
		}
		lines := make([]string, len(cmds))
		for i, c := range cmds {
			lines[i] = fmt.Sprintf("  %-*s  %s", width, c.Usage, c.Help)
		}
		return "Commands:\n" + strings.Join(lines, "\n"), nil
	}
}
