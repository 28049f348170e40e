package accounts

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
)

type RegisterCmd struct {
	Name     string `short:"n" help:"Display name."`
	Email    string `short:"e" help:"Email address."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	confirm := c.Password
	if c.Name == "" || c.Email == "" || c.Password == "" {
		confirm = ""
		err := prompt(
			missing(c.Name, textInput("Name", &c.Name)),
			missing(c.Email, textInput("Email", &c.Email)),
			missing(c.Password, passwordInput("Password", &c.Password)),
			passwordInput("Confirm password", &confirm),
		)
		if err != nil {
			return err
		}
	}

	u, err := Register(ctx, c.Name, c.Email, c.Password, confirm)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Welcome, %s! You are now logged in.\n", u.Name)
	return nil
}

// Register creates an account and starts a session for it
func Register(ctx *cli.Context, name, email, password, confirm string) (models.User, error) {
	u, err := ctx.Accounts.Register(name, email, password, confirm)
	if err != nil {
		return models.User{}, err
	}
	if err := begin(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

type LoginCmd struct {
	Email    string `short:"e" help:"Email address."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	err := prompt(
		missing(c.Email, textInput("Email", &c.Email)),
		missing(c.Password, passwordInput("Password", &c.Password)),
	)
	if err != nil {
		return err
	}

	u, err := Login(ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

// Login checks credentials and starts a session
func Login(ctx *cli.Context, email, password string) (models.User, error) {
	u, err := ctx.Accounts.Login(email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := begin(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func begin(ctx *cli.Context, u models.User) error {
	if ctx.Session == nil {
		if err := ctx.LoadSession(); err != nil {
			return err
		}
	}
	return ctx.Session.Begin(u)
}

// Interactive asks whether to log in or register and runs the chosen form.
// It is used when the TUI starts without a session.
func Interactive(ctx *cli.Context) (models.User, error) {
	choice := "login"
	var name, email, password, confirm string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to " + constants.AppName).
				Options(
					huh.NewOption("Log in", "login"),
					huh.NewOption("Create an account", "register"),
				).
				Value(&choice),
		),
		huh.NewGroup(
			textInput("Name", &name),
		).WithHideFunc(func() bool { return choice != "register" }),
		huh.NewGroup(
			textInput("Email", &email),
			passwordInput("Password", &password),
		),
		huh.NewGroup(
			passwordInput("Confirm password", &confirm),
		).WithHideFunc(func() bool { return choice != "register" }),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return models.User{}, err
	}

	if choice == "register" {
		return Register(ctx, name, email, password, confirm)
	}
	return Login(ctx, email, password)
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	if err := ctx.Session.End(); err != nil {
		return err
	}
	ctx.Printf("Logged out %s.\n", u.Email)
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	ctx.Printf("%s <%s>\n", u.Name, u.Email)
	ctx.Printf("Theme: %s\n", ctx.Session.Theme())
	return nil
}

type ProfileCmd struct {
	Name  *string `short:"n" help:"New display name."`
	Email *string `short:"e" help:"New email address."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	if c.Name == nil && c.Email == nil {
		ctx.Println("Profile:")
		ctx.Printf("  Name:  %s\n", u.Name)
		ctx.Printf("  Email: %s\n", u.Email)
		return nil
	}

	name, email := u.Name, u.Email
	if c.Name != nil {
		name = *c.Name
	}
	if c.Email != nil {
		email = *c.Email
	}

	updated, err := ctx.Accounts.UpdateProfile(u.ID, name, email)
	if err != nil {
		return err
	}
	ctx.Session.Refresh(updated)
	ctx.Printf("✓ Profile updated: %s <%s>\n", updated.Name, updated.Email)
	return nil
}

type PasswordCmd struct {
	Current string `help:"Current password (prompted when omitted)."`
	New     string `name:"new" help:"New password (prompted when omitted)."`
}

func (c *PasswordCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	confirm := c.New
	if c.Current == "" || c.New == "" {
		confirm = ""
		err := prompt(
			missing(c.Current, passwordInput("Current password", &c.Current)),
			missing(c.New, passwordInput("New password", &c.New)),
			passwordInput("Confirm new password", &confirm),
		)
		if err != nil {
			return err
		}
	}

	if err := ctx.Accounts.ChangePassword(u.ID, c.Current, c.New, confirm); err != nil {
		return err
	}
	ctx.Println("✓ Password changed")
	return nil
}
