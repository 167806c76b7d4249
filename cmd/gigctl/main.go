// gigctl authors CraftHub gigs from the terminal.
//
//	gigctl login  [-email you@example.com]
//	gigctl create [-no-input -title ... -category ... -pricing ... -delivery ...]
//	gigctl logout
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/sudo-init-do/crafthub/internal/config"
	"github.com/sudo-init-do/crafthub/internal/credentials"
	"github.com/sudo-init-do/crafthub/internal/gig"
	"github.com/sudo-init-do/crafthub/internal/gigclient"
	"github.com/sudo-init-do/crafthub/internal/gigform"
	"github.com/sudo-init-do/crafthub/internal/logging"
	"github.com/sudo-init-do/crafthub/internal/tui"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *gigclient.Client
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client, err := gigclient.New(cfg.APIURL, gigclient.WithTimeout(cfg.HTTPTimeout), gigclient.WithLogger(logger))
	if err != nil {
		logger.Fatal("client setup failed", zap.Error(err))
	}
	a := &app{cfg: cfg, logger: logger, client: client}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "login":
		err = a.login(ctx, args)
	case "logout":
		err = credentials.Delete(credentials.Account(cfg.APIURL))
	case "create":
		err = a.create(ctx, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gigctl <login|logout|create> [flags]")
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)

	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	token, err := a.client.Login(ctx, *email, password)
	if err != nil {
		return errors.New(gigclient.Message(err))
	}
	if err := credentials.Set(credentials.Account(a.cfg.APIURL), token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	fmt.Println("Logged in.")
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	token := fs.String("token", "", "bearer token (defaults to the one saved by login)")
	noInput := fs.Bool("no-input", false, "submit the flag values without opening the form")
	var d gig.Draft
	fs.StringVar(&d.Title, "title", "", "gig title")
	fs.StringVar(&d.Description, "description", "", "gig description")
	fs.StringVar(&d.Category, "category", "", "one of the gig categories")
	fs.StringVar(&d.Pricing, "pricing", "", "price in dollars, at least 1")
	fs.StringVar(&d.DeliveryTime, "delivery", "", "delivery time in days")
	fs.StringVar(&d.RevisionCount, "revisions", "", "number of revisions")
	fs.StringVar(&d.Tags, "tags", "", "comma separated tags")
	fs.StringVar(&d.Requirements, "requirements", "", "what you need from buyers")
	_ = fs.Parse(args)

	if *token == "" {
		t, err := credentials.Get(credentials.Account(a.cfg.APIURL))
		if err != nil {
			return err
		}
		*token = t
	}

	form := gigform.New(a.client, a.logger)
	if err := tui.Apply(form, d); err != nil {
		return err
	}

	if *noInput {
		if v := form.Draft().Validate(); !v.OK() {
			return errors.New(v.Error())
		}
		st, err := form.Submit(ctx, *token)
		if err != nil {
			return err
		}
		return reportSubmit(st)
	}

	return a.interactive(ctx, form, *token)
}

func (a *app) interactive(ctx context.Context, form *gigform.Form, token string) error {
	for {
		values := tui.Values{Draft: form.Draft()}
		if err := tui.NewDraftForm(&values).RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !values.Confirm {
			return nil
		}
		if err := tui.Apply(form, values.Draft); err != nil {
			return err
		}

		fmt.Println(tui.RenderState(gig.Submitting{}))
		st, err := form.Submit(ctx, token)
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderState(st))

		again := false
		title := "Create another gig?"
		if _, failed := st.(gig.Failed); failed {
			title = "Edit and resubmit?"
		}
		if err := huh.NewConfirm().Title(title).Value(&again).RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// reportSubmit prints a successful result. A failure comes back as the
// error so main prints it once.
func reportSubmit(st gig.State) error {
	if _, ok := st.(gig.Failed); ok {
		return errors.New(tui.RenderState(st))
	}
	fmt.Println(tui.RenderState(st))
	return nil
}
