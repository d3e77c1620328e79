// Command hub is the terminal client for the VisionDay hub API. It
// keeps a session file under the user config directory and talks to the
// API through the typed SDK.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/visionday/hub/client"
	"github.com/visionday/hub/internal/console"
	"github.com/visionday/hub/internal/session"
	"github.com/visionday/hub/pkg/models"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := client.LoadConfig()
	if err != nil {
		fatal(err)
	}
	path := os.Getenv("HUB_SESSION_FILE")
	if path == "" {
		path, err = session.DefaultPath()
		if err != nil {
			fatal(err)
		}
	}
	store, err := session.Open(path)
	if err != nil {
		fatal(err)
	}
	api := client.New(cfg, store)
	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, api, os.Args[2:])
	case "logout":
		err = api.Auth.Logout(ctx)
		if err == nil {
			fmt.Println("logged out")
		}
	case "whoami":
		err = runWhoami(api)
	case "systems":
		err = runSystems(api)
	case "use":
		err = runUse(api, os.Args[2:])
	case "receivables":
		err = runReceivables(ctx, api, os.Args[2:])
	case "payables":
		err = runPayables(ctx, api, os.Args[2:])
	case "alerts":
		err = runAlerts(ctx, api, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hub <command> [flags]

commands:
  login        authenticate and store the session
  logout       revoke the session
  whoami       show the logged-in user
  systems      list the systems granted to the account
  use <id>     select the active system
  receivables  list, summarize and pay receivables
  payables     list, summarize and pay payables
  alerts       list alerts and mark them read`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "hub:", err)
	os.Exit(1)
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	remember := fs.Bool("remember", false, "keep the session for 30 days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("login: -email is required")
	}
	fmt.Fprint(os.Stderr, "password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	user, err := api.Auth.Login(ctx, models.LoginRequest{
		Email:      *email,
		Password:   string(password),
		RememberMe: *remember,
	})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runWhoami(api *client.Client) error {
	u := api.Auth.CurrentUser()
	if u == nil {
		return client.ErrNotAuthenticated
	}
	fmt.Printf("%s <%s> role=%s system=%s\n", u.Name, u.Email, u.Role, orDash(u.CurrentSystem))
	return nil
}

func runSystems(api *client.Client) error {
	if api.Auth.CurrentUser() == nil {
		return client.ErrNotAuthenticated
	}
	picker := console.NewSystemPicker(api)
	for _, opt := range picker.Options() {
		mark := " "
		if opt.ID == picker.Current() {
			mark = "*"
		}
		state := "locked"
		if opt.Enabled {
			state = "available"
		}
		fmt.Printf("%s %-10s %-16s %s\n", mark, opt.ID, opt.Label, state)
	}
	return nil
}

func runUse(api *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("use: exactly one system id expected")
	}
	picker := console.NewSystemPicker(api)
	if err := picker.Choose(args[0]); err != nil {
		return err
	}
	fmt.Println("active system:", args[0])
	return nil
}

func runReceivables(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("receivables", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (PENDING, PAID, OVERDUE, PARTIALLY_PAID)")
	summary := fs.Bool("resumo", false, "show the dashboard summary")
	payID := fs.Int64("pay", 0, "register a payment against this record id")
	amount := fs.Float64("amount", 0, "payment amount, used with -pay")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := console.NewReceivablesView(api.Receivables, api.Categories, api.Clients)
	if err := view.Load(ctx); err != nil {
		return err
	}

	if *payID != 0 {
		rec, err := view.Pay(ctx, *payID, console.PaymentForm{Amount: *amount, PaymentDate: time.Now()})
		if err != nil {
			return err
		}
		fmt.Printf("paid %.2f on #%d, pending %.2f status %s\n", *amount, rec.ID, rec.PendingAmount, rec.Status)
		return nil
	}
	if *summary {
		s := view.Summary()
		fmt.Printf("month %.2f  paid %.2f  pending %.2f (%d)  overdue %.2f (%d)\n",
			s.TotalMonth, s.TotalPaid, s.TotalPending, s.PendingCount, s.TotalOverdue, s.OverdueCount)
		return nil
	}

	view.SetFilter(models.RecordFilter{Status: models.RecordStatus(*status)})
	for _, rec := range view.Visible() {
		fmt.Printf("#%-4d %-30s due %s  total %9.2f  pending %9.2f  %s\n",
			rec.ID, truncate(rec.Description, 30), rec.DueDate.Format("2006-01-02"),
			rec.TotalAmount, rec.PendingAmount, rec.Status)
	}
	return nil
}

func runPayables(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("payables", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	summary := fs.Bool("resumo", false, "show the dashboard summary")
	payID := fs.Int64("pay", 0, "register a payment against this record id")
	amount := fs.Float64("amount", 0, "payment amount, used with -pay")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := console.NewPayablesView(api.Payables, api.Categories, api.Suppliers)
	if err := view.Load(ctx); err != nil {
		return err
	}

	if *payID != 0 {
		p, err := view.Pay(ctx, *payID, console.PaymentForm{Amount: *amount, PaymentDate: time.Now()})
		if err != nil {
			return err
		}
		fmt.Printf("paid %.2f on #%d, pending %.2f status %s\n", *amount, p.ID, p.PendingAmount, p.Status)
		return nil
	}
	if *summary {
		s := view.Summary()
		fmt.Printf("due %.2f  paid %.2f  pending %.2f  overdue %.2f\n",
			s.TotalDue, s.TotalPaid, s.TotalPending, s.TotalOverdue)
		return nil
	}

	view.SetFilter(models.RecordFilter{Status: models.RecordStatus(*status)})
	for _, p := range view.Visible() {
		fmt.Printf("#%-4d %-30s due %s  total %9.2f  pending %9.2f  %s\n",
			p.ID, truncate(p.Description, 30), p.DueDate.Format("2006-01-02"),
			p.TotalAmount, p.PendingAmount, p.Status)
	}
	return nil
}

func runAlerts(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	unread := fs.Bool("unread", false, "only unread alerts")
	markRead := fs.Int64("read", 0, "mark this alert read")
	markAll := fs.Bool("read-all", false, "mark every alert read")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *markRead != 0 {
		return api.Alerts.MarkRead(ctx, *markRead)
	}
	if *markAll {
		return api.Alerts.MarkAllRead(ctx)
	}
	items, err := api.Alerts.List(ctx, *unread)
	if err != nil {
		return err
	}
	for _, a := range items {
		mark := " "
		if !a.Read {
			mark = "!"
		}
		fmt.Printf("%s #%-4d [%s] %s: %s\n", mark, a.ID, a.Severity, a.Title, a.Message)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
