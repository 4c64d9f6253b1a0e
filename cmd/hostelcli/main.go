// hostelcli is the student-facing hostel client. Each subcommand maps to
// one screen of the application.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"hostel-client/config"
	"hostel-client/internal/gateway"
	"hostel-client/internal/model"
	"hostel-client/internal/qrlink"
	"hostel-client/internal/screen"
	"hostel-client/internal/session"
)

const usage = `usage: hostelcli <command> [flags]

commands:
  signup         create an account         (-name -student -email -password)
  login          log in                    (-email -password)
  logout         clear the local session
  home           profile, assignment and payment summary
  hostels        list hostels with your application status
  apply-hostel   apply to a hostel         (-id)
  rooms          list rooms
  apply-room     apply to a room           (-id)
  complaints     list your complaint tickets
  maintenance    submit a maintenance ticket (-title -details)
  messages       chat with an admin        (-admin)
  notifications  list notifications; mark one read with -read
  scan           resolve a scanned QR payload (argument: scanned text)
`

// errScanFailed signals a failed scan whose message is already on stdout.
var errScanFailed = errors.New("scan failed")

type app struct {
	cfg      *config.Config
	client   *gateway.Client
	sessions session.Store
	logger   *logrus.Logger
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if os.Getenv("HOSTEL_DEBUG") == "" {
		logger.SetLevel(logrus.WarnLevel)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Debug("config not loaded, using defaults")
		cfg = config.Default()
	}

	sessions, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session store: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		cfg:      cfg,
		client:   gateway.NewClient(cfg, logger),
		sessions: sessions,
		logger:   logger,
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(os.Stderr, "Please log in first.")
		} else if errors.Is(err, errScanFailed) {
			// The scan outcome message was already printed.
		} else {
			fmt.Fprintln(os.Stderr, gateway.UserMessage(err))
			logger.WithError(err).Debug("command failed")
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup":
		return a.cmdSignup(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return screen.NewAuthController(a.client, a.sessions, a.logger).Logout(ctx)
	case "home":
		return a.cmdHome(ctx)
	case "hostels":
		return a.cmdHostels(ctx)
	case "apply-hostel":
		return a.cmdApplyHostel(ctx, args)
	case "rooms":
		return a.cmdRooms(ctx)
	case "apply-room":
		return a.cmdApplyRoom(ctx, args)
	case "complaints":
		return a.cmdComplaints(ctx)
	case "maintenance":
		return a.cmdMaintenance(ctx, args)
	case "messages":
		return a.cmdMessages(ctx, args)
	case "notifications":
		return a.cmdNotifications(ctx, args)
	case "scan":
		return a.cmdScan(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	student := fs.String("student", "", "student id")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	auth := screen.NewAuthController(a.client, a.sessions, a.logger)
	err := auth.Signup(ctx, screen.SignupForm{
		Name: *name, StudentID: *student, Email: *email, Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Println("Account created. You can now log in.")
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	auth := screen.NewAuthController(a.client, a.sessions, a.logger)
	user, err := auth.Login(ctx, screen.LoginForm{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.StudentID)
	return nil
}

func (a *app) cmdHome(ctx context.Context) error {
	view, err := screen.NewHomeController(a.client, a.sessions, a.logger).Load(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Student Profile")
	fmt.Printf("  Name:        %s\n", view.User.Name)
	fmt.Printf("  Student ID:  %s\n", view.User.StudentID)
	fmt.Println("Hostel Application")
	fmt.Printf("  Applied:     %s\n", view.AppliedHostel)
	fmt.Printf("  Assigned:    %s\n", view.AssignedHostel)
	fmt.Printf("  Room:        %s\n", view.AssignedRoom)
	fmt.Printf("  Move In:     %s\n", view.MoveInDate)
	fmt.Printf("  Move Out:    %s\n", view.MoveOutDate)
	fmt.Println("Room Payment")
	fmt.Printf("  Amount:      %s\n", view.PaymentAmount)
	fmt.Printf("  Status:      %s\n", view.PaymentStatus)
	if view.CanScan {
		fmt.Println("  Run `hostelcli scan <qr data>` after scanning the payment QR code.")
	}
	return nil
}

func (a *app) cmdHostels(ctx context.Context) error {
	view, err := screen.NewHostelsController(a.client, a.sessions, a.logger).Load(ctx)
	if err != nil {
		return err
	}

	for _, h := range view.Hostels {
		full := ""
		if h.IsFull {
			full = " [FULL]"
		}
		fmt.Printf("%4d  %-24s capacity %d/%d%s  status: %s\n",
			h.ID, h.Name, h.AvailableCapacity, h.TotalCapacity, full, h.UserStatus)
	}
	if view.Assignment != nil {
		fmt.Printf("You are assigned to %s.\n", view.Assignment.Name)
	}
	return nil
}

func (a *app) cmdApplyHostel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply-hostel", flag.ExitOnError)
	id := fs.Int64("id", 0, "hostel id")
	fs.Parse(args)

	ctrl := screen.NewHostelsController(a.client, a.sessions, a.logger)
	view, err := ctrl.Load(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.Apply(ctx, view, *id); err != nil {
		return err
	}
	fmt.Println("Application submitted; status is pending.")
	return nil
}

func (a *app) cmdRooms(ctx context.Context) error {
	view, err := screen.NewRoomsController(a.client, a.sessions, a.logger).Load(ctx)
	if err != nil {
		return err
	}
	for _, r := range view.Rooms {
		mark := ""
		if r.Applied {
			mark = "  (applied)"
		}
		fmt.Printf("%4d  %s%s\n", r.ID, r.Name, mark)
	}
	return nil
}

func (a *app) cmdApplyRoom(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply-room", flag.ExitOnError)
	id := fs.Int64("id", 0, "room id")
	fs.Parse(args)

	ctrl := screen.NewRoomsController(a.client, a.sessions, a.logger)
	view, err := ctrl.Load(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.Apply(ctx, view, *id); err != nil {
		return err
	}
	fmt.Println("Application submitted.")
	return nil
}

func (a *app) cmdComplaints(ctx context.Context) error {
	complaints, err := screen.NewTicketsController(a.client, a.sessions, a.logger).Complaints(ctx)
	if err != nil {
		return err
	}
	if len(complaints) == 0 {
		fmt.Println("No complaints.")
		return nil
	}
	for _, c := range complaints {
		fmt.Printf("%4d  [%s] %s: %s\n", c.ID, c.Status, c.Title, c.Details)
	}
	return nil
}

func (a *app) cmdMaintenance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maintenance", flag.ExitOnError)
	title := fs.String("title", "", "ticket title")
	details := fs.String("details", "", "ticket details")
	fs.Parse(args)

	ctrl := screen.NewTicketsController(a.client, a.sessions, a.logger)
	if err := ctrl.SubmitMaintenance(ctx, *title, *details); err != nil {
		return err
	}
	fmt.Println("Maintenance request submitted.")
	return nil
}

func (a *app) cmdMessages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("messages", flag.ExitOnError)
	adminID := fs.Int64("admin", 0, "admin id to chat with")
	fs.Parse(args)

	ctrl := screen.NewMessagingController(a.client, a.sessions, a.cfg.Messaging.PollInterval, a.logger)

	if *adminID == 0 {
		admins, err := ctrl.Admins(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Select an admin with -admin <id>:")
		for _, admin := range admins {
			fmt.Printf("%4d  %s\n", admin.ID, admin.Name)
		}
		return nil
	}

	seen := 0
	err := ctrl.Open(ctx, *adminID, func(messages []model.Message) {
		for ; seen < len(messages); seen++ {
			m := messages[seen]
			fmt.Printf("[%d] %s\n", m.SenderUserID, m.Content)
		}
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	fmt.Println("Type a message and press enter; Ctrl-D to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := ctrl.Send(ctx, scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, gateway.UserMessage(err))
		}
	}
	return scanner.Err()
}

func (a *app) cmdNotifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	readID := fs.Int64("read", 0, "notification id to mark read")
	fs.Parse(args)

	ctrl := screen.NewNotificationsController(a.client, a.sessions, a.logger)
	notifications, err := ctrl.List(ctx)
	if err != nil {
		return err
	}

	if *readID != 0 {
		if err := ctrl.MarkRead(ctx, notifications, *readID); err != nil {
			return err
		}
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications yet.")
		return nil
	}
	for _, n := range notifications {
		marker := "*"
		if n.IsRead {
			marker = " "
		}
		fmt.Printf("%s %4d  %s: %s\n", marker, n.ID, n.Notification.Title, n.Notification.Message)
	}
	return nil
}

func (a *app) cmdScan(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("scan expects exactly one argument: the decoded QR payload")
	}

	resolver, err := qrlink.NewResolver(a.client, a.cfg.API.BaseURL, a.logger)
	if err != nil {
		return err
	}

	ctrl := screen.NewScanController(resolver, a.sessions)
	if err := ctrl.Begin(ctx); err != nil {
		return err
	}
	outcome := ctrl.HandleScan(ctx, args[0])
	fmt.Println(outcome.Message)
	if outcome.State == qrlink.StateFailed {
		return errScanFailed
	}
	return nil
}
