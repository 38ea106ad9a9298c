// File: courtside/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"courtside/client"
	"courtside/config"
	"courtside/handlers"
	"courtside/models"
	"courtside/routes"
	"courtside/services/booking"
	"courtside/services/session"
	"courtside/storage"
	"courtside/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	store, err := storage.OpenSQLite(config.AppConfig.StoragePath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open local storage: %v", err)
	}
	defer store.Close()

	api := client.New(
		config.AppConfig.APIBaseURL,
		store,
		client.WithRateLimit(config.AppConfig.MaxRequestsPerMin),
		client.WithDeviceName(config.AppConfig.DeviceName),
	)

	sessions := session.NewDefaultSessionStore(store, api, logger)

	normalizer := booking.NewNormalizer(
		config.AppConfig.AssetHost,
		config.AppConfig.FallbackImage,
		config.AppConfig.DefaultLatitude,
		config.AppConfig.DefaultLongitude,
	)
	bookings := &booking.DefaultBookingService{
		API:    api,
		Norm:   normalizer,
		Logger: logger,
	}

	ctx := context.Background()
	if err := sessions.Restore(ctx); err != nil {
		logger.Warn("Session restore failed", zap.Error(err))
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "login":
		runLogin(ctx, sessions, os.Args[2:])
	case "logout":
		fail(sessions.Logout(ctx))
		fmt.Println("logged out")
	case "status":
		runStatus(sessions, store)
	case "refresh":
		fail(sessions.Refresh(ctx))
		fmt.Println("session refreshed")
	case "update":
		runUpdate(ctx, sessions, os.Args[2:])
	case "bookings":
		runList(ctx, bookings)
	case "booking":
		runGet(ctx, bookings, os.Args[2:])
	case "book":
		runBook(ctx, bookings, os.Args[2:])
	case "cancel":
		runCancel(ctx, bookings, os.Args[2:])
	case "availability":
		runAvailability(ctx, bookings, os.Args[2:])
	case "listen":
		runListener(bookings, logger)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: courtside <command>

commands:
  login <email> <password>   sign in and persist the session
  logout                     clear the persisted session
  status                     show the current session
  refresh                    re-fetch the profile from the backend
  update [flags]             update profile fields (-name, -email, -phone, -address)
  bookings                   list your bookings
  booking <id>               show one booking
  book [flags]               create a booking (-court, -date, -slots)
  cancel <id>                cancel a booking
  availability <slug> <date> list open court slots for a venue
  listen                     run the payment gateway callback listener`)
}

func fail(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	fail(err)
	fmt.Println(string(out))
}

func runLogin(ctx context.Context, sessions session.SessionStore, args []string) {
	if len(args) != 2 {
		fail(fmt.Errorf("login requires <email> and <password>"))
	}
	sess, token, err := sessions.SignIn(ctx, args[0], args[1])
	fail(err)
	fail(sessions.Login(ctx, *sess, token))
	fmt.Printf("logged in as %s <%s>\n", sess.Name, sess.Email)
}

func runStatus(sessions session.SessionStore, store storage.Store) {
	sess, state := sessions.Current()
	fmt.Println("state:", state)
	if sess == nil {
		return
	}
	printJSON(sess)

	token, err := store.Get(storage.KeyToken)
	if err != nil {
		return
	}
	if expiry, err := utils.TokenExpiry(token); err == nil {
		fmt.Println("token expires:", expiry.Format(time.RFC3339))
	}
}

func runUpdate(ctx context.Context, sessions session.SessionStore, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "address")
	fail(fs.Parse(args))

	var req models.SessionUpdateRequest
	if *name != "" {
		req.Name = name
	}
	if *email != "" {
		req.Email = email
	}
	if *phone != "" {
		req.PhoneNumber = phone
	}
	if *address != "" {
		req.Address = address
	}

	updated, err := sessions.UpdateProfile(ctx, req)
	fail(err)
	if updated == nil {
		fmt.Println("not signed in")
		return
	}
	printJSON(updated)
}

func runList(ctx context.Context, bookings booking.BookingService) {
	list, err := bookings.List(ctx)
	fail(err)
	if len(list) == 0 {
		fmt.Println("no bookings")
		return
	}
	printJSON(list)
}

func runGet(ctx context.Context, bookings booking.BookingService, args []string) {
	if len(args) != 1 {
		fail(fmt.Errorf("booking requires <id>"))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	fail(err)
	b, err := bookings.GetByID(ctx, id)
	fail(err)
	printJSON(b)
}

func runBook(ctx context.Context, bookings booking.BookingService, args []string) {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	court := fs.Int64("court", 0, "court id")
	date := fs.String("date", "", "booking date (YYYY-MM-DD)")
	slots := fs.String("slots", "", "comma-separated slot ids")
	fail(fs.Parse(args))

	var slotIDs []int64
	for _, raw := range strings.Split(*slots, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		fail(err)
		slotIDs = append(slotIDs, id)
	}

	orderID, err := bookings.Create(ctx, models.CreateBookingInput{
		CourtID: *court,
		Date:    *date,
		SlotIDs: slotIDs,
	})
	fail(err)
	fmt.Println("order reference:", orderID)
}

func runCancel(ctx context.Context, bookings booking.BookingService, args []string) {
	if len(args) != 1 {
		fail(fmt.Errorf("cancel requires <id>"))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	fail(err)
	status, err := bookings.Cancel(ctx, id)
	fail(err)
	fmt.Println("status:", status)
}

func runAvailability(ctx context.Context, bookings booking.BookingService, args []string) {
	if len(args) != 2 {
		fail(fmt.Errorf("availability requires <venue-slug> and <date>"))
	}
	courts, err := bookings.Availability(ctx, args[0], args[1])
	fail(err)
	printJSON(courts)
}

func runListener(bookings booking.BookingService, logger *zap.Logger) {
	payment := handlers.NewPaymentCallbackHandler(bookings)
	router := routes.SetupCallbackRouter(payment)

	srv := &http.Server{
		Addr:    config.AppConfig.CallbackAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Payment callback listener running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: callback listener failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Listener shutdown failed", zap.Error(err))
	}
}
