// Package cli is the terminal front end: a command loop whose views stand in
// for the booking, payment and facility pages.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pitchplease/internal/availability"
	"pitchplease/internal/booking"
	"pitchplease/internal/events"
	"pitchplease/internal/models"
	"pitchplease/internal/payment"
	"pitchplease/internal/reviews"
	"pitchplease/internal/session"
	"pitchplease/internal/store"
)

var errQuit = errors.New("quit")

// Backend is the part of the REST client the views call directly.
type Backend interface {
	GetFacility(ctx context.Context, id int64) (*models.Facility, error)
	ListFacilities(ctx context.Context) ([]models.Facility, error)
	SearchFacilities(ctx context.Context, filter models.SearchFilter) ([]models.Facility, error)
	ListOwnedFacilities(ctx context.Context, userID int64) ([]models.Facility, error)
	CreateFacility(ctx context.Context, in models.FacilityInput) (*models.Facility, error)
	UpdateFacility(ctx context.Context, in models.FacilityInput) (*models.Facility, error)
	DeleteFacility(ctx context.Context, id int64) error
	ListUserPayments(ctx context.Context, userID int64) ([]models.Payment, error)
	ListFacilityPayments(ctx context.Context, facilityID int64) ([]models.Payment, error)
	CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error)
}

// Deps wires the views to the domain packages.
type Deps struct {
	Backend        Backend
	Store          store.Store
	Session        *session.Session
	Resolver       *availability.Resolver
	Checkout       *booking.Checkout
	Reviews        *reviews.Service
	Bus            *events.Bus
	Window         booking.Window
	PaymentOptions payment.Options
	ExportDir      string
	Logger         *zerolog.Logger
	Out            io.Writer
	// Sleep waits before a redirect. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// view is what the user is currently looking at.
type view struct {
	facility *models.Facility
	grid     *booking.Grid
	page     *payment.Page
}

// App is the command loop.
type App struct {
	Deps
	out  *renderer
	view view
}

// New creates the app and subscribes its renderer to the bus.
func New(d Deps) *App {
	if d.Logger == nil {
		nop := zerolog.Nop()
		d.Logger = &nop
	}
	if d.Bus == nil {
		d.Bus = events.NewBus()
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Sleep == nil {
		d.Sleep = sleepContext
	}
	a := &App{Deps: d, out: newRenderer(d.Out)}
	a.out.subscribe(d.Bus)
	return a
}

// Run reads commands from in until EOF, "quit" or ctx is done.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	a.out.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			l := a.Logger.With().Str("request_id", uuid.NewString()).Logger()
			if err := a.Handle(l.WithContext(ctx), line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
			a.out.prompt()
		}
	}
}

// Handle runs one command line. Only quitting is reported as an error;
// command failures are rendered.
func (a *App) Handle(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		a.out.warning(err.Error())
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	name, rest := strings.ToLower(args[0]), args[1:]
	zerolog.Ctx(ctx).Debug().Str("command", name).Int("args", len(rest)).Msg("handling command")

	switch name {
	case "quit", "exit":
		return errQuit
	case "help":
		a.out.help(usages())
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		a.out.warning(fmt.Sprintf("unknown command %q, type help", name))
		return nil
	}
	if cmd.auth && !a.Session.IsAuthenticated(ctx) {
		a.out.warning("please log in first")
		return nil
	}
	if err := cmd.run(a, ctx, rest); err != nil {
		a.report(ctx, err)
	}
	return nil
}

type command struct {
	usage string
	auth  bool
	run   func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":           {usage: "login <user> <password>", run: (*App).login},
		"register":        {usage: "register <user> <email> <password>", run: (*App).register},
		"logout":          {usage: "logout", run: (*App).logout},
		"whoami":          {usage: "whoami", run: (*App).whoami},
		"facilities":      {usage: "facilities [page]", run: (*App).facilities},
		"search":          {usage: "search [city=..] [type=..] [min=..] [max=..] [page=..]", run: (*App).search},
		"show":            {usage: "show <facilityId>", run: (*App).show},
		"reviews":         {usage: "reviews [facilityId]", run: (*App).listReviews},
		"review":          {usage: "review <rating 1-5> [comment]", auth: true, run: (*App).review},
		"unreview":        {usage: "unreview <reviewId>", auth: true, run: (*App).unreview},
		"book":            {usage: "book <facilityId> [yyyy-mm-dd]", run: (*App).book},
		"date":            {usage: "date <yyyy-mm-dd>", run: (*App).date},
		"toggle":          {usage: "toggle <hour> [hour...]", run: (*App).toggle},
		"summary":         {usage: "summary", run: (*App).summary},
		"checkout":        {usage: "checkout", auth: true, run: (*App).checkout},
		"pay":             {usage: "pay <card|paypal|bank> [confirm]", auth: true, run: (*App).pay},
		"fail":            {usage: "fail <card|paypal|bank>", auth: true, run: (*App).fail},
		"status":          {usage: "status", run: (*App).status},
		"transactions":    {usage: "transactions [facility <id>]", auth: true, run: (*App).transactions},
		"export":          {usage: "export [facility <id>] [file.xlsx]", auth: true, run: (*App).export},
		"mine":            {usage: "mine", auth: true, run: (*App).mine},
		"create-facility": {usage: "create-facility name=.. city=.. type=.. rate=.. [address=..] [description=..]", auth: true, run: (*App).createFacility},
		"update-facility": {usage: "update-facility <id> key=value...", auth: true, run: (*App).updateFacility},
		"delete-facility": {usage: "delete-facility <id>", auth: true, run: (*App).deleteFacility},
	}
}

// Errors of these kinds are user mistakes; everything else is logged.
var warnings = []error{
	booking.ErrNoSlotsSelected,
	booking.ErrSlotUnavailable,
	booking.ErrSlotNotFound,
	booking.ErrDateInPast,
	booking.ErrDateTooFar,
	booking.ErrDateMalformed,
	payment.ErrTransferNotConfirmed,
	payment.ErrActionDisabled,
	payment.ErrUnknownMethod,
	reviews.ErrRatingRequired,
	reviews.ErrNotOwnReview,
	reviews.ErrReviewNotFound,
	errUsage,
}

func (a *App) report(ctx context.Context, err error) {
	if errors.Is(err, payment.ErrNoBookingDraft) {
		a.out.alert(err.Error())
		return
	}
	for _, w := range warnings {
		if errors.Is(err, w) {
			a.out.warning(err.Error())
			return
		}
	}
	zerolog.Ctx(ctx).Error().Err(err).Msg("command failed")
	a.out.errorLine(userMessage(err))
}

// navigate follows a redirect after its delay.
func (a *App) navigate(ctx context.Context, r *payment.Redirect) error {
	if r == nil {
		return nil
	}
	a.out.info(fmt.Sprintf("redirecting to %s ...", r.Target))
	if err := a.Sleep(ctx, r.Delay); err != nil {
		return err
	}

	target, query, _ := strings.Cut(r.Target, "?")
	id, _ := parseQueryID(query)
	switch target {
	case "booking":
		a.view.page = nil
		return a.openBooking(ctx, id, a.Window.Today())
	case "booking-confirmation":
		a.view = view{}
		a.out.confirmation(id)
	default:
		a.view = view{}
		return a.facilities(ctx, nil)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func usages() []string {
	out := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		out = append(out, c.usage)
	}
	sort.Strings(out)
	return append(out, "help", "quit")
}
