package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pitchplease/internal/booking"
	"pitchplease/internal/events"
	"pitchplease/internal/models"
	"pitchplease/internal/payment"
	"pitchplease/internal/reviews"
)

const gridColumns = 4

// renderer draws views as text. It never changes state.
type renderer struct {
	w io.Writer
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

func (r *renderer) subscribe(bus *events.Bus) {
	bus.Subscribe(events.AvailabilityLoaded, func(e events.Event) error {
		if g, ok := e.Payload.(*booking.Grid); ok {
			r.grid(g)
		}
		return nil
	})
	bus.Subscribe(events.SelectionChanged, func(e events.Event) error {
		if s, ok := e.Payload.(booking.Summary); ok {
			r.summary(s)
		}
		return nil
	})
	bus.Subscribe(events.PaymentStateChanged, func(e events.Event) error {
		if c, ok := e.Payload.(payment.StateChange); ok {
			r.paymentState(c)
		}
		return nil
	})
}

func (r *renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *renderer) prompt() { r.printf("> ") }
func (r *renderer) info(msg string) { r.printf("%s\n", msg) }
func (r *renderer) success(msg string) { r.printf("success: %s\n", msg) }
func (r *renderer) warning(msg string) { r.printf("warning: %s\n", msg) }
func (r *renderer) errorLine(msg string) { r.printf("error: %s\n", msg) }
func (r *renderer) alert(msg string) { r.printf("ALERT: %s\n", msg) }

func (r *renderer) help(usages []string) {
	r.printf("commands:\n")
	for _, u := range usages {
		r.printf("  %s\n", u)
	}
}

const itemsPerPage = 8

// pageBounds clamps page and returns the slice bounds and page count.
func pageBounds(n, page int) (start, end, pages int) {
	pages = (n + itemsPerPage - 1) / itemsPerPage
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}
	start = page * itemsPerPage
	end = start + itemsPerPage
	if end > n {
		end = n
	}
	return start, end, pages
}

// facilityList renders one page of facilities; page is zero-based.
func (r *renderer) facilityList(list []models.Facility, page int) {
	if len(list) == 0 {
		r.info("no facilities found")
		return
	}
	start, end, pages := pageBounds(len(list), page)
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCITY\tRATE/HR\tRATING")
	for _, f := range list[start:end] {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.FacilityType, f.City, booking.FormatMoney(f.HourlyRate), rating(&f))
	}
	_ = tw.Flush()
	if pages > 1 {
		r.printf("Page %d of %d\n", start/itemsPerPage+1, pages)
	}
}

func (r *renderer) facility(f *models.Facility) {
	r.printf("%s (#%d)\n", f.Name, f.ID)
	if f.Description != "" {
		r.printf("  %s\n", f.ShortDescription(120))
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "  Type:\t%s\n", f.FacilityType)
	fmt.Fprintf(tw, "  Address:\t%s\n", strings.Trim(strings.Join([]string{f.Address, f.City}, ", "), ", "))
	fmt.Fprintf(tw, "  Rate:\t%s/hr\n", booking.FormatMoney(f.HourlyRate))
	fmt.Fprintf(tw, "  Rating:\t%s\n", rating(f))
	if f.Features != "" {
		fmt.Fprintf(tw, "  Features:\t%s\n", f.Features)
	}
	if f.Rules != "" {
		fmt.Fprintf(tw, "  Rules:\t%s\n", f.Rules)
	}
	if f.Agent != nil && f.Agent.Name != "" {
		fmt.Fprintf(tw, "  Managed by:\t%s\n", f.Agent.Name)
	}
	_ = tw.Flush()
}

func rating(f *models.Facility) string {
	if !f.HasRating() {
		return "No ratings yet"
	}
	return fmt.Sprintf("%.1f/5", *f.AverageRating)
}

func (r *renderer) reviews(list []reviews.Entry) {
	if len(list) == 0 {
		r.info("No reviews yet. Be the first to leave a review!")
		return
	}
	for _, e := range list {
		own := ""
		if e.Own {
			own = fmt.Sprintf("  [yours, unreview %d]", e.ID)
		}
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format(models.DateLayout)
		}
		r.printf("#%d %s %s (%d/5) %s%s\n", e.ID, e.UserName, e.Stars(), e.Rating, date, own)
		if e.Comment != "" {
			r.printf("    %s\n", e.Comment)
		}
	}
}

func (r *renderer) grid(g *booking.Grid) {
	r.printf("Availability for %s\n", booking.FormatDate(g.Date))
	if g.Degraded {
		r.warning("live availability is unavailable, showing estimated slots")
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for i, s := range g.Slots() {
		mark := " "
		switch {
		case !s.Available:
			mark = "x"
		case g.IsSelected(s.StartHour):
			mark = "*"
		}
		fmt.Fprintf(tw, "[%s] %2d  %s", mark, s.StartHour, booking.FormatTime(s.StartHour))
		if (i+1)%gridColumns == 0 {
			fmt.Fprintln(tw)
		} else {
			fmt.Fprint(tw, "\t")
		}
	}
	_ = tw.Flush()
	r.printf("[x] booked  [*] selected; toggle <hour> to select\n")
}

func (r *renderer) summary(s booking.Summary) {
	if !s.Visible {
		r.info("no slots selected")
		return
	}
	r.printf("Booking summary\n")
	r.printf("  Facility:  %s\n", s.FacilityName)
	r.printf("  Date:      %s\n", s.FormattedDate)
	r.printf("  Slots:     %s\n", strings.Join(s.Ranges, ", "))
	r.printf("  Rate:      %s/hr\n", booking.FormatMoney(s.HourlyRate))
	r.printf("  Hours:     %d\n", s.Hours)
	r.printf("  Total:     %s\n", booking.FormatMoney(s.Total))
}

func (r *renderer) paymentPage(p *payment.Page) {
	d := p.Draft()
	if d == nil {
		return
	}
	r.printf("Payment for %s\n", d.FacilityName)
	r.printf("  Date:      %s\n", d.FormattedDate)
	ranges := make([]string, len(d.TimeSlots))
	for i, s := range d.TimeSlots {
		ranges[i] = booking.FormatRange(s.StartHour, s.EndHour)
	}
	r.printf("  Slots:     %s\n", strings.Join(ranges, ", "))
	r.printf("  Rate:      %s/hr\n", booking.FormatMoney(d.HourlyRate))
	r.printf("  Hours:     %d\n", d.Hours)
	r.printf("  Total:     %s\n", d.TotalAmount)
	r.printf("  Bank transfer reference: %s\n", p.Reference())
	r.paymentActions(p)
}

func (r *renderer) paymentActions(p *payment.Page) {
	methods := make([]string, len(models.PaymentMethods))
	for i, m := range models.PaymentMethods {
		methods[i] = string(m)
	}
	r.printf("  Methods:   %s\n", strings.Join(methods, ", "))
	if p.CanSubmit() {
		r.printf("  pay <card|paypal|bank> [confirm] to complete the payment\n")
	}
	if p.CanFail() {
		r.printf("  fail <method> to simulate a failed payment (%d retries left)\n", p.RetriesRemaining())
	}
}

func (r *renderer) paymentState(c payment.StateChange) {
	switch c.To {
	case payment.StateProcessing:
		r.info("Processing...")
	case payment.StateFailed:
		r.info("Payment failed")
	case payment.StateBlocked:
		r.info("Payment blocked")
	}
}

func (r *renderer) outcome(o payment.Outcome) {
	if o.Message == "" {
		return
	}
	switch o.State {
	case payment.StateSucceeded:
		r.success(o.Message)
	default:
		r.errorLine(o.Message)
	}
}

func (r *renderer) confirmation(id int64) {
	r.printf("Booking confirmed. Payment #%d\n", id)
}

func (r *renderer) payments(list []models.Payment) {
	if len(list) == 0 {
		r.info("no transactions")
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFACILITY\tUSER\tAMOUNT\tMETHOD\tSTATUS\tDATE")
	var total float64
	for _, p := range list {
		date := ""
		if !p.CreatedAt.IsZero() {
			date = p.CreatedAt.Format(models.DateLayout)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%s\t%s\t%s\t%s\n", p.ID, p.FacilityName, p.UserName, booking.FormatMoney(p.Amount), p.PaymentMethod, p.PaymentStatus, date)
		total += p.Amount
	}
	fmt.Fprintf(tw, "\t\tTotal\t$%s\t\t\t\n", booking.FormatMoney(total))
	_ = tw.Flush()
}
