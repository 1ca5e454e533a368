package cli

import (
	"context"

	"pitchplease/internal/models"
	"pitchplease/internal/payment"
)

// openPayment starts a fresh payment view over the stored draft.
func (a *App) openPayment(ctx context.Context) error {
	page := payment.NewPage(a.Store, a.Backend, a.Session, a.Bus, a.Logger, a.PaymentOptions)
	if _, err := page.Open(ctx); err != nil {
		a.view.page = nil
		return err
	}
	a.view.page = page
	a.view.grid = nil
	a.out.paymentPage(page)
	return nil
}

// currentPage returns the payment view opened by checkout. Once a page is
// left, a new one only comes from another checkout.
func (a *App) currentPage() (*payment.Page, error) {
	if a.view.page == nil {
		return nil, payment.ErrNoBookingDraft
	}
	return a.view.page, nil
}

func (a *App) pay(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError(commands["pay"].usage)
	}
	method, ok := models.ParsePaymentMethod(args[0])
	if !ok {
		return usageError(commands["pay"].usage)
	}
	confirmed := len(args) == 2 && args[1] == "confirm"

	page, err := a.currentPage()
	if err != nil {
		return err
	}
	out, err := page.Submit(ctx, method, confirmed)
	a.out.outcome(out)
	if err != nil {
		return err
	}
	return a.navigate(ctx, out.Redirect)
}

func (a *App) fail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(commands["fail"].usage)
	}
	method, ok := models.ParsePaymentMethod(args[0])
	if !ok {
		return usageError(commands["fail"].usage)
	}
	page, err := a.currentPage()
	if err != nil {
		return err
	}
	out, err := page.FailTest(method)
	if err != nil {
		return err
	}
	a.out.outcome(out)
	if out.Redirect != nil {
		return a.navigate(ctx, out.Redirect)
	}
	a.out.paymentActions(page)
	return nil
}

func (a *App) status(_ context.Context, _ []string) error {
	switch {
	case a.view.page != nil:
		a.out.info("payment: " + string(a.view.page.State()))
		a.out.paymentActions(a.view.page)
	case a.view.grid != nil:
		a.out.grid(a.view.grid)
	case a.view.facility != nil:
		a.out.facility(a.view.facility)
	default:
		a.out.info("nothing open; try facilities or book <facilityId>")
	}
	return nil
}
