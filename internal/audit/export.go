package audit

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pitchplease/internal/models"
)

var paymentColumns = []string{
	"Payment ID", "Booking ID", "Facility", "User", "Amount", "Method", "Status", "Transaction", "Created",
}

// Filename builds "<prefix>_<yyyy-mm-dd>.xlsx".
func Filename(prefix string, t time.Time) string {
	prefix = strings.NewReplacer(" ", "_", "/", "_").Replace(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "transactions"
	}
	return fmt.Sprintf("%s_%s.xlsx", prefix, t.Format(models.DateLayout))
}

// WritePayments writes payments as one sheet with a totals row.
func WritePayments(wr io.Writer, sheet string, payments []models.Payment) error {
	w := NewWriter()
	defer w.Close()

	if err := writePayments(w, sheet, payments); err != nil {
		return err
	}
	return w.Save(wr)
}

// ExportPayments writes payments to an xlsx file at path.
func ExportPayments(path, sheet string, payments []models.Payment) error {
	w := NewWriter()
	defer w.Close()

	if err := writePayments(w, sheet, payments); err != nil {
		return err
	}
	if err := w.SaveToFile(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writePayments(w *Writer, sheet string, payments []models.Payment) error {
	if err := w.AddSheet(sheet); err != nil {
		return err
	}
	if err := w.WriteHeader(paymentColumns); err != nil {
		return err
	}

	var total float64
	for _, p := range payments {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02 15:04")
		}
		if err := w.WriteRow([]any{
			p.ID, p.BookingID, p.FacilityName, p.UserName, p.Amount,
			p.PaymentMethod, p.PaymentStatus, p.TransactionID, created,
		}); err != nil {
			return fmt.Errorf("write payment %d: %w", p.ID, err)
		}
		total += p.Amount
	}
	return w.WriteRow([]any{"Total", "", "", "", total})
}
