package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pitchplease/internal/audit"
	"pitchplease/internal/models"
)

// paymentScope parses "[facility <id>]" and fetches the matching payments.
func (a *App) paymentScope(ctx context.Context, args []string) ([]models.Payment, string, []string, error) {
	if len(args) >= 2 && args[0] == "facility" {
		id, err := parseID(args[1])
		if err != nil {
			return nil, "", nil, err
		}
		list, err := a.Backend.ListFacilityPayments(ctx, id)
		if err != nil {
			return nil, "", nil, fmt.Errorf("list facility payments: %w", err)
		}
		return list, fmt.Sprintf("facility_%d", id), args[2:], nil
	}
	userID, err := a.Session.UserID(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	list, err := a.Backend.ListUserPayments(ctx, userID)
	if err != nil {
		return nil, "", nil, fmt.Errorf("list payments: %w", err)
	}
	return list, "transactions", args, nil
}

func (a *App) transactions(ctx context.Context, args []string) error {
	list, _, rest, err := a.paymentScope(ctx, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usageError(commands["transactions"].usage)
	}
	a.out.payments(list)
	return nil
}

func (a *App) export(ctx context.Context, args []string) error {
	list, prefix, rest, err := a.paymentScope(ctx, args)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return usageError(commands["export"].usage)
	}

	path := filepath.Join(a.ExportDir, audit.Filename(prefix, time.Now()))
	if len(rest) == 1 {
		path = rest[0]
		if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
			path += ".xlsx"
		}
	}
	if err := audit.ExportPayments(path, "Transactions", list); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("path", path).Int("rows", len(list)).Msg("transactions exported")
	a.out.success(fmt.Sprintf("exported %d transactions to %s", len(list), path))
	return nil
}
