package cli

import (
	"context"
	"fmt"

	"pitchplease/internal/models"
)

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError(commands["login"].usage)
	}
	if err := a.Session.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.out.success(fmt.Sprintf("logged in as %s", args[0]))
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError(commands["register"].usage)
	}
	reg := models.Registration{UserName: args[0], Email: args[1], Password: args[2]}
	if err := a.Session.Register(ctx, reg); err != nil {
		return err
	}
	a.out.success("registration complete, you can log in now")
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.Session.Logout(ctx); err != nil {
		return err
	}
	a.view = view{}
	a.out.info("logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	if !a.Session.IsAuthenticated(ctx) {
		a.out.info("not logged in")
		return nil
	}
	id, err := a.Session.UserID(ctx)
	if err != nil {
		return err
	}
	name := a.Session.UserName(ctx)
	if name == "" {
		name = "user"
	}
	a.out.info(fmt.Sprintf("%s (id %d)", name, id))
	return nil
}
