package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pitchplease/internal/models"
)

func (a *App) facilities(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}
	list, err := a.Backend.ListFacilities(ctx)
	if err != nil {
		return fmt.Errorf("list facilities: %w", err)
	}
	a.out.facilityList(list, page)
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	kv, rest := splitKV(args)
	if len(rest) > 0 {
		return usageError(commands["search"].usage)
	}
	filter := models.SearchFilter{City: kv["city"], FacilityType: kv["type"]}
	var (
		page int
		err  error
	)
	if v, ok := kv["page"]; ok {
		if page, err = pageArg([]string{v}); err != nil {
			return err
		}
	}
	if v, ok := kv["min"]; ok {
		if filter.MinPrice, err = parseMoney(v); err != nil {
			return err
		}
	}
	if v, ok := kv["max"]; ok {
		if filter.MaxPrice, err = parseMoney(v); err != nil {
			return err
		}
	}
	list, err := a.Backend.SearchFacilities(ctx, filter)
	if err != nil {
		return fmt.Errorf("search facilities: %w", err)
	}
	a.out.facilityList(list, page)
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(commands["show"].usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	f, err := a.Backend.GetFacility(ctx, id)
	if err != nil {
		return fmt.Errorf("get facility: %w", err)
	}
	a.view = view{facility: f}
	a.out.facility(f)
	return a.listReviews(ctx, nil)
}

func (a *App) listReviews(ctx context.Context, args []string) error {
	facilityID, err := a.facilityArg(args)
	if err != nil {
		return err
	}
	userID := a.currentUserID(ctx)
	list, err := a.Reviews.List(ctx, facilityID, userID)
	if err != nil {
		return err
	}
	a.out.info("Reviews:")
	a.out.reviews(list)
	return nil
}

func (a *App) review(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError(commands["review"].usage)
	}
	if a.view.facility == nil {
		return usageError("show <facilityId> first")
	}
	rating, err := strconv.Atoi(args[0])
	if err != nil {
		rating = 0
	}
	userID, err := a.Session.UserID(ctx)
	if err != nil {
		return err
	}
	if err := a.Reviews.Create(ctx, a.view.facility.ID, userID, rating, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.out.success("Your review has been submitted successfully!")
	return a.listReviews(ctx, nil)
}

func (a *App) unreview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(commands["unreview"].usage)
	}
	if a.view.facility == nil {
		return usageError("show <facilityId> first")
	}
	reviewID, err := parseID(args[0])
	if err != nil {
		return err
	}
	userID, err := a.Session.UserID(ctx)
	if err != nil {
		return err
	}
	if err := a.Reviews.Delete(ctx, a.view.facility.ID, reviewID, userID); err != nil {
		return err
	}
	a.out.success("review deleted")
	return a.listReviews(ctx, nil)
}

func (a *App) mine(ctx context.Context, _ []string) error {
	userID, err := a.Session.UserID(ctx)
	if err != nil {
		return err
	}
	list, err := a.Backend.ListOwnedFacilities(ctx, userID)
	if err != nil {
		return fmt.Errorf("list owned facilities: %w", err)
	}
	a.out.facilityList(list, 0)
	return nil
}

func (a *App) createFacility(ctx context.Context, args []string) error {
	kv, _ := splitKV(args)
	if kv["name"] == "" || kv["rate"] == "" {
		return usageError(commands["create-facility"].usage)
	}
	userID, err := a.Session.UserID(ctx)
	if err != nil {
		return err
	}
	in := models.FacilityInput{OwnerID: userID}
	if err := applyFacilityFields(&in, kv); err != nil {
		return err
	}
	f, err := a.Backend.CreateFacility(ctx, in)
	if err != nil {
		return fmt.Errorf("create facility: %w", err)
	}
	a.out.success(fmt.Sprintf("facility %q created (#%d)", f.Name, f.ID))
	return nil
}

func (a *App) updateFacility(ctx context.Context, args []string) error {
	kv, rest := splitKV(args)
	if len(rest) != 1 || len(kv) == 0 {
		return usageError(commands["update-facility"].usage)
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}
	current, err := a.Backend.GetFacility(ctx, id)
	if err != nil {
		return fmt.Errorf("get facility: %w", err)
	}
	in := models.FacilityInput{
		ID:           id,
		Name:         current.Name,
		Description:  current.Description,
		Address:      current.Address,
		City:         current.City,
		FacilityType: current.FacilityType,
		HourlyRate:   current.HourlyRate,
		OwnerID:      current.OwnerID,
	}
	if err := applyFacilityFields(&in, kv); err != nil {
		return err
	}
	f, err := a.Backend.UpdateFacility(ctx, in)
	if err != nil {
		return fmt.Errorf("update facility: %w", err)
	}
	a.out.success(fmt.Sprintf("facility #%d updated", f.ID))
	return nil
}

func (a *App) deleteFacility(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(commands["delete-facility"].usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.Backend.DeleteFacility(ctx, id); err != nil {
		return fmt.Errorf("delete facility: %w", err)
	}
	if a.view.facility != nil && a.view.facility.ID == id {
		a.view = view{}
	}
	a.out.success(fmt.Sprintf("facility #%d deleted", id))
	return nil
}

func applyFacilityFields(in *models.FacilityInput, kv map[string]string) error {
	for k, v := range kv {
		switch k {
		case "name":
			in.Name = v
		case "description":
			in.Description = v
		case "address":
			in.Address = v
		case "city":
			in.City = v
		case "type":
			in.FacilityType = v
		case "rate":
			rate, err := parseMoney(v)
			if err != nil {
				return err
			}
			in.HourlyRate = rate
		default:
			return usageError(fmt.Sprintf("unknown field %q", k))
		}
	}
	return nil
}

// facilityArg returns the facility named in args, or the one on screen.
func (a *App) facilityArg(args []string) (int64, error) {
	if len(args) > 0 {
		return parseID(args[0])
	}
	if a.view.facility == nil {
		return 0, usageError("no facility selected, show <facilityId> first")
	}
	return a.view.facility.ID, nil
}

// currentUserID returns 0 for anonymous users.
func (a *App) currentUserID(ctx context.Context) int64 {
	if !a.Session.IsAuthenticated(ctx) {
		return 0
	}
	id, err := a.Session.UserID(ctx)
	if err != nil {
		return 0
	}
	return id
}
