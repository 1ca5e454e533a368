package payment

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// bookingReference builds "<facilityId>-<last 6 digits of unix ms>-<4 random digits>".
func bookingReference(facilityID int64, now time.Time, rnd *rand.Rand) string {
	return fmt.Sprintf("%d-%06d-%04d", facilityID, now.UnixMilli()%1_000_000, rnd.Intn(10_000))
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft total %q: %w", s, err)
	}
	return v, nil
}
