package models

// Review is a user review of a facility.
type Review struct {
	ID         int64     `json:"reviewId"`
	FacilityID int64     `json:"facilityId"`
	UserID     int64     `json:"userId"`
	UserName   string    `json:"userName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  LocalTime `json:"createdAt"`
}

// ReviewRequest is the body of POST /facility_details/create_review.
type ReviewRequest struct {
	FacilityID int64  `json:"facility_id"`
	UserID     int64  `json:"user_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// MaxRating is the top of the rating scale.
const MaxRating = 5

// Stars renders the rating as filled and empty stars.
func (r *Review) Stars() string {
	rating := r.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	out := make([]rune, 0, MaxRating)
	for i := 0; i < MaxRating; i++ {
		if i < rating {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
