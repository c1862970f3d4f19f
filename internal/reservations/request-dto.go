package reservations

// CreateReservationRequest is what a vendor submits for a booth. It carries
// no price: pricing always comes from the catalog.
type CreateReservationRequest struct {
	EventID   string `json:"-" validate:"required,max=64"`
	VendorRef string `json:"-" validate:"required,max=128"`

	BoothID    int    `json:"booth_id" validate:"required,gt=0"`
	VendorName string `json:"vendor_name" validate:"required,max=200"`
	Category   string `json:"category" validate:"required"`

	PersonName string `json:"person_name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"required,max=50"`
	IsLocal    *bool  `json:"is_local" validate:"required"`

	Instagram string `json:"instagram" validate:"omitempty,max=255"`
	Facebook  string `json:"facebook" validate:"omitempty,max=255"`

	FoodItems    string `json:"food_items"`
	ClothingType string `json:"clothing_type"`
	JewelryType  string `json:"jewelry_type"`
	CraftDetails string `json:"craft_details"`
	NeedPower    bool   `json:"need_power"`
	Watts        int    `json:"watts" validate:"gte=0,lte=100000"`

	Notes         string `json:"notes" validate:"omitempty,max=2000"`
	TermsAccepted bool   `json:"terms_accepted"`
	PromoCode     string `json:"promo_code" validate:"omitempty,max=64"`
}

type TransitionRequest struct {
	Status       string `json:"status" binding:"required"`
	ExpectedFrom string `json:"expected_from"`
}

type ListReservationsQuery struct {
	Q        string `form:"q"`
	Status   string `form:"status"`
	Category string `form:"category"`
	EventID  string `form:"eventId"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

type StatsQuery struct {
	EventID string `form:"eventId" binding:"omitempty,max=64"`
}
