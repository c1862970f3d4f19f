package reservations

import (
	"errors"
	"reflect"
	"strings"

	"boothreserve/internal/catalog"

	"github.com/go-playground/validator/v10"
)

var requestFieldNames = map[string]string{
	"EventID":   "eventId",
	"VendorRef": "vendor_ref",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name, ok := requestFieldNames[fld.Name]; ok {
			return name
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateCreate collects every problem with req, including the fields that
// only the vendor's category requires. It returns nil or a *ValidationError.
func validateCreate(v *validator.Validate, req *CreateReservationRequest) error {
	verr := &ValidationError{}

	if err := v.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), describe(fe))
		}
	}

	if !req.TermsAccepted {
		verr.add("terms_accepted", "must be accepted")
	}

	if category, err := catalog.ParseVendorCategory(req.Category); err == nil {
		switch category {
		case catalog.CategoryFood:
			requireText(verr, "food_items", req.FoodItems)
		case catalog.CategoryClothing:
			requireText(verr, "clothing_type", req.ClothingType)
		case catalog.CategoryJewelry:
			requireText(verr, "jewelry_type", req.JewelryType)
		case catalog.CategoryCraft:
			requireText(verr, "craft_details", req.CraftDetails)
		}
	}

	if verr.empty() {
		return nil
	}
	return verr
}

func requireText(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, "is required")
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
