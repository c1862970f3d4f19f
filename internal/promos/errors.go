package promos

import "errors"

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrDuplicateCode = errors.New("promo code already exists")
	ErrInvalidPromo  = errors.New("invalid promo code definition")
)
