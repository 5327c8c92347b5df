package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

// translate maps gorm's not-found to a business code and every other store
// failure to a lookup error.
func translate(op string, err error, notFoundCode string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFoundCode != "" {
		return httperr.ErrBusiness(notFoundCode)
	}
	return httperr.Lookup(op, err)
}
