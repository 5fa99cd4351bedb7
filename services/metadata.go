package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"booking-service/models"

	"github.com/go-playground/validator/v10"
)

// Checkout session metadata keys.
const (
	MetaAdults       = "adults"
	MetaCheckinDate  = "checkinDate"
	MetaCheckoutDate = "checkoutDate"
	MetaChildren     = "children"
	MetaHotelRoom    = "hotelRoom"
	MetaNumberOfDays = "numberOfDays"
	MetaUser         = "user"
	MetaDiscount     = "discount"
	MetaTotalPrice   = "totalPrice"
)

// ErrMissingMetadata is returned when a completed checkout session carries no metadata.
var ErrMissingMetadata = errors.New("metadata is missing")

// MetadataError reports a metadata field that could not be coerced or is required but blank.
type MetadataError struct {
	Field string
	Value string
	Err   error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

var (
	errNotNumeric = errors.New("not a number")
	errNotInteger = errors.New("not an integer")
	errRequired   = errors.New("is required")
)

var validate = validator.New()

// ParseBookingMetadata coerces checkout session metadata into a BookingRequest.
// Every numeric key must be present. A blank value becomes 0; anything else
// that does not parse as a finite number is rejected. No range or cross-field checks are made.
func ParseBookingMetadata(md map[string]string) (models.BookingRequest, error) {
	if len(md) == 0 {
		return models.BookingRequest{}, ErrMissingMetadata
	}

	req := models.BookingRequest{
		CheckinDate:  md[MetaCheckinDate],
		CheckoutDate: md[MetaCheckoutDate],
		HotelRoom:    strings.TrimSpace(md[MetaHotelRoom]),
		User:         strings.TrimSpace(md[MetaUser]),
	}

	var err error
	if req.Adults, err = parseInt(md, MetaAdults); err != nil {
		return req, err
	}
	if req.Children, err = parseInt(md, MetaChildren); err != nil {
		return req, err
	}
	if req.NumberOfDays, err = parseInt(md, MetaNumberOfDays); err != nil {
		return req, err
	}
	if req.Discount, err = parseFloat(md, MetaDiscount); err != nil {
		return req, err
	}
	if req.TotalPrice, err = parseFloat(md, MetaTotalPrice); err != nil {
		return req, err
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := metadataKey(verrs[0].StructField())
			return req, &MetadataError{Field: field, Value: md[field], Err: errRequired}
		}
		return req, err
	}
	return req, nil
}

// EncodeBookingMetadata is the inverse of ParseBookingMetadata. It is what the
// checkout session is created with.
func EncodeBookingMetadata(req models.BookingRequest) map[string]string {
	return map[string]string{
		MetaAdults:       strconv.Itoa(req.Adults),
		MetaCheckinDate:  req.CheckinDate,
		MetaCheckoutDate: req.CheckoutDate,
		MetaChildren:     strconv.Itoa(req.Children),
		MetaHotelRoom:    req.HotelRoom,
		MetaNumberOfDays: strconv.Itoa(req.NumberOfDays),
		MetaUser:         req.User,
		MetaDiscount:     strconv.FormatFloat(req.Discount, 'f', -1, 64),
		MetaTotalPrice:   strconv.FormatFloat(req.TotalPrice, 'f', -1, 64),
	}
}

func parseFloat(md map[string]string, key string) (float64, error) {
	raw, ok := md[key]
	if !ok {
		return 0, &MetadataError{Field: key, Err: errRequired}
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &MetadataError{Field: key, Value: raw, Err: errNotNumeric}
	}
	return f, nil
}

func parseInt(md map[string]string, key string) (int, error) {
	f, err := parseFloat(md, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &MetadataError{Field: key, Value: md[key], Err: errNotInteger}
	}
	return int(f), nil
}

func metadataKey(structField string) string {
	switch structField {
	case "HotelRoom":
		return MetaHotelRoom
	case "User":
		return MetaUser
	default:
		return structField
	}
}
