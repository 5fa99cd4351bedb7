package services

import (
	"errors"
	"testing"

	"booking-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleMetadata() map[string]string {
	return map[string]string{
		"adults":       "2",
		"checkinDate":  "2024-01-01",
		"checkoutDate": "2024-01-05",
		"children":     "0",
		"hotelRoom":    "room42",
		"numberOfDays": "4",
		"user":         "u1",
		"discount":     "0",
		"totalPrice":   "400",
	}
}

func TestParseBookingMetadata(t *testing.T) {
	t.Run("Success - coerces numeric fields", func(t *testing.T) {
		req, err := ParseBookingMetadata(exampleMetadata())
		require.NoError(t, err)

		assert.Equal(t, models.BookingRequest{
			Adults:       2,
			CheckinDate:  "2024-01-01",
			CheckoutDate: "2024-01-05",
			Children:     0,
			HotelRoom:    "room42",
			NumberOfDays: 4,
			User:         "u1",
			Discount:     0,
			TotalPrice:   400,
		}, req)
	})

	t.Run("Success - decimals and whitespace", func(t *testing.T) {
		md := exampleMetadata()
		md["discount"] = " 12.5 "
		md["totalPrice"] = "349.99"

		req, err := ParseBookingMetadata(md)
		require.NoError(t, err)
		assert.Equal(t, 12.5, req.Discount)
		assert.Equal(t, 349.99, req.TotalPrice)
	})

	t.Run("Success - blank numeric becomes zero", func(t *testing.T) {
		md := exampleMetadata()
		md["children"] = ""
		md["discount"] = " "

		req, err := ParseBookingMetadata(md)
		require.NoError(t, err)
		assert.Equal(t, 0, req.Children)
		assert.Equal(t, 0.0, req.Discount)
	})

	t.Run("Failure - absent numeric key is rejected", func(t *testing.T) {
		for _, field := range []string{MetaAdults, MetaNumberOfDays, MetaDiscount, MetaTotalPrice} {
			md := exampleMetadata()
			delete(md, field)

			_, err := ParseBookingMetadata(md)
			var mdErr *MetadataError
			require.True(t, errors.As(err, &mdErr), "field %s", field)
			assert.Equal(t, field, mdErr.Field)
			assert.ErrorIs(t, err, errRequired)
		}
	})

	t.Run("Success - no cross-field checks", func(t *testing.T) {
		md := exampleMetadata()
		md["checkinDate"] = "2024-02-10"
		md["checkoutDate"] = "2024-02-01"
		md["adults"] = "-3"

		req, err := ParseBookingMetadata(md)
		require.NoError(t, err)
		assert.Equal(t, -3, req.Adults)
	})

	t.Run("Failure - missing metadata", func(t *testing.T) {
		_, err := ParseBookingMetadata(nil)
		assert.ErrorIs(t, err, ErrMissingMetadata)

		_, err = ParseBookingMetadata(map[string]string{})
		assert.ErrorIs(t, err, ErrMissingMetadata)
	})

	t.Run("Failure - non-numeric values are rejected", func(t *testing.T) {
		for field, value := range map[string]string{
			"adults":     "two",
			"totalPrice": "NaN",
			"discount":   "Inf",
			"children":   "1,5",
		} {
			md := exampleMetadata()
			md[field] = value

			_, err := ParseBookingMetadata(md)
			var mdErr *MetadataError
			require.True(t, errors.As(err, &mdErr), "field %s", field)
			assert.Equal(t, field, mdErr.Field)
			assert.Equal(t, value, mdErr.Value)
			assert.ErrorIs(t, err, errNotNumeric)
		}
	})

	t.Run("Failure - integer fields reject fractions", func(t *testing.T) {
		md := exampleMetadata()
		md["numberOfDays"] = "4.5"

		_, err := ParseBookingMetadata(md)
		assert.ErrorIs(t, err, errNotInteger)
		assert.Contains(t, err.Error(), "numberOfDays")
	})

	t.Run("Failure - hotel room and user are required", func(t *testing.T) {
		md := exampleMetadata()
		md["hotelRoom"] = "  "

		_, err := ParseBookingMetadata(md)
		var mdErr *MetadataError
		require.True(t, errors.As(err, &mdErr))
		assert.Equal(t, MetaHotelRoom, mdErr.Field)
		assert.ErrorIs(t, err, errRequired)

		md = exampleMetadata()
		delete(md, "user")
		_, err = ParseBookingMetadata(md)
		require.True(t, errors.As(err, &mdErr))
		assert.Equal(t, MetaUser, mdErr.Field)
	})
}

func TestEncodeBookingMetadata_RoundTrip(t *testing.T) {
	req := models.BookingRequest{
		Adults:       3,
		CheckinDate:  "2024-06-01",
		CheckoutDate: "2024-06-04",
		Children:     1,
		HotelRoom:    "room7",
		NumberOfDays: 3,
		User:         "u9",
		Discount:     15,
		TotalPrice:   255.75,
	}

	md := EncodeBookingMetadata(req)
	assert.Equal(t, "255.75", md[MetaTotalPrice])
	assert.Equal(t, "3", md[MetaAdults])

	got, err := ParseBookingMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}
