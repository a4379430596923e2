package common

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"tbs/src/db"
	"tbs/src/lib"
	"tbs/src/models"
	"tbs/src/types"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeGDS stands in for the flight GDS: token endpoint, re-pricing and
// order creation, with per-test response shaping.
type fakeGDS struct {
	srv *httptest.Server

	serverTotal   string
	pricingStatus int
	orderStatus   int

	pricingCalls int
	orderCalls   int
}

func newFakeGDS() *fakeGDS {
	f := &fakeGDS{
		serverTotal:   "450000.00",
		pricingStatus: http.StatusOK,
		orderStatus:   http.StatusOK,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":1799,"token_type":"Bearer"}`)
	})
	mux.HandleFunc("/v1/shopping/flight-offers/pricing", func(w http.ResponseWriter, r *http.Request) {
		f.pricingCalls++
		w.Header().Set("Content-Type", "application/json")
		if f.pricingStatus != http.StatusOK {
			w.WriteHeader(f.pricingStatus)
			fmt.Fprint(w, `{"errors":[{"detail":"UNABLE TO PROCESS"}]}`)
			return
		}
		fmt.Fprintf(w, `{"data":{"type":"flight-offers-pricing","flightOffers":[{"id":"1","price":{"grandTotal":"%s","currency":"NGN"},"validatingAirlineCodes":["KL"]}]}}`, f.serverTotal)
	})
	mux.HandleFunc("/v1/booking/flight-orders", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls++
		w.Header().Set("Content-Type", "application/json")
		if f.orderStatus != http.StatusOK {
			w.WriteHeader(f.orderStatus)
			fmt.Fprint(w, `{"errors":[{"detail":"SEGMENT SELL FAILURE"}]}`)
			return
		}
		fmt.Fprint(w, `{"data":{"type":"flight-order","id":"eJzTd9f3NjIJ","associatedRecords":[{"reference":"ABC123","originSystemCode":"GDS"}]}}`)
	})
	f.srv = httptest.NewServer(mux)
	return f
}

type BookingWorkflowTestSuite struct {
	suite.Suite
	gds *fakeGDS
}

func (s *BookingWorkflowTestSuite) SetupTest() {
	s.T().Setenv("REDIS_HOST", "")
	_db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(_db.AutoMigrate(
		&models.Merchant{},
		&models.Booking{},
		&models.Order{},
		&models.AuditLog{},
	))
	db.NewDB(_db)

	s.gds = newFakeGDS()
	lib.NewAmadeusClient(&lib.AmadeusClient{
		BaseURL:      s.gds.srv.URL,
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		HTTPClient:   s.gds.srv.Client(),
	})
}

func (s *BookingWorkflowTestSuite) TearDownTest() {
	s.gds.srv.Close()
	lib.NewAmadeusClient(&lib.AmadeusClient{})
}

func clientOffer() types.JSONB {
	return types.JSONB{
		"id": "1",
		"price": map[string]any{
			"grandTotal": "450000.00",
			"currency":   "NGN",
		},
		"validatingAirlineCodes": []any{"KL"},
	}
}

func bookingInput() *BookingInput {
	return &BookingInput{
		Offer: clientOffer(),
		Passengers: []types.Passenger{{
			FirstName:   "Ada",
			LastName:    "Obi",
			DateOfBirth: "1990-04-12",
		}},
		Contacts: types.ContactInfo{
			FirstName: "Ada",
			LastName:  "Obi",
			Email:     "ada@example.com",
			Phone:     "08030000000",
		},
		Source: "web",
	}
}

func (s *BookingWorkflowTestSuite) auditLogs() []models.AuditLog {
	var logs []models.AuditLog
	s.Require().NoError(db.GetDb().Order("created_at asc").Find(&logs).Error)
	return logs
}

func (s *BookingWorkflowTestSuite) TestBookingProceedsWhenPriceConfirmed() {
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().NoError(err)
	s.Equal("ABC123", outcome.BookingRef)
	s.Equal("eJzTd9f3NjIJ", outcome.OrderID)
	s.Equal(1, s.gds.pricingCalls)
	s.Equal(1, s.gds.orderCalls)

	var booking models.Booking
	s.Require().NoError(db.GetDb().First(&booking, outcome.Booking.ID).Error)
	s.Equal("ABC123", booking.BookingRef)
	s.Equal(450000.0, booking.TotalFare)
	s.Equal("KL", booking.Airline)
	s.Equal("confirmed", booking.Status)
	s.Equal("NGN", booking.Currency)

	logs := s.auditLogs()
	s.Require().Len(logs, 2)
	s.Equal("flight-offers-pricing", logs[0].Action)
	s.Equal("flight-create-orders", logs[1].Action)
	s.Equal(types.PROVIDER_AMADEUS, logs[0].Provider)
}

func (s *BookingWorkflowTestSuite) TestBookingRejectedOnPriceDrift() {
	s.gds.serverTotal = "455000.00"
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().ErrorIs(err, ErrPriceChanged)
	s.Nil(outcome)
	s.Equal(0, s.gds.orderCalls)

	var count int64
	s.Require().NoError(db.GetDb().Model(&models.Booking{}).Count(&count).Error)
	s.Zero(count)

	logs := s.auditLogs()
	s.Require().Len(logs, 1)
	s.Equal("flight-offers-pricing", logs[0].Action)
}

func (s *BookingWorkflowTestSuite) TestFractionalDriftWithinToleranceAccepted() {
	s.gds.serverTotal = "450000.005"
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().NoError(err)
	s.InDelta(450000.005, outcome.Booking.TotalFare, 1e-9)
}

func (s *BookingWorkflowTestSuite) TestPricingFailureRejectsBooking() {
	s.gds.pricingStatus = http.StatusInternalServerError
	_, err := CreateBooking(context.Background(), bookingInput())
	s.Require().ErrorIs(err, ErrPriceVerification)

	var count int64
	s.Require().NoError(db.GetDb().Model(&models.Booking{}).Count(&count).Error)
	s.Zero(count)

	logs := s.auditLogs()
	s.Require().Len(logs, 1)
	s.NotEmpty(logs[0].Error)
}

func (s *BookingWorkflowTestSuite) TestOrderFailureFallsBackToLocalReservation() {
	s.gds.orderStatus = http.StatusInternalServerError
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().NoError(err)
	s.True(strings.HasPrefix(outcome.BookingRef, "BK"))
	s.True(strings.HasPrefix(outcome.OrderID, "ORD-"))

	var booking models.Booking
	s.Require().NoError(db.GetDb().Where("booking_ref = ?", outcome.BookingRef).First(&booking).Error)
	s.Equal("confirmed", booking.Status)
	s.Equal(450000.0, booking.TotalFare)

	logs := s.auditLogs()
	s.Require().Len(logs, 2)
	s.Equal("flight-create-orders", logs[1].Action)
	s.NotEmpty(logs[1].Error)
}

func (s *BookingWorkflowTestSuite) TestUnconfiguredClientSkipsGDS() {
	lib.NewAmadeusClient(&lib.AmadeusClient{})
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().NoError(err)
	s.True(strings.HasPrefix(outcome.BookingRef, "BK"))
	s.Equal(450000.0, outcome.Booking.TotalFare)
	s.Equal(0, s.gds.pricingCalls)
	s.Empty(s.auditLogs())
}

func (s *BookingWorkflowTestSuite) TestAuditFailureDoesNotAffectOutcome() {
	s.Require().NoError(db.GetDb().Migrator().DropTable(&models.AuditLog{}))
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().NoError(err)
	s.Equal("ABC123", outcome.BookingRef)

	var count int64
	s.Require().NoError(db.GetDb().Model(&models.Booking{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *BookingWorkflowTestSuite) TestBookingRoundTrip() {
	outcome, err := CreateBooking(context.Background(), bookingInput())
	s.Require().NoError(err)

	var reloaded models.Booking
	s.Require().NoError(db.GetDb().First(&reloaded, outcome.Booking.ID).Error)
	s.Equal(outcome.BookingRef, reloaded.BookingRef)
	s.Equal(outcome.Booking.TotalFare, reloaded.TotalFare)
	s.Require().Len(reloaded.Passengers, 1)
	first, ok := reloaded.Passengers[0].(map[string]any)
	s.Require().True(ok)
	s.Equal("Ada", first["first_name"])
	s.Equal("ada@example.com", reloaded.Metadata["contact_email"])
}

func (s *BookingWorkflowTestSuite) TestOfferWithoutIdStillBooks() {
	input := bookingInput()
	delete(input.Offer, "id")
	outcome, err := CreateBooking(context.Background(), input)
	s.Require().NoError(err)
	s.Equal("ABC123", outcome.BookingRef)
	s.Equal(450000.0, outcome.Booking.TotalFare)
}

func (s *BookingWorkflowTestSuite) TestOfferTotalPaths() {
	s.Equal(450000.0, OfferTotal(clientOffer()))
	s.Equal(1200.5, OfferTotal(types.JSONB{"price": map[string]any{"total": "1200.50"}}))
	s.Zero(OfferTotal(types.JSONB{}))
}

func (s *BookingWorkflowTestSuite) TestBuildOrderPayloadDefaults() {
	input := bookingInput()
	payload := BuildOrderPayload(input.Offer, input.Passengers, input.Contacts)
	data, ok := payload["data"].(types.JSONB)
	s.Require().True(ok)
	travelers, ok := data["travelers"].([]any)
	s.Require().True(ok)
	s.Require().Len(travelers, 1)
	traveler := travelers[0].(types.JSONB)
	s.Equal("1", traveler["id"])
	s.Equal("MALE", traveler["gender"])
	_, hasDocs := traveler["documents"]
	s.False(hasDocs, "no documents without a passport number")

	agreement := data["ticketingAgreement"].(types.JSONB)
	s.Equal("DELAY_TO_CANCEL", agreement["option"])
	s.Equal("6D", agreement["delay"])
}

func (s *BookingWorkflowTestSuite) TestBuildOrderPayloadWithPassport() {
	input := bookingInput()
	input.Passengers[0].PassportNumber = "A01234567"
	input.Passengers[0].PassportExpiry = "2030-01-01"
	payload := BuildOrderPayload(input.Offer, input.Passengers, input.Contacts)
	traveler := payload["data"].(types.JSONB)["travelers"].([]any)[0].(types.JSONB)
	docs, ok := traveler["documents"].([]any)
	s.Require().True(ok)
	s.Require().Len(docs, 1)
	doc := docs[0].(types.JSONB)
	s.Equal("A01234567", doc["number"])
	s.Equal("NG", doc["nationality"])
}

func TestBookingWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(BookingWorkflowTestSuite))
}
