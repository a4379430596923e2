package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"tbs/src/common"
	"tbs/src/config"
	"tbs/src/db"
	"tbs/src/lib"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

func paystackWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/payments/verify", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.JSON(http.StatusServiceUnavailable, types.Fail("Could not read request body"))
			return
		}
		signature := ctx.GetHeader("x-paystack-signature")
		if !lib.VerifyPaystackSignature(payload, signature) {
			log.Println("[Paystack] Webhook signature mismatch")
			common.RecordAudit(&models.AuditLog{
				Provider: types.PROVIDER_PAYSTACK,
				Action:   "webhook.signature_failed",
				Method:   "POST",
				Request:  types.JSONB{"body_size": len(payload)},
				Error:    "signature verification failed",
			})
			ctx.JSON(http.StatusUnauthorized, types.Fail("Invalid signature"))
			return
		}
		event := gjson.GetBytes(payload, "event").String()
		log.Printf("[PaystackEvent] %s\n", event)
		var raw types.JSONB
		if err := json.Unmarshal(payload, &raw); err != nil {
			raw = types.JSONB{"raw": string(payload)}
		}
		common.RecordAudit(&models.AuditLog{
			Provider: types.PROVIDER_PAYSTACK,
			Action:   "webhook." + event,
			Method:   "POST",
			Request:  raw,
		})

		switch event {
		case "charge.success":
			upsertTransaction(payload, types.TRANSACTION_SUCCESS)
		case "charge.failed":
			upsertTransaction(payload, types.TRANSACTION_FAILED)
		}
		ctx.JSON(http.StatusOK, types.Ok(nil))
	})
	return apiv1
}

// upsertTransaction matches by gateway reference and gateway name; the
// webhook is the only writer of transaction status.
func upsertTransaction(payload []byte, status types.TransactionStatus) {
	reference := gjson.GetBytes(payload, "data.reference").String()
	if reference == "" {
		log.Println("[Paystack] Event carries no reference. Skipping")
		return
	}
	// Paystack amounts arrive in the currency's subunit.
	amount := gjson.GetBytes(payload, "data.amount").Float() / 100
	currency := gjson.GetBytes(payload, "data.currency").String()
	if currency == "" {
		currency = config.DEFAULT_CURRENCY
	}
	var metadata types.JSONB
	if md := gjson.GetBytes(payload, "data.metadata"); md.IsObject() {
		json.Unmarshal([]byte(md.Raw), &metadata)
	}
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		err := tx.
			Model(&models.Transaction{}).
			Where("reference = ? AND gateway = ?", reference, config.PAYMENT_GATEWAY).
			First(&txn).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Transaction{
				Amount:    amount,
				Currency:  currency,
				Status:    status,
				Reference: reference,
				Gateway:   config.PAYMENT_GATEWAY,
				Metadata:  metadata,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.
			Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]any{
				"status":   status,
				"amount":   amount,
				"currency": currency,
			}).
			Error
	})
	if err != nil {
		log.Printf("[Paystack] Error processing transaction [%s]: %s\n", reference, err.Error())
	}
}
