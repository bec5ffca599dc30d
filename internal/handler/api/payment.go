package api

import (
	"errors"
	"net/http"

	"cappa-booking/internal/domain/booking"
	reqdto "cappa-booking/internal/handler/dto/request"
	resdto "cappa-booking/internal/handler/dto/response"
	"cappa-booking/internal/handler/middleware"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	payments commands.PaymentCommands
}

func NewPaymentHandler(payments commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary Initialize a hosted checkout
// @Description Hand the reservation off to the named gateway and return the checkout URL
// @Tags payment
// @Security BearerAuth
// @Produce json
// @Param gateway path string true "Gateway name" Enums(paystack, flutterwave)
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.InitiationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/payment/{gateway}/initialize/{id} [post]
func (h *PaymentHandler) Initialize(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return
	}

	result, err := h.payments.Initiate(c.Request.Context(), userID, reservationID, c.Param("gateway"))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnsupportedGateway):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unsupported payment gateway",
			})
		case errors.Is(err, errs.ErrReservationNotFound), errors.Is(err, errs.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, booking.ErrAlreadyPaid), errors.Is(err, errs.ErrReservationFinal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation is not awaiting payment",
			})
		case errors.Is(err, errs.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromInitiationResult(result))
}

// @Summary Verify a payment after the gateway redirect
// @Description Reconcile the reference from the return redirect against the gateway
// @Tags payment
// @Security BearerAuth
// @Produce json
// @Param reference query string false "Paystack reference"
// @Param trxref query string false "Paystack trxref alias"
// @Param transaction_id query string false "Flutterwave transaction id"
// @Success 200 {object} resdto.VerificationResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /api/v1/payment/verify [get]
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	params := commands.VerifyParams{
		Reference:     c.Query("reference"),
		TrxRef:        c.Query("trxref"),
		TransactionID: c.Query("transaction_id"),
	}

	outcome, err := h.payments.Verify(c.Request.Context(), userID, params)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReferenceMissing):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No payment reference to verify",
			})
		case errors.Is(err, errs.ErrUnsupportedGateway):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unsupported payment gateway",
			})
		case errors.Is(err, errs.ErrVerificationFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment was not successful",
			})
		case errors.Is(err, errs.ErrStaleSnapshot):
			c.JSON(http.StatusGone, gin.H{
				"error": "Booking flow is stale, start over",
			})
		case errors.Is(err, errs.ErrReservationNotFound), errors.Is(err, errs.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Could not verify payment, please retry",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVerificationOutcome(outcome))
}

// @Summary Request a refund for a paid reservation
// @Tags payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RefundRequest true "Refund reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/hotel/payment/refund/request/{id} [post]
func (h *PaymentHandler) RequestRefund(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return
	}

	var req reqdto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Refund reason is required",
		})
		return
	}

	if err := h.payments.RequestRefund(c.Request.Context(), userID, reservationID, req.Reason); err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Refund reason is required",
			})
		case errors.Is(err, errs.ErrReservationNotFound), errors.Is(err, errs.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, booking.ErrReservationNotPaid), errors.Is(err, booking.ErrReservationFinal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Only paid reservations can be refunded",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
