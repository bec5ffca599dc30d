package api

import (
	"errors"
	"net/http"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/stay"
	reqdto "cappa-booking/internal/handler/dto/request"
	resdto "cappa-booking/internal/handler/dto/response"
	"cappa-booking/internal/handler/middleware"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"
	"cappa-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservations commands.ReservationCommands
	reads        queries.ReservationQueries
}

func NewReservationHandler(reservations commands.ReservationCommands, reads queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		reads:        reads,
	}
}

// @Summary Get a reservation
// @Tags reservation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/hotel/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
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

	view, err := h.reads.GetReservation(c.Request.Context(), reservationID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List the caller's reservations
// @Tags reservation
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ReservationListResponse
// @Router /api/v1/hotel/reservations/history [get]
func (h *ReservationHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	items, err := h.reads.GetHistory(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Cancel a pending reservation
// @Tags reservation
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/hotel/reservations/{id}/cancel [patch]
func (h *ReservationHandler) Cancel(c *gin.Context) {
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

	if err := h.reservations.Cancel(c.Request.Context(), userID, reservationID); err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound), errors.Is(err, errs.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, booking.ErrReservationFinal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation can no longer be cancelled",
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

// @Summary Modify a pending reservation
// @Description Change stay dates or guest counts; the price is recomputed
// @Tags reservation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ModifyReservationRequest true "Changes"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/hotel/reservations/{id}/modify [patch]
func (h *ReservationHandler) Modify(c *gin.Context) {
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

	var req reqdto.ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservations.Modify(c.Request.Context(), userID, reservationID, req.ToInput()); err != nil {
		var ve stay.ValidationErrors
		switch {
		case errors.Is(err, errs.ErrReservationNotFound), errors.Is(err, errs.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid stay request",
				"fields": ve,
			})
		case errors.Is(err, booking.ErrReservationFinal), errors.Is(err, booking.ErrAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Only pending reservations can be modified",
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
