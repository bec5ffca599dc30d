package api

import (
	"errors"
	"net/http"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"
	reqdto "cappa-booking/internal/handler/dto/request"
	resdto "cappa-booking/internal/handler/dto/response"
	"cappa-booking/internal/handler/httperr"
	"cappa-booking/internal/handler/middleware"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings commands.BookingCommands
	catalog  room.Catalog
}

func NewBookingHandler(bookings commands.BookingCommands, catalog room.Catalog) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		catalog:  catalog,
	}
}

// @Summary List bookable room types
// @Tags booking
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /api/v1/hotel/rooms [get]
func (h *BookingHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalog(h.catalog))
}

// @Summary Start a booking flow
// @Description Validate the stay request and open a resumable flow
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.IntakeRequest true "Stay request"
// @Success 201 {object} resdto.FlowResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {object} httperr.Response
// @Router /api/v1/hotel/booking-flows [post]
func (h *BookingHandler) SubmitIntake(c *gin.Context) {
	var req reqdto.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	userID, _ := middleware.GetUserID(c)

	result, err := h.bookings.SubmitIntake(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		var ve stay.ValidationErrors
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid stay request",
				"fields": ve,
			})
		case errors.Is(err, booking.ErrAuthRequired):
			httperr.AbortUnauthorized(c, err, "Login required to continue booking")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromFlowResult(result))
}

// @Summary Preview a quote for the current selection
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param request body reqdto.SelectRoomsRequest true "Room selection"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/hotel/booking-flows/{id}/quote [post]
func (h *BookingHandler) PreviewQuote(c *gin.Context) {
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flow ID",
		})
		return
	}

	var req reqdto.SelectRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quote, err := h.bookings.PreviewQuote(c.Request.Context(), flowID, req.Quantities())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrFlowNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking flow not found or expired",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room selection",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuote(quote))
}

// @Summary Confirm the room selection and create the reservation
// @Tags booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param request body reqdto.SelectRoomsRequest true "Room selection"
// @Success 201 {object} resdto.SelectionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/hotel/booking-flows/{id}/rooms [post]
func (h *BookingHandler) SelectRooms(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortUnauthorized(c, booking.ErrAuthRequired, "Login required to continue booking")
		return
	}

	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flow ID",
		})
		return
	}

	var req reqdto.SelectRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookings.SelectRooms(c.Request.Context(), userID, flowID, req.Quantities())
	if err != nil {
		var ite *booking.InvalidTransitionError
		switch {
		case errors.Is(err, errs.ErrFlowNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking flow not found or expired",
			})
		case errors.Is(err, booking.ErrEmptySelection):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Select at least one room to continue",
			})
		case errors.Is(err, booking.ErrUnknownRoomType), errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room selection",
			})
		case errors.As(err, &ite):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking flow is not at room selection",
			})
		case errors.Is(err, errs.ErrDatabaseOperationFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Could not create the reservation, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSelectionResult(result))
}

// @Summary Resume a booking flow
// @Tags booking
// @Security BearerAuth
// @Produce json
// @Param id path string true "Flow or reservation ID"
// @Success 200 {object} resdto.SnapshotResponse
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /api/v1/hotel/booking-flows/{id} [get]
func (h *BookingHandler) ResumeFlow(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortUnauthorized(c, booking.ErrAuthRequired, "Login required to resume booking")
		return
	}

	key, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flow ID",
		})
		return
	}

	snap, err := h.bookings.ResumeFlow(c.Request.Context(), userID, key)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrFlowNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking flow not found or expired",
			})
		case errors.Is(err, errs.ErrStaleSnapshot):
			c.JSON(http.StatusGone, gin.H{
				"error": "Booking flow is stale, start over",
			})
		case errors.Is(err, errs.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking flow not found or expired",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}
