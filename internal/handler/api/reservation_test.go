//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/stay"
	"cappa-booking/internal/handler/api"
	resdto "cappa-booking/internal/handler/dto/response"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"
	"cappa-booking/internal/usecase/queries"
	"cappa-booking/tests/common/httptest"
	commandsmock "cappa-booking/tests/mock/commands"
	queriesmock "cappa-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	authedUser   uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.authedUser = uuid.New()
	handler := api.NewReservationHandler(s.mockCommands, s.mockQueries)

	authed := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.authedUser)
		}
	}
	s.router.GET("/hotel/reservations/history", authed, handler.GetHistory)
	s.router.GET("/hotel/reservations/:id", authed, handler.GetReservation)
	s.router.PATCH("/hotel/reservations/:id/cancel", authed, handler.Cancel)
	s.router.PATCH("/hotel/reservations/:id/modify", authed, handler.Modify)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func reservationView(id, userID uuid.UUID) *queries.ReservationView {
	return &queries.ReservationView{
		ID:        id,
		UserID:    userID,
		GuestName: "Adaeze Obi",
		Email:     "adaeze@example.com",
		Phone:     "08012345678",
		CheckIn:   time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
		Adults:    2,
		RoomAllocations: []queries.AllocationView{
			{RoomType: "deluxe", RoomName: "Royal Executive", Quantity: 2, NightlyPrice: 165000},
		},
		Nights:        2,
		TotalPrice:    660000,
		PaymentStatus: "pending",
		CreatedAt:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	reservationID := uuid.New()
	path := "/hotel/reservations/" + reservationID.String()

	s.Run("found", func() {
		s.mockQueries.EXPECT().
			GetReservation(gomock.Any(), reservationID, s.authedUser).
			Return(reservationView(reservationID, s.authedUser), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "token")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(reservationID, resp.ID)
		s.Equal(int64(660000), resp.TotalPrice)
		s.Len(resp.RoomAllocations, 1)
		s.Equal("Royal Executive", resp.RoomAllocations[0].RoomName)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().
			GetReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrReservationNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("invalid id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotel/reservations/nope", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID")
	})
}

func (s *ReservationHandlerTestSuite) TestGetHistory() {
	s.Run("list returned", func() {
		s.mockQueries.EXPECT().
			GetHistory(gomock.Any(), s.authedUser).
			Return([]*queries.ReservationListItem{
				{ID: uuid.New(), GuestName: "Adaeze Obi", Nights: 2, TotalPrice: 660000, PaymentStatus: "paid"},
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotel/reservations/history", nil, "token")

		var resp []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("paid", resp[0].PaymentStatus)
	})

	s.Run("empty history is an empty list", func() {
		s.mockQueries.EXPECT().
			GetHistory(gomock.Any(), s.authedUser).
			Return([]*queries.ReservationListItem{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotel/reservations/history", nil, "token")

		s.Equal(http.StatusOK, w.Code)
		s.JSONEq("[]", w.Body.String())
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	reservationID := uuid.New()
	path := "/hotel/reservations/" + reservationID.String() + "/cancel"

	s.Run("cancelled", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), s.authedUser, reservationID).
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, nil, "token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("already final", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(booking.ErrReservationFinal)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "no longer be cancelled")
	})

	s.Run("foreign reservation", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.ErrReservationNotOwned)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestModify() {
	reservationID := uuid.New()
	path := "/hotel/reservations/" + reservationID.String() + "/modify"
	body := map[string]any{"adults": 3}

	s.Run("modified", func() {
		adults := 3
		s.mockCommands.EXPECT().
			Modify(gomock.Any(), s.authedUser, reservationID, commands.ModifyInput{Adults: &adults}).
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, body, "token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("invalid dates", func() {
		s.mockCommands.EXPECT().
			Modify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stay.ValidationErrors{"checkOut": "Check-out date must be after check-in date"})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, body, "token")

		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "Check-out date must be after check-in date")
	})

	s.Run("paid reservation", func() {
		s.mockCommands.EXPECT().
			Modify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(booking.ErrAlreadyPaid)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, body, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Only pending reservations")
	})
}
