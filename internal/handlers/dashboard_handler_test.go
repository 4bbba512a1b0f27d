package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartbudget/internal/dto"
	"smartbudget/internal/models"
	"smartbudget/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestDashboardHandler(t *testing.T) {
	suite.Run(t, new(DashboardHandlerSuite))
}

type DashboardHandlerSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	dashboardService *service_mocks.MockDashboardServiceInterface
	handler          *DashboardHandler
	e                *echo.Echo
	userID           uuid.UUID
}

func (s *DashboardHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.dashboardService = service_mocks.NewMockDashboardServiceInterface(s.ctrl)
	s.handler = NewDashboardHandler(s.dashboardService)
	s.e = echo.New()
	s.userID = uuid.New()
}

func (s *DashboardHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DashboardHandlerSuite) newContext() (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *DashboardHandlerSuite) TestGetDashboard_Success() {
	view := dto.EmptyDashboardResponse(models.WeeklyBucketCount)

	s.dashboardService.EXPECT().
		GetDashboard(s.userID, gomock.Any()).
		Return(view, nil).
		Times(1)

	c, rec := s.newContext()

	s.NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var response SuccessResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.NotNil(response.Data)
}

func (s *DashboardHandlerSuite) TestGetDashboard_Unauthenticated() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	var errorResp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("AUTH_002", errorResp.Error.Code)
}

func (s *DashboardHandlerSuite) TestGetDashboard_ServiceFailure() {
	s.dashboardService.EXPECT().
		GetDashboard(s.userID, gomock.Any()).
		Return(nil, errors.New("query timeout")).
		Times(1)

	c, rec := s.newContext()

	s.NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusInternalServerError, rec.Code)

	var errorResp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &errorResp))
	s.Equal("DASHBOARD_001", errorResp.Error.Code)
}
