package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/property-listing-service/internal/model"
	"github.com/iliyamo/property-listing-service/internal/repository"
	"github.com/iliyamo/property-listing-service/internal/utils"
)

type MockUserResolver struct{ mock.Mock }

func (m *MockUserResolver) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

const testSecret = "unit-test-secret"

func runProtected(t *testing.T, authorization string, users UserResolver) (*httptest.ResponseRecorder, *model.User) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *model.User
	h := AuthRequired(testSecret, users)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func TestAuthRequired_ValidToken(t *testing.T) {
	user := &model.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.com"}
	raw, err := utils.NewAccessToken(testSecret, user.ID, user.Email, 60)
	require.NoError(t, err)

	users := new(MockUserResolver)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	rec, seen := runProtected(t, "Bearer "+raw, users)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.Email, seen.Email)
	users.AssertExpectations(t)
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	users := new(MockUserResolver)

	rec, _ := runProtected(t, "", users)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authorized to access this route"}`, rec.Body.String())
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuthRequired_NotBearer(t *testing.T) {
	users := new(MockUserResolver)

	rec, _ := runProtected(t, "Basic dXNlcjpwYXNz", users)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_BadToken(t *testing.T) {
	users := new(MockUserResolver)

	rec, _ := runProtected(t, "Bearer not.a.token", users)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	raw, err := utils.NewAccessToken("some-other-secret", primitive.NewObjectID(), "x@example.com", 60)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+raw, new(MockUserResolver))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_DeletedUser(t *testing.T) {
	userID := primitive.NewObjectID()
	raw, err := utils.NewAccessToken(testSecret, userID, "gone@example.com", 60)
	require.NoError(t, err)

	users := new(MockUserResolver)
	users.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()

	rec, _ := runProtected(t, "Bearer "+raw, users)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}

func TestCurrentUser_UnprotectedRoute(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Nil(t, CurrentUser(c))
}
