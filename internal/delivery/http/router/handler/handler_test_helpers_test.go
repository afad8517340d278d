package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"notekeeper/config"
	"notekeeper/internal/delivery/http/middleware"
	"notekeeper/internal/delivery/http/validator"
	"notekeeper/internal/delivery/http/view"
	mockservice "notekeeper/internal/mocks/service"
	mockusecase "notekeeper/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testTokenTTL = time.Hour

type handlerFixture struct {
	e      *echo.Echo
	userUC *mockusecase.MockUserUsecase
	noteUC *mockusecase.MockNoteUsecase
	oauth  *mockservice.MockOAuthService
	users  *UserHandler
	notes  *NoteHandler
}

func newHandlerFixture(t *testing.T, googleEnabled bool) *handlerFixture {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Validator = validator.New()

	cfg := &config.Config{}
	if googleEnabled {
		cfg.GoogleOAuth = &config.GoogleOAuthConfig{ClientID: "client-id", ClientSecret: "client-secret"}
	}

	tokenSvc := mockservice.NewMockTokenService(t)
	tokenSvc.On("TTL").Return(testTokenTTL)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &handlerFixture{
		e:      e,
		userUC: mockusecase.NewMockUserUsecase(t),
		noteUC: mockusecase.NewMockNoteUsecase(t),
		oauth:  mockservice.NewMockOAuthService(t),
	}
	f.users = NewUserHandler(f.userUC, f.oauth, tokenSvc, cfg, middleware.NewMetrics(), logger)
	f.notes = NewNoteHandler(f.noteUC, logger)

	return f
}

func (f *handlerFixture) context(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()

	return f.e.NewContext(req, rec), rec
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return req
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}

	return nil
}
