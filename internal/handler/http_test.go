package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cosplay-server/internal/handler"
	"cosplay-server/internal/models"
	"cosplay-server/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(svc *mocks.CosplayService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	h := handler.NewCosplayHandler(svc, zap.NewNop())
	h.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(handler.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListScriptsEndpoint(t *testing.T) {
	svc := new(mocks.CosplayService)
	svc.On("ListScripts", mock.Anything).Return([]models.ScriptSummary{
		{ID: uuid.New(), Title: "Sprint Week", TotalScenes: 2},
	}, nil)
	e := newTestServer(svc)

	rec := doRequest(e, http.MethodGet, "/cosplay/scripts", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.ScriptListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Scripts, 1)
	assert.Equal(t, "Sprint Week", body.Scripts[0].Title)
}

func TestGetScriptDetailEndpoint(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		e := newTestServer(new(mocks.CosplayService))
		rec := doRequest(e, http.MethodGet, "/cosplay/scripts/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("GetScriptDetail", mock.Anything, mock.Anything).Return(nil, models.ErrScriptNotFound)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodGet, "/cosplay/scripts/"+uuid.NewString(), "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStartSessionEndpoint(t *testing.T) {
	scriptID := uuid.New()
	userID := uuid.New()

	t.Run("missing identity header", func(t *testing.T) {
		e := newTestServer(new(mocks.CosplayService))
		rec := doRequest(e, http.MethodPost, "/cosplay/scripts/"+scriptID.String()+"/sessions", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed identity header", func(t *testing.T) {
		e := newTestServer(new(mocks.CosplayService))
		rec := doRequest(e, http.MethodPost, "/cosplay/scripts/"+scriptID.String()+"/sessions", "", "nope")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty body defaults to resume", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("StartSession", mock.Anything, scriptID, userID, true).
			Return(&models.SessionView{SessionID: uuid.New(), ScriptID: scriptID}, nil)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, "/cosplay/scripts/"+scriptID.String()+"/sessions", "", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertCalled(t, "StartSession", mock.Anything, scriptID, userID, true)
	})

	t.Run("resume can be disabled", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("StartSession", mock.Anything, scriptID, userID, false).
			Return(&models.SessionView{SessionID: uuid.New(), ScriptID: scriptID}, nil)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, "/cosplay/scripts/"+scriptID.String()+"/sessions", `{"resume": false}`, userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertCalled(t, "StartSession", mock.Anything, scriptID, userID, false)
	})
}

func TestGetSessionStateEndpoint(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()

	t.Run("returns the view", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("GetSessionState", mock.Anything, sessionID, userID).
			Return(&models.SessionView{SessionID: sessionID, Progress: 50}, nil)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodGet, "/cosplay/sessions/"+sessionID.String(), "", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var body handler.SessionStateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.State)
		assert.Equal(t, 50, body.State.Progress)
	})

	t.Run("invalid session id", func(t *testing.T) {
		e := newTestServer(new(mocks.CosplayService))
		rec := doRequest(e, http.MethodGet, "/cosplay/sessions/oops", "", userID.String())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("GetSessionState", mock.Anything, sessionID, userID).Return(nil, models.ErrSessionNotFound)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodGet, "/cosplay/sessions/"+sessionID.String(), "", userID.String())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestChooseOptionEndpoint(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()
	path := "/cosplay/sessions/" + sessionID.String() + "/choice"

	t.Run("applies the choice", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("ChooseOption", mock.Anything, sessionID, userID, "opt_a").
			Return(&models.ChoiceResult{
				Feedback:     "You took the technical lead.",
				ScoreChanges: map[string]int{"T": 10},
			}, nil)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, path, `{"option_id": "opt_a"}`, userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var body models.ChoiceResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "You took the technical lead.", body.Feedback)
		assert.Equal(t, map[string]int{"T": 10}, body.ScoreChanges)
	})

	t.Run("missing option id", func(t *testing.T) {
		e := newTestServer(new(mocks.CosplayService))
		rec := doRequest(e, http.MethodPost, path, `{}`, userID.String())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown option", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("ChooseOption", mock.Anything, sessionID, userID, "opt_z").Return(nil, models.ErrInvalidOption)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, path, `{"option_id": "opt_z"}`, userID.String())
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("finished session", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("ChooseOption", mock.Anything, sessionID, userID, "opt_a").Return(nil, models.ErrSessionFinished)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, path, `{"option_id": "opt_a"}`, userID.String())
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("ChooseOption", mock.Anything, sessionID, userID, "opt_a").Return(nil, errors.New("boom"))
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, path, `{"option_id": "opt_a"}`, userID.String())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body handler.APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, models.ErrInternalServer.Error(), body.Message)
	})
}

func TestGetReportEndpoint(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()
	path := "/cosplay/sessions/" + sessionID.String() + "/report"

	t.Run("returns the report", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("GetReport", mock.Anything, sessionID, userID).
			Return(&models.ReportPayload{RouteKey: "Q+T", RouteName: "Expert track"}, nil)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodGet, path, "", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var body models.ReportPayload
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Q+T", body.RouteKey)
	})

	t.Run("not ready", func(t *testing.T) {
		svc := new(mocks.CosplayService)
		svc.On("GetReport", mock.Anything, sessionID, userID).Return(nil, models.ErrReportNotReady)
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodGet, path, "", userID.String())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
