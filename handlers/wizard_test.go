package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edupath/models"
	"edupath/services/notification"
	"edupath/services/wizard"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWizardRouter(t *testing.T) (*gin.Engine, wizard.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	avail := &wizard.Availability{Now: func() time.Time { return now }}
	sessions := &wizard.DefaultSessionService{
		Cache:     client,
		Validator: wizard.NewValidator(avail),
		TTL:       time.Hour,
		Logger:    zap.NewNop(),
	}
	notices := &notification.DefaultService{Sessions: sessions, Logger: zap.NewNop()}
	h := NewWizardHandler(sessions, avail, notices, zap.NewNop())

	r := gin.New()
	r.POST("/session", h.StartSession)
	r.GET("/session/:sessionID", h.GetSession)
	r.PATCH("/session/:sessionID", h.UpdateSession)
	r.POST("/session/:sessionID/next", h.NextStep)
	r.POST("/session/:sessionID/back", h.BackStep)
	r.GET("/session/:sessionID/availability", h.Availability)
	r.GET("/session/:sessionID/price", h.Price)
	r.DELETE("/session/:sessionID", h.DiscardSession)
	return r, sessions
}

type sessionEnvelope struct {
	Session models.BookingDraft `json:"session"`
	Price   int64               `json:"price"`
	Error   string              `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, sessionEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)

	var env sessionEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestWizardHandler_StartAndGet(t *testing.T) {
	r, _ := newWizardRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, env.Session.SessionID)
	assert.Equal(t, models.StepIdentity, env.Session.CurrentStep)

	w, env = doJSON(t, r, http.MethodGet, "/session/"+env.Session.SessionID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2000, env.Price, "fresh draft shows the default quote")
}

func TestWizardHandler_GetMissingSession(t *testing.T) {
	r, _ := newWizardRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/session/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardHandler_UpdateAppliesEvents(t *testing.T) {
	r, _ := newWizardRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/session", "")
	id := env.Session.SessionID

	body := `{"events":[
		{"type":"set_identity","firstName":"Asha","lastName":"Rao","addressLine1":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"},
		{"type":"set_contact","email":"asha@example.com","mobile":"9876543210"}
	]}`
	w, env := doJSON(t, r, http.MethodPatch, "/session/"+id, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha", env.Session.FirstName)
	assert.Equal(t, "asha@example.com", env.Session.Email)
}

func TestWizardHandler_UpdateRejectsBadEvent(t *testing.T) {
	r, _ := newWizardRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/session", "")

	w, _ := doJSON(t, r, http.MethodPatch, "/session/"+env.Session.SessionID,
		`{"events":[{"type":"bogus"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardHandler_NextBlockedOnEmptyIdentity(t *testing.T) {
	r, _ := newWizardRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/session", "")
	id := env.Session.SessionID

	w, env := doJSON(t, r, http.MethodPost, "/session/"+id+"/next", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.StepIdentity, env.Session.CurrentStep, "step pointer stays put on failure")
	assert.NotEmpty(t, env.Error)

	// The failure reason lands on the session as a transient notice.
	_, env = doJSON(t, r, http.MethodGet, "/session/"+id, "")
	require.NotEmpty(t, env.Session.Notices)
	assert.False(t, env.Session.Notices[0].Sticky)
}

func TestWizardHandler_NextAdvancesAfterValidIdentity(t *testing.T) {
	r, _ := newWizardRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/session", "")
	id := env.Session.SessionID

	body := `{"events":[{"type":"set_identity","firstName":"Asha","addressLine1":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"}]}`
	w, _ := doJSON(t, r, http.MethodPatch, "/session/"+id, body)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/session/"+id+"/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StepContact, env.Session.CurrentStep)

	w, env = doJSON(t, r, http.MethodPost, "/session/"+id+"/back", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StepIdentity, env.Session.CurrentStep)
}

func TestWizardHandler_Availability(t *testing.T) {
	r, _ := newWizardRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/session", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session/"+env.Session.SessionID+"/availability", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Dates []models.DateOption `json:"dates"`
		Slots []models.SlotOption `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "2026-03-10", out.Dates[0].Value)
	assert.Len(t, out.Slots, 6)
}

func TestWizardHandler_Discard(t *testing.T) {
	r, _ := newWizardRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/session", "")
	id := env.Session.SessionID

	w, _ := doJSON(t, r, http.MethodDelete, "/session/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/session/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
