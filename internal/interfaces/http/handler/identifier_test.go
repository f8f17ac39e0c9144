package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appregistration "github.com/erp/bizid/internal/application/registration"
	"github.com/erp/bizid/internal/domain/registration"
	"github.com/erp/bizid/internal/infrastructure/random"
	"github.com/erp/bizid/internal/interfaces/http/dto"
	"github.com/erp/bizid/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func identifierRouter(service IdentifierService) *gin.Engine {
	middleware.SetupValidator()

	h := NewIdentifierHandler(service)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/identifiers/acn", h.GenerateACNs)
	r.GET("/identifiers/abn", h.GenerateABNs)
	r.GET("/identifiers/pairs", h.GeneratePairs)
	r.POST("/identifiers/abn/derive", h.DeriveABN)
	return r
}

func seededService(maxBatch int) *appregistration.IdentifierService {
	gen := registration.NewGenerator(random.New(99))
	return appregistration.NewIdentifierService(gen, appregistration.ServiceConfig{MaxBatchSize: maxBatch}, zap.NewNop())
}

func serve(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestIdentifierHandler_GenerateACNs(t *testing.T) {
	r := identifierRouter(seededService(10))

	w, env := serve(t, r, http.MethodGet, "/identifiers/acn?count=3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Count)
	assert.Equal(t, 10, env.Meta.MaxBatchSize)

	var acns []appregistration.ACNResponse
	require.NoError(t, json.Unmarshal(env.Data, &acns))
	require.Len(t, acns, 3)
	for _, a := range acns {
		assert.Len(t, a.Digits, 9)
		parsed := registration.MustNewACN(a.Value)
		assert.Equal(t, registration.MustACNFromBase(parsed.Base()), parsed, "check digit of %s", a.Digits)
	}
}

func TestIdentifierHandler_DefaultCount(t *testing.T) {
	r := identifierRouter(seededService(10))

	w, env := serve(t, r, http.MethodGet, "/identifiers/abn", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var abns []appregistration.ABNResponse
	require.NoError(t, json.Unmarshal(env.Data, &abns))
	require.Len(t, abns, 1)
	assert.Len(t, abns[0].Digits, 11)
}

func TestIdentifierHandler_GeneratePairs(t *testing.T) {
	r := identifierRouter(seededService(10))

	w, env := serve(t, r, http.MethodGet, "/identifiers/pairs?count=5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var pairs []appregistration.PairResponse
	require.NoError(t, json.Unmarshal(env.Data, &pairs))
	require.Len(t, pairs, 5)
	for _, p := range pairs {
		assert.Equal(t, p.ACN.Digits, p.ABN.Digits[2:])
	}
}

func TestIdentifierHandler_CountErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"zero", "/identifiers/acn?count=0", http.StatusBadRequest, dto.ErrCodeValidation},
		{"negative", "/identifiers/abn?count=-2", http.StatusBadRequest, dto.ErrCodeValidation},
		{"not a number", "/identifiers/pairs?count=abc", http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"above max", "/identifiers/acn?count=11", http.StatusBadRequest, dto.ErrCodeInvalidInput},
	}

	r := identifierRouter(seededService(10))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := serve(t, r, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.NotEmpty(t, env.Error.RequestID)
		})
	}
}

func TestIdentifierHandler_DeriveABN(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"acn": 4085616}`, "53004085616"},
		{`{"acn": 0}`, "99000000000"},
		{`{"acn": 999999999}`, "98999999999"},
		{`{"acn": "004085616"}`, "53004085616"},
		{`{"acn": "999999999"}`, "98999999999"},
	}

	r := identifierRouter(seededService(10))
	for _, tt := range tests {
		w, env := serve(t, r, http.MethodPost, "/identifiers/abn/derive", tt.body)

		assert.Equal(t, http.StatusOK, w.Code)
		var abn appregistration.ABNResponse
		require.NoError(t, json.Unmarshal(env.Data, &abn))
		assert.Equal(t, tt.want, abn.Digits)
	}
}

func TestIdentifierHandler_DeriveABN_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{"too large", `{"acn": 1000000000}`, dto.ErrCodeInvalidACN, ""},
		{"negative", `{"acn": -1}`, dto.ErrCodeInvalidACN, ""},
		{"too large as string", `{"acn": "1000000000"}`, dto.ErrCodeInvalidACN, ""},
		{"null", `{"acn": null}`, dto.ErrCodeValidation, "acn"},
		{"missing", `{}`, dto.ErrCodeValidation, "acn"},
		{"malformed", `{"acn":`, dto.ErrCodeBadRequest, ""},
		{"wrong type", `{"acn": "abc"}`, dto.ErrCodeBadRequest, ""},
	}

	r := identifierRouter(seededService(10))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := serve(t, r, http.MethodPost, "/identifiers/abn/derive", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantField != "" {
				require.Len(t, env.Error.Details, 1)
				assert.Equal(t, tt.wantField, env.Error.Details[0].Field)
			}
		})
	}
}

type failingService struct{}

func (failingService) GenerateACNs(context.Context, int) ([]appregistration.ACNResponse, error) {
	return nil, errors.New("rng exhausted")
}

func (failingService) GenerateABNs(context.Context, int) ([]appregistration.ABNResponse, error) {
	return nil, errors.New("rng exhausted")
}

func (failingService) GeneratePairs(context.Context, int) ([]appregistration.PairResponse, error) {
	return nil, errors.New("rng exhausted")
}

func (failingService) DeriveABN(context.Context, int64) (*appregistration.ABNResponse, error) {
	return nil, errors.New("rng exhausted")
}

func (failingService) MaxBatchSize() int { return 10 }

func TestIdentifierHandler_UnexpectedError(t *testing.T) {
	r := identifierRouter(failingService{})

	w, env := serve(t, r, http.MethodGet, "/identifiers/acn?count=1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeInternal, env.Error.Code)
	assert.NotContains(t, env.Error.Message, "rng exhausted")
}
