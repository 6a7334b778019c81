package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"visiontrain/config"
	"visiontrain/internal/handler"
	"visiontrain/internal/services"
	"visiontrain/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTrainingRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := &logger.Logger{Logger: zap.NewNop()}
	h := handler.NewTrainingHandler(services.NewTrainingService(cfg, l))

	r := gin.New()
	r.GET("/train/config", h.GetConfig)
	r.POST("/train/config", h.UpdateConfig)
	r.POST("/train/start", h.StartTraining)
	r.POST("/predict", h.Predict)
	return r
}

func TestGetTrainConfigRelaysUpstreamBody(t *testing.T) {
	upstreamBody := `{"model":"yolov8n","classes":3,"epochs":50,"batchSize":16,"lr":0.001,"augmentation":true}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, upstreamBody)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{TrainConfigURL: upstream.URL})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/train/config", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, upstreamBody, w.Body.String())
}

func TestGetTrainConfigUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{TrainConfigURL: upstream.URL})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/train/config", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "External Config Error", detailOf(t, w))
}

func TestGetTrainConfigTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing is listening anymore

	r := newTrainingRouter(&config.Config{TrainConfigURL: upstream.URL})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/train/config", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, detailOf(t, w))
}

func TestUpdateTrainConfigForwardsPayload(t *testing.T) {
	var received map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = io.WriteString(w, `{"status":"updated"}`)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{UpdateConfigURL: upstream.URL})

	payload := `{"model":"yolov8s","classes":5,"epochs":100,"batchSize":32,"lr":0.01,"augmentation":false}`
	req := httptest.NewRequest(http.MethodPost, "/train/config", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"updated"}`, w.Body.String())

	assert.Equal(t, "yolov8s", received["model"])
	assert.Equal(t, float64(5), received["classes"])
	assert.Equal(t, float64(100), received["epochs"])
	assert.Equal(t, float64(32), received["batchSize"])
	assert.Equal(t, 0.01, received["lr"])
	assert.Equal(t, false, received["augmentation"])
}

func TestUpdateTrainConfigRejectsMalformedBody(t *testing.T) {
	r := newTrainingRouter(&config.Config{UpdateConfigURL: "http://unused.invalid"})

	req := httptest.NewRequest(http.MethodPost, "/train/config", strings.NewReader(`{"model":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", detailOf(t, w))
}

func TestStartTraining(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = io.WriteString(w, `{"status":"training started"}`)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{StartTrainingURL: upstream.URL})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/train/start", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"training started"}`, w.Body.String())
}

func TestStartTrainingUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{StartTrainingURL: upstream.URL})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/train/start", nil))

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "External Start Training Error", detailOf(t, w))
}

func TestPredictForwardsMultipartFile(t *testing.T) {
	fileContent := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x01, 0x02}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "cat.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, fileContent, got)

		_, _ = io.WriteString(w, `{"label":"cat","confidence":0.98}`)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{PredictorURL: upstream.URL})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="cat.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write(fileContent)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label":"cat","confidence":0.98}`, w.Body.String())
}

func TestPredictUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	r := newTrainingRouter(&config.Config{PredictorURL: upstream.URL})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "External API Error", detailOf(t, w))
}

func TestPredictWithoutFile(t *testing.T) {
	r := newTrainingRouter(&config.Config{PredictorURL: "http://unused.invalid"})

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing file upload", detailOf(t, w))
}
