package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"visiontrain/config"
	visiontrain_errors "visiontrain/pkg/errors"
	"visiontrain/pkg/logger"
)

// Upstream failure details, per endpoint.
const (
	configErrDetail  = "External Config Error"
	updateErrDetail  = "External Update Error"
	startErrDetail   = "External Start Training Error"
	predictErrDetail = "External API Error"
)

// TrainingService forwards requests to the external AI training/prediction
// service. It keeps no state between calls: every forward is a single
// request/response cycle with no retry.
type TrainingService struct {
	cfg    *config.Config
	logs   *logger.Logger
	client *http.Client
}

func NewTrainingService(cfg *config.Config, logs *logger.Logger) *TrainingService {
	return &TrainingService{
		cfg:  cfg,
		logs: logs,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// TrainingParams is the training configuration forwarded verbatim to the
// external service.
type TrainingParams struct {
	Model        string  `json:"model"`
	Classes      int     `json:"classes"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batchSize"`
	LR           float64 `json:"lr"`
	Augmentation bool    `json:"augmentation"`
}

// PredictInput is an uploaded file buffered in memory before forwarding.
type PredictInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// GetConfig fetches the current training configuration from the upstream and
// returns its JSON body verbatim.
func (s *TrainingService) GetConfig(ctx context.Context) (json.RawMessage, error) {
	return s.forward(ctx, http.MethodGet, s.cfg.TrainConfigURL, "", nil, configErrDetail)
}

// UpdateConfig forwards the new training configuration as JSON.
func (s *TrainingService) UpdateConfig(ctx context.Context, params TrainingParams) (json.RawMessage, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}
	return s.forward(ctx, http.MethodPost, s.cfg.UpdateConfigURL, "application/json", bytes.NewReader(body), updateErrDetail)
}

// StartTraining forwards an empty POST to kick off a training run.
func (s *TrainingService) StartTraining(ctx context.Context) (json.RawMessage, error) {
	return s.forward(ctx, http.MethodPost, s.cfg.StartTrainingURL, "", nil, startErrDetail)
}

// Predict re-encodes the uploaded file as a multipart form field named "file"
// and forwards it to the external predictor.
func (s *TrainingService) Predict(ctx context.Context, in PredictInput) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.Filename))
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}
	if _, err := part.Write(in.Content); err != nil {
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}
	if err := writer.Close(); err != nil {
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}

	return s.forward(ctx, http.MethodPost, s.cfg.PredictorURL, writer.FormDataContentType(), &buf, predictErrDetail)
}

func (s *TrainingService) forward(ctx context.Context, method, url, contentType string, body io.Reader, failureDetail string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logs.ErrorfCtx(ctx, "upstream call failed: %s %s: %s", method, url, err)
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, visiontrain_errors.NewUpstreamError(http.StatusInternalServerError, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		s.logs.ErrorfCtx(ctx, "upstream returned %d: %s %s", resp.StatusCode, method, url)
		return nil, visiontrain_errors.NewUpstreamError(resp.StatusCode, failureDetail)
	}

	return payload, nil
}
