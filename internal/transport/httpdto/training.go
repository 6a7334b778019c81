package httpdto

// TrainingParamsRequest is used for POST /train/config. Field names follow
// the external service's contract.
type TrainingParamsRequest struct {
	Model        string  `json:"model" binding:"required"`
	Classes      int     `json:"classes"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batchSize"`
	LR           float64 `json:"lr"`
	Augmentation bool    `json:"augmentation"`
}
