package platform

import "errors"

// Failure taxonomy for remote operations. Callers check with errors.Is;
// nothing below is ever retried locally.
var (
	ErrTrainingFailed   = errors.New("training job failed")
	ErrDeploymentFailed = errors.New("deployment failed")
	ErrInference        = errors.New("inference failed")
)
