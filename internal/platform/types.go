package platform

// Hyperparameters is the fixed XGBoost parameter set a training job is
// launched with.
type Hyperparameters struct {
	MaxDepth            int     `json:"max_depth"`
	Eta                 float64 `json:"eta"`
	Gamma               float64 `json:"gamma"`
	MinChildWeight      float64 `json:"min_child_weight"`
	Subsample           float64 `json:"subsample"`
	Objective           string  `json:"objective"`
	EarlyStoppingRounds int     `json:"early_stopping_rounds"`
	NumRound            int     `json:"num_round"`
}

// Resources sizes the compute behind a job or endpoint.
type Resources struct {
	InstanceType  string `json:"instance_type"`
	InstanceCount int    `json:"instance_count"`
}

// TrainingSpec is everything a training job submission needs.
type TrainingSpec struct {
	Name            string          `json:"name"`
	TrainURI        string          `json:"train_uri"`
	ValidationURI   string          `json:"validation_uri"`
	OutputURI       string          `json:"output_uri"`
	Hyperparameters Hyperparameters `json:"hyperparameters"`
	Resources       Resources       `json:"resources"`
}

type JobState string

const (
	JobPending    JobState = "pending"
	JobInProgress JobState = "in_progress"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// Terminal reports whether the job has finished, successfully or not.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// TrainingJob is the remote view of a submitted job. ArtifactURI is
// set only once the job completes.
type TrainingJob struct {
	Name          string   `json:"name"`
	State         JobState `json:"state"`
	ArtifactURI   string   `json:"artifact_uri,omitempty"`
	FailureReason string   `json:"failure_reason,omitempty"`
}

// EndpointSpec is everything an endpoint provisioning request needs.
type EndpointSpec struct {
	Name        string    `json:"name"`
	ArtifactURI string    `json:"artifact_uri"`
	Resources   Resources `json:"resources"`
}

type EndpointState string

const (
	EndpointCreating  EndpointState = "creating"
	EndpointInService EndpointState = "in_service"
	EndpointFailed    EndpointState = "failed"
)

func (s EndpointState) Terminal() bool {
	return s == EndpointInService || s == EndpointFailed
}

// Endpoint is the remote view of a provisioned inference endpoint.
type Endpoint struct {
	Name          string        `json:"name"`
	State         EndpointState `json:"state"`
	FailureReason string        `json:"failure_reason,omitempty"`
}
