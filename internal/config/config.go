package config

type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Split     SplitConfig     `yaml:"split"`
	Local     LocalConfig     `yaml:"local"`
	Storage   StorageConfig   `yaml:"storage"`
	Platform  PlatformConfig  `yaml:"platform"`
	Training  TrainingConfig  `yaml:"training"`
	Inference InferenceConfig `yaml:"inference"`
	DevServer DevServerConfig `yaml:"devserver"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatasetConfig describes where the housing dataset comes from.
type DatasetConfig struct {
	// URL of the raw CSV (header line, target column last).
	URL string `yaml:"url"`
	// CacheDir holds the downloaded copy so repeated runs stay offline.
	CacheDir string `yaml:"cache_dir"`
}

// SplitConfig controls the train/validation/test partition.
// TestRatio is applied to the full set first, then ValidationRatio
// to the remainder.
type SplitConfig struct {
	TestRatio       float64 `yaml:"test_ratio"`
	ValidationRatio float64 `yaml:"validation_ratio"`
	// Seed makes the shuffle reproducible. Same seed, same partition.
	Seed int64 `yaml:"seed"`
}

// LocalConfig controls the local working directory where the train and
// validation CSVs are written before upload.
type LocalConfig struct {
	WorkDir string `yaml:"work_dir"`
	// MinFreeMB aborts the run early when the work dir's filesystem has
	// less free space than this.
	MinFreeMB uint64 `yaml:"min_free_mb"`
	StateDir  string `yaml:"state_dir"`
}

// StorageConfig selects the object store the training data is uploaded to.
type StorageConfig struct {
	// Backend is "s3" or "local".
	Backend string `yaml:"backend"`
	Bucket  string `yaml:"bucket"`
	Region  string `yaml:"region"`
	// Prefix namespaces every uploaded key.
	Prefix string `yaml:"prefix"`
	// LocalDir is the root of the "local" backend.
	LocalDir string `yaml:"local_dir"`
}

// PlatformConfig points at the managed ML platform API.
type PlatformConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	// PollIntervalMS is how often job and endpoint status is polled
	// while waiting for a terminal state.
	PollIntervalMS int `yaml:"poll_interval_ms"`
}

type TrainingConfig struct {
	JobNamePrefix   string                `yaml:"job_name_prefix"`
	Resources       ResourcesConfig       `yaml:"resources"`
	Hyperparameters HyperparametersConfig `yaml:"hyperparameters"`
}

type ResourcesConfig struct {
	InstanceType  string `yaml:"instance_type"`
	InstanceCount int    `yaml:"instance_count"`
}

// HyperparametersConfig mirrors the XGBoost hyperparameter set the
// training job is launched with.
type HyperparametersConfig struct {
	MaxDepth            int     `yaml:"max_depth"`
	Eta                 float64 `yaml:"eta"`
	Gamma               float64 `yaml:"gamma"`
	MinChildWeight      float64 `yaml:"min_child_weight"`
	Subsample           float64 `yaml:"subsample"`
	Objective           string  `yaml:"objective"`
	EarlyStoppingRounds int     `yaml:"early_stopping_rounds"`
	NumRound            int     `yaml:"num_round"`
}

type InferenceConfig struct {
	EndpointNamePrefix string          `yaml:"endpoint_name_prefix"`
	Resources          ResourcesConfig `yaml:"resources"`
	// MaxPayloadBytes caps a single invocation request. Batches larger
	// than this are split into several requests by the client.
	MaxPayloadBytes int `yaml:"max_payload_bytes"`
}

// DevServerConfig configures the local platform emulator.
type DevServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Token, when set, requires Bearer authentication on every route
	// except /health.
	Token string `yaml:"token"`
	// TrainDelayMS is the artificial duration of an emulated training
	// job, so status transitions are observable.
	TrainDelayMS int `yaml:"train_delay_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
