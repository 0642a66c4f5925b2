package config

func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			URL:      "https://raw.githubusercontent.com/selva86/datasets/master/BostonHousing.csv",
			CacheDir: ".mlpipe/cache",
		},
		Split: SplitConfig{
			TestRatio:       0.33,
			ValidationRatio: 0.33,
			Seed:            42,
		},
		Local: LocalConfig{
			WorkDir:   ".mlpipe/data",
			MinFreeMB: 64,
			StateDir:  ".mlpipe",
		},
		Storage: StorageConfig{
			Backend:  "local",
			Bucket:   "",
			Region:   "us-east-1",
			Prefix:   "boston-housing",
			LocalDir: ".mlpipe/store",
		},
		Platform: PlatformConfig{
			BaseURL:        "http://localhost:9090",
			Token:          "",
			PollIntervalMS: 2000,
		},
		Training: TrainingConfig{
			JobNamePrefix: "xgboost-boston",
			Resources: ResourcesConfig{
				InstanceType:  "ml.m5.xlarge",
				InstanceCount: 1,
			},
			Hyperparameters: HyperparametersConfig{
				MaxDepth:            5,
				Eta:                 0.2,
				Gamma:               4,
				MinChildWeight:      6,
				Subsample:           0.7,
				Objective:           "reg:squarederror",
				EarlyStoppingRounds: 10,
				NumRound:            200,
			},
		},
		Inference: InferenceConfig{
			EndpointNamePrefix: "xgboost-boston",
			Resources: ResourcesConfig{
				InstanceType:  "ml.t2.medium",
				InstanceCount: 1,
			},
			MaxPayloadBytes: 5 * 1024 * 1024,
		},
		DevServer: DevServerConfig{
			Host:         "0.0.0.0",
			Port:         9090,
			Token:        "",
			TrainDelayMS: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
