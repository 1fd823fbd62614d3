// pkg/config/models.go
package config

import "fmt"

// Model kind selectors understood by the trainer
const (
	ModelLogisticRegression = "logistic_regression"
	ModelRandomForest       = "random_forest"
	ModelGradientBoosting   = "gradient_boosting"
)

// LogisticRegressionConfig holds logistic regression hyperparameters
type LogisticRegressionConfig struct {
	LearningRate float64
	Epochs       int
}

// RandomForestConfig holds random forest hyperparameters
type RandomForestConfig struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	Seed            int64
}

// GradientBoostingConfig holds gradient boosting hyperparameters
type GradientBoostingConfig struct {
	NumRounds    int
	LearningRate float64
	MaxDepth     int
}

// ModelsConfig holds hyperparameters for every model kind plus the set of
// kinds the run should train
type ModelsConfig struct {
	Kinds              []string
	LogisticRegression LogisticRegressionConfig
	RandomForest       RandomForestConfig
	GradientBoosting   GradientBoostingConfig
}

// LoadModelsConfig loads model hyperparameters from environment variables.
// The defaults mirror the reference configuration for this dataset.
func LoadModelsConfig(seed int64) *ModelsConfig {
	return &ModelsConfig{
		Kinds: getEnvAsList("MODEL_KINDS", []string{
			ModelLogisticRegression,
			ModelRandomForest,
			ModelGradientBoosting,
		}),
		LogisticRegression: LogisticRegressionConfig{
			LearningRate: getEnvAsFloat("LOGREG_LEARNING_RATE", 0.1),
			Epochs:       getEnvAsInt("LOGREG_EPOCHS", 1000),
		},
		RandomForest: RandomForestConfig{
			NumTrees:        getEnvAsInt("FOREST_TREES", 100),
			MaxDepth:        getEnvAsInt("FOREST_MAX_DEPTH", 10),
			MinSamplesSplit: getEnvAsInt("FOREST_MIN_SAMPLES_SPLIT", 2),
			Seed:            seed,
		},
		GradientBoosting: GradientBoostingConfig{
			NumRounds:    getEnvAsInt("BOOSTING_ROUNDS", 100),
			LearningRate: getEnvAsFloat("BOOSTING_LEARNING_RATE", 0.1),
			MaxDepth:     getEnvAsInt("BOOSTING_MAX_DEPTH", 6),
		},
	}
}

// Validate ensures the model configuration is usable
func (c *ModelsConfig) Validate() error {
	if len(c.Kinds) == 0 {
		return fmt.Errorf("at least one model kind must be selected")
	}
	for _, kind := range c.Kinds {
		switch kind {
		case ModelLogisticRegression, ModelRandomForest, ModelGradientBoosting:
		default:
			return fmt.Errorf("unknown model kind %q", kind)
		}
	}
	if c.LogisticRegression.LearningRate <= 0 {
		return fmt.Errorf("logistic regression learning rate must be positive")
	}
	if c.LogisticRegression.Epochs <= 0 {
		return fmt.Errorf("logistic regression epochs must be positive")
	}
	if c.RandomForest.NumTrees <= 0 {
		return fmt.Errorf("random forest tree count must be positive")
	}
	if c.GradientBoosting.NumRounds <= 0 {
		return fmt.Errorf("gradient boosting round count must be positive")
	}
	if c.GradientBoosting.LearningRate <= 0 {
		return fmt.Errorf("gradient boosting learning rate must be positive")
	}
	return nil
}
