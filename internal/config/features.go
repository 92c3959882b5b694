package config

import "github.com/spf13/viper"

// Known deployment environments.
const (
	EnvLocal       = "local"
	EnvIntegration = "integration"
	EnvProduction  = "production"
)

// FeatureFlags switches whole route groups on or off for an environment.
// A disabled feature does not exist for clients: its routes answer 404.
type FeatureFlags struct {
	Auth        bool
	Plans       bool
	Generation  bool
	Preferences bool

	// MockGeneration serves generations from the offline mock generator.
	MockGeneration bool
}

// environmentFeatures is the read-only flag table. Environments missing from
// it get the zero value, which disables everything.
var environmentFeatures = map[string]FeatureFlags{
	EnvLocal: {
		Auth: true, Plans: true, Generation: true, Preferences: true,
		MockGeneration: true,
	},
	EnvIntegration: {
		Auth: true, Plans: true, Generation: true, Preferences: true,
		MockGeneration: true,
	},
	EnvProduction: {
		Auth: true, Plans: true, Generation: true, Preferences: true,
	},
}

// FeaturesFor returns the flags configured for env.
func FeaturesFor(env string) FeatureFlags {
	return environmentFeatures[env]
}

// resolveFeatures starts from the table entry for env and applies any
// FEATURE_<NAME> overrides present in the environment.
func resolveFeatures(v *viper.Viper, env string) FeatureFlags {
	f := FeaturesFor(env)
	override := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	override("FEATURE_AUTH", &f.Auth)
	override("FEATURE_PLANS", &f.Plans)
	override("FEATURE_GENERATION", &f.Generation)
	override("FEATURE_PREFERENCES", &f.Preferences)
	override("FEATURE_MOCK_GENERATION", &f.MockGeneration)
	return f
}
