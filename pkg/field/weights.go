package field

// Weights are the tunable coefficients of the linear score
// combinations. They are loaded from configuration rather than
// hardcoded; see internal/config.
type Weights struct {
	MyStaticPower     float64 `yaml:"my_static_power"`
	MyMobilePower     float64 `yaml:"my_mobile_power"`
	GroupPower        float64 `yaml:"group_power"`
	EnemyPower        float64 `yaml:"enemy_power"`
	EnemySight        float64 `yaml:"enemy_sight"`
	EnemyDestroyScore float64 `yaml:"enemy_destroy_score"`
	ResourceValue     float64 `yaml:"resource_value"`
	Distance          float64 `yaml:"distance"`
}

// DefaultWeights favor backing off from stronger enemies, hunting
// destroy score, and closing on the target.
func DefaultWeights() Weights {
	return Weights{
		MyStaticPower:     1.0,
		MyMobilePower:     0.5,
		GroupPower:        1.0,
		EnemyPower:        -1.5,
		EnemySight:        -0.1,
		EnemyDestroyScore: 0.5,
		ResourceValue:     0.05,
		Distance:          -1.0,
	}
}
