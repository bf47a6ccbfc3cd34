package game

// StandardProperties returns the default property table used when a
// snapshot does not carry its own. Values follow the usual balance:
// builders are cheap harvesters, ranged units are fragile but reach
// far, melee units trade range for health.
func StandardProperties() PropertyTable {
	return PropertyTable{
		Wall: {
			Size: 1, MaxHealth: 50, InitialCost: 1,
			SightRange: 2, DestroyScore: 1,
		},
		House: {
			Size: 3, MaxHealth: 50, InitialCost: 50,
			SightRange: 5, PopulationProvide: 5, DestroyScore: 10,
		},
		BuilderBase: {
			Size: 5, MaxHealth: 300, InitialCost: 500,
			SightRange: 5, PopulationProvide: 5, DestroyScore: 100,
			Build: &BuildProperties{Options: []EntityType{BuilderUnit}},
		},
		BuilderUnit: {
			Size: 1, MaxHealth: 10, InitialCost: 10,
			SightRange: 10, CanMove: true, PopulationUse: 1, DestroyScore: 5,
			Attack: &AttackProperties{Damage: 1, Range: 1},
			Repair: &RepairProperties{Power: 1},
			Build: &BuildProperties{Options: []EntityType{
				Wall, House, BuilderBase, MeleeBase, RangedBase, Turret,
			}},
		},
		MeleeBase: {
			Size: 5, MaxHealth: 300, InitialCost: 500,
			SightRange: 5, PopulationProvide: 5, DestroyScore: 100,
			Build: &BuildProperties{Options: []EntityType{MeleeUnit}},
		},
		MeleeUnit: {
			Size: 1, MaxHealth: 50, InitialCost: 20,
			SightRange: 7, CanMove: true, PopulationUse: 1, DestroyScore: 10,
			Attack: &AttackProperties{Damage: 5, Range: 1},
		},
		RangedBase: {
			Size: 5, MaxHealth: 500, InitialCost: 500,
			SightRange: 5, PopulationProvide: 5, DestroyScore: 100,
			Build: &BuildProperties{Options: []EntityType{RangedUnit}},
		},
		RangedUnit: {
			Size: 1, MaxHealth: 10, InitialCost: 30,
			SightRange: 10, CanMove: true, PopulationUse: 1, DestroyScore: 10,
			Attack: &AttackProperties{Damage: 5, Range: 5},
		},
		Resource: {
			Size: 1, MaxHealth: 30, ResourcePerHealth: 1,
		},
		Turret: {
			Size: 2, MaxHealth: 100, InitialCost: 50,
			SightRange: 10, DestroyScore: 20,
			Attack: &AttackProperties{Damage: 5, Range: 5},
		},
	}
}
