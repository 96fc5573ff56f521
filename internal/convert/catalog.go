// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "github.com/pdiddy/health-convert/pkg/types"

// defaultCatalog is the fixed list of exports the driver looks for, in
// processing order.
var defaultCatalog = []types.ExportFile{
	{Name: "heart_rate.csv", Unit: "bpm"},
	{Name: "resting_hr.csv", Unit: "bpm"},
	{Name: "hrv.csv", Unit: "ms"},
	{Name: "steps.csv", Unit: "count"},
	{Name: "active_energy.csv", Unit: "kcal"},
	{Name: "cardio_fitness.csv", Unit: "ml/kg/min"},
	{Name: "sleep.csv", Unit: "minutes"},
	{Name: "workouts.csv", Unit: types.WorkoutUnit},
}

// Catalog returns a copy of the file-unit mapping in processing order.
func Catalog() []types.ExportFile {
	out := make([]types.ExportFile, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}
