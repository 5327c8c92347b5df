package patient

import (
	"sort"
	"strings"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

// ===============================
// Plan
// ===============================

type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanBasic   Plan = "BASIC"
	PlanPremium Plan = "PREMIUM"
)

// ParsePlan defaults an empty value to FREE.
func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case "":
		return PlanFree, nil
	case PlanFree, PlanBasic, PlanPremium:
		return p, nil
	}
	return "", httperr.Input("plan_type", "unknown plan "+s)
}

// DefaultFeatures are the modules a plan turns on when the nutritionist
// does not say otherwise.
func DefaultFeatures(p Plan) models.FeatureFlags {
	f := models.FeatureFlags{
		Appointments:  true,
		Notifications: true,
	}

	switch p {
	case PlanBasic:
		f.MealPlan = true
		f.Recipes = true
		f.FoodDiary = true
		f.ProgressTracking = true
	case PlanPremium:
		f = AllFeatures()
	}

	return f
}

func AllFeatures() models.FeatureFlags {
	return models.FeatureFlags{
		Appointments:     true,
		MealPlan:         true,
		Recipes:          true,
		Chat:             true,
		VideoCall:        true,
		FoodDiary:        true,
		ProgressTracking: true,
		Notifications:    true,
		Documents:        true,
	}
}

// ===============================
// Feature flags
// ===============================

func flagFields(f *models.FeatureFlags) map[string]*bool {
	return map[string]*bool{
		"appointments":     &f.Appointments,
		"mealPlan":         &f.MealPlan,
		"recipes":          &f.Recipes,
		"chat":             &f.Chat,
		"videoCall":        &f.VideoCall,
		"foodDiary":        &f.FoodDiary,
		"progressTracking": &f.ProgressTracking,
		"notifications":    &f.Notifications,
		"documents":        &f.Documents,
	}
}

// FeatureKeys lists the nine flag names in sorted order.
func FeatureKeys() []string {
	var f models.FeatureFlags
	keys := make([]string, 0, 9)
	for k := range flagFields(&f) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyFeatures overlays the given keys on base. Unknown keys are rejected.
func ApplyFeatures(base models.FeatureFlags, in map[string]bool) (models.FeatureFlags, error) {
	out := base
	fields := flagFields(&out)

	for k, v := range in {
		ptr, ok := fields[k]
		if !ok {
			return base, httperr.Input("features."+k, "unknown feature")
		}
		*ptr = v
	}

	return out, nil
}

func FeaturesToMap(f models.FeatureFlags) map[string]bool {
	out := make(map[string]bool, 9)
	for k, ptr := range flagFields(&f) {
		out[k] = *ptr
	}
	return out
}
